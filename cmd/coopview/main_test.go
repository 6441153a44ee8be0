package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/coopview/internal/cli"
	"github.com/rshade/coopview/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		assert.NotNil(t, root)
		assert.Equal(t, "coopview", root.Use)
	})
}

func TestRun_ExitCodes(t *testing.T) {
	t.Setenv("COOPVIEW_CONFIG", t.TempDir()+"/config.yaml")
	t.Setenv("COOPVIEW_PROJECT_DIR", t.TempDir())

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"version"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "coopview "+version.GetVersion())

	stderr.Reset()
	assert.Equal(t, 1, run([]string{"list", "--page", "0", "--plain"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Error: page must be >= 1")
}

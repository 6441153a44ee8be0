package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/rshade/coopview/pkg/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(ver string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Printf("coopview %s\n", ver)
			cmd.Printf("  commit:  %s\n", version.GetCommit())
			cmd.Printf("  built:   %s\n", version.GetBuildDate())
			cmd.Printf("  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			if !version.IsRelease(ver) {
				cmd.Println("  (development build)")
			}
			return nil
		},
	}
}

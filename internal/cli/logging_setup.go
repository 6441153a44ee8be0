package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/coopview/internal/config"
	"github.com/rshade/coopview/internal/logging"
)

// setupLogging configures logging from the loaded config and the --debug flag,
// then stores the logger and a trace ID in the command context.
func setupLogging(
	cmd *cobra.Command,
	loggingCfg config.LoggingConfig,
	debug bool,
	lookupEnv func(string) (string, bool),
) logging.LogPathResult {
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	}

	// An explicit env level still wins over the file, but never over --debug.
	if envLevel, ok := lookupEnv(config.EnvLogLevel); ok && envLevel != "" && !debug {
		loggingCfg.Level = envLevel
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")
	logToFile = result.UsingFile

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")

	return result
}

// logToFile records whether the command logs to a file rather than the terminal.
var logToFile bool //nolint:gochecknoglobals // Set once per invocation alongside logger.

// quietContext returns ctx with logging disabled unless logs go to a file.
// Bubble Tea owns the terminal while the interactive table runs, so stderr
// lines would be painted over the view.
func quietContext(ctx context.Context, toFile bool) context.Context {
	if toFile {
		return ctx
	}
	return zerolog.Nop().WithContext(ctx)
}

// cleanupLogging closes the log file handle, if any.
func cleanupLogging(logResult *logging.LogPathResult) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/portalgun/internal/config"
	"github.com/rshade/portalgun/internal/logging"
)

// resolveLoggingConfig layers the environment and --debug over the logging
// section of the loaded configuration. --debug wins over everything and
// always logs to the console.
func resolveLoggingConfig(cmd *cobra.Command, getenv func(string) string) config.LoggingConfig {
	lc := config.GetLoggingConfig()

	if level := getenv(config.EnvLogLevel); level != "" {
		lc.Level = level
	}
	if format := getenv(config.EnvLogFormat); format != "" {
		lc.Format = format
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		lc.Level = "debug"
		lc.Format = logging.FormatConsole
		lc.File = ""
	}
	return lc
}

// setupLogging builds the command logger and stores it, tagged with a trace
// ID, in the command context.
func setupLogging(cmd *cobra.Command) logging.LogPathResult {
	lc := resolveLoggingConfig(cmd, os.Getenv)
	stderr := cmd.ErrOrStderr()

	if lc.File != "" {
		if err := config.EnsureLogDir(); err != nil {
			_, _ = fmt.Fprintf(stderr, "Warning: could not create log directory: %v\n", err)
		}
	}

	result := logging.NewLoggerWithPath(lc.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")
	switch {
	case result.UsingFile:
		logging.PrintLogPathMessage(stderr, result.FilePath)
	case result.FallbackUsed:
		logging.PrintFallbackWarning(stderr, result.FallbackReason)
	}

	ctx := logging.ContextWithTraceID(cmd.Context(), logging.GetOrGenerateTraceID(cmd.Context()))
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.CommandPath()).Msg("command started")
	return result
}

// cleanupLogging closes the log file handle, if one was opened.
func cleanupLogging(logResult *logging.LogPathResult) error {
	if logResult == nil {
		return nil
	}
	return logResult.Close()
}

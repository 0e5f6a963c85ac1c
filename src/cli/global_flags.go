package cli

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"compose-backup/src/safety"
)

// addGlobalFlags adds the persistent flags shared by all subcommands.
func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool("dry-run", false, "Show planned actions without making changes")
	cmd.PersistentFlags().BoolP("yes", "y", false, "Assume 'yes' to prompts and run non-interactively")
	cmd.PersistentFlags().String("log-level", "info", "Log level: trace|debug|info|warn|error")
}

// getSafetyOptions reads the global flags into a safety.Options struct.
func getSafetyOptions(cmd *cobra.Command) safety.Options {
	dry, _ := cmd.Root().PersistentFlags().GetBool("dry-run")
	yes, _ := cmd.Root().PersistentFlags().GetBool("yes")
	return safety.Options{DryRun: dry, Yes: yes}
}

// newLogger builds the structured logger used by the workflow packages.
// It writes human-readable lines to stderr; progress output stays on stdout.
func newLogger(cmd *cobra.Command, stderr io.Writer) zerolog.Logger {
	levelStr, _ := cmd.Root().PersistentFlags().GetString("log-level")
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		level = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{Out: stderr, TimeFormat: "15:04:05"}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

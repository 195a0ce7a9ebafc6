// Command skelforge is the thin CLI surface over pkg/analyzer, standing in
// for the GUI/chat collaborators a larger IDE integration would provide,
// and consuming the extraction core only through the analyzer's public
// accessor interface.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/skelforge/skelforge/pkg/logging"
)

const version = "0.1.0-dev"

var (
	flagLogLevel  string
	flagLogFormat string
	flagVerbose   bool
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "skelforge",
		Short:         "Tree-sitter-backed source-skeleton extractor",
		Long:          "skelforge parses a project's source files and emits a condensed textual skeleton — signatures preserved, bodies elided — suitable for feeding an LLM as context.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "log format: text, json")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "shorthand for --log-level=info")

	root.AddCommand(newScanCommand())
	root.AddCommand(newInspectCommand())
	root.AddCommand(newSearchCommand())
	root.AddCommand(newWatchCommand())

	return root
}

func buildLogger() *slog.Logger {
	level := logging.Level(flagLogLevel)
	if flagVerbose && flagLogLevel == "warn" {
		level = logging.LevelInfo
	}
	format := logging.FormatText
	if flagLogFormat == "json" {
		format = logging.FormatJSON
	}
	logger := logging.New(logging.Config{Level: level, Format: format, Output: os.Stderr})
	logging.SetDefault(logger)
	return logger
}

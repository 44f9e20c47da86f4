// Package cli provides the command-line interface for revtab.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/revtab/internal/cli/commands"
	"github.com/ccollicutt/revtab/internal/logging"
)

// Execute runs the root command with the process arguments and returns
// the exit code.
func Execute() int {
	// A .env file next to the pastes may carry REVTAB_* settings and webhook tokens
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintf(os.Stderr, "Error: loading .env: %v\n", err)
		return 2
	}
	return Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// Run executes revtab with args and the given streams and returns the exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	commands.ExitCode = 0

	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// GlobalOptions holds flags shared by every command.
type GlobalOptions struct {
	LogLevel  string
	LogFormat string
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	opts := &GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "revtab",
		Short: "Turn pasted review pages into a review table",
		Long: `revtab converts review pages copied from a browser into a table of
author, date and review text.

It understands two storefront layouts:
  - JD review lists (avatar / star markers, dates like 01-13)
  - Tmall review lists (2025年3月12日已购：... purchase lines, 追评 follow-ups)

Paste one or more pages into text files (or pipe them on stdin), then run
revtab parse to get a UTF-8 CSV that spreadsheets open directly.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(logging.Options{
				Level:  opts.LogLevel,
				Format: opts.LogFormat,
				Output: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", logging.DefaultLevel, "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", logging.FormatConsole, "Log format (console|json)")

	// Add subcommands
	rootCmd.AddCommand(commands.NewParseCommand())
	rootCmd.AddCommand(commands.NewLinesCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}

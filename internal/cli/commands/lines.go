package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/revtab/pkg/detector"
	"github.com/ccollicutt/revtab/pkg/parser"
)

// LinesOptions holds command-line options for the lines command.
type LinesOptions struct {
	ConfigPath string
	Layout     string
	Numbered   bool
}

// NewLinesCommand creates the lines command.
func NewLinesCommand() *cobra.Command {
	opts := &LinesOptions{}

	cmd := &cobra.Command{
		Use:   "lines [files...]",
		Short: "Print the cleaned lines a parser sees",
		Long: `Print the cleaned line sequence the chosen layout parser scans.

For jd the paste is first trimmed to the review list (from the first
avatar line up to the page footer); tmall only normalizes lines. Use it
to see why a review was skipped or cut short.

Example:
  revtab lines --layout jd page-01.txt
  pbpaste | revtab lines -n`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLines(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file (YAML)")
	cmd.Flags().StringVarP(&opts.Layout, "layout", "l", "", "Page layout (auto|jd|tmall)")
	cmd.Flags().BoolVarP(&opts.Numbered, "number", "n", false, "Prefix each line with its index")

	return cmd
}

func runLines(cmd *cobra.Command, args []string, opts *LinesOptions) error {
	ctx := commandContext(cmd)

	cfg, err := loadConfig(ctx, opts.ConfigPath, opts.Layout, 0)
	if err != nil {
		return err
	}

	inputs, err := readInputs(ctx, cmd, args, cfg)
	if err != nil {
		return err
	}
	text := parser.Combine(inputs)

	layout, _, err := detector.New().Resolve(cfg.Layout, text)
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Str("layout", string(layout)).Msg("showing cleaned lines")

	p, err := parser.New(layout, cfg.DefaultYear)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, line := range parser.InputLines(p, inputs) {
		if opts.Numbered {
			fmt.Fprintf(out, "%5d  %s\n", i, line)
		} else {
			fmt.Fprintln(out, line)
		}
	}
	return nil
}

package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/revtab/pkg/config"
	"github.com/ccollicutt/revtab/pkg/parser"
)

// commandContext returns the command's context, or a background context
// when the command is run outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// readInputs expands args (or, when none are given, the configured inputs)
// and reads them. With neither, the paste is read from stdin.
func readInputs(ctx context.Context, cmd *cobra.Command, args []string, cfg *config.Config) ([]parser.Input, error) {
	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.Inputs
	}
	if len(patterns) == 0 {
		patterns = []string{parser.StdinSource}
	}

	paths, err := parser.ExpandGlobs(patterns)
	if err != nil {
		return nil, fmt.Errorf("expanding inputs: %w", err)
	}

	inputs, err := parser.ReadInputs(ctx, paths, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	return inputs, nil
}

// openOutput returns the writer for path, or stdout when path is empty.
// The returned close function must be called once writing is done.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	// #nosec G304 -- output path is provided by the user
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}

package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/revtab/pkg/config"
	"github.com/ccollicutt/revtab/pkg/parser"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a revtab configuration file without parsing anything.

Checks:
  - YAML syntax
  - Layout, default year and output format
  - CSV header names
  - Webhook URLs and triggers
  - Input file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Layout:       %s\n", cfg.Layout)
	fmt.Fprintf(out, "  Default year: %d\n", cfg.DefaultYear)
	fmt.Fprintf(out, "  Output:       %s\n", cfg.Output)
	if cfg.OutputFile != "" {
		fmt.Fprintf(out, "  Output file:  %s\n", cfg.OutputFile)
	}
	if cfg.Database != "" {
		fmt.Fprintf(out, "  Database:     %s\n", cfg.Database)
	}
	fmt.Fprintf(out, "  CSV header:   %s\n", strings.Join(cfg.Header(), ", "))
	fmt.Fprintf(out, "  Webhooks:     %d\n", len(cfg.Webhooks))

	if len(cfg.Inputs) == 0 {
		fmt.Fprintf(out, "\nNo inputs configured; files are taken from the command line or stdin\n")
		return nil
	}

	// Missing inputs are warnings only
	files, err := parser.ExpandGlobs(cfg.Inputs)
	if err != nil {
		fmt.Fprintf(out, "\nWarning: Error expanding input patterns: %v\n", err)
		return nil
	}

	fmt.Fprintf(out, "\nInputs:\n")
	for _, f := range files {
		if f == parser.StdinSource {
			fmt.Fprintf(out, "  - (stdin)\n")
			continue
		}
		if _, err := os.Stat(f); err != nil {
			fmt.Fprintf(out, "  - %s (warning: not found)\n", f)
			continue
		}
		fmt.Fprintf(out, "  - %s\n", f)
	}

	return nil
}

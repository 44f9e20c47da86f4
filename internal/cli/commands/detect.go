package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/revtab/pkg/config"
	"github.com/ccollicutt/revtab/pkg/detector"
	"github.com/ccollicutt/revtab/pkg/parser"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output      string
	SampleSize  int
	ShowAll     bool
	WriteConfig string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect [files...]",
		Short: "Detect which storefront layout a paste comes from",
		Long: `Count the layout marker lines in a paste and report which layout
they point to, with a confidence score.

Markers:
  jd     - lines that are exactly "avatar" or "star"
  tmall  - purchase lines (2025年3月12日已购：...) and follow-up lines (30天后追评：...)

Optionally generates a starter config file with --write-config.

Example:
  revtab detect page-01.txt
  revtab detect --all pastes/*.txt
  revtab detect -w revtab.yaml pastes/*.txt`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 5000, "Number of cleaned lines to sample")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all detected layouts, not just the best match")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	ctx := commandContext(cmd)

	inputs, err := readInputs(ctx, cmd, args, config.DefaultConfig())
	if err != nil {
		return err
	}
	sources := parser.Sources(inputs)

	d := detector.New(detector.WithSampleSize(opts.SampleSize))
	result := d.DetectFromText(parser.Combine(inputs))

	out := cmd.OutOrStdout()

	if opts.WriteConfig != "" {
		// The notice goes to stderr so -o json stays parseable.
		if err := writeStarterConfig(cmd.ErrOrStderr(), result, sources, opts.WriteConfig); err != nil {
			return err
		}
	}

	switch opts.Output {
	case "json":
		return outputDetectJSON(out, result, sources, opts)
	case "text":
		return outputDetectText(out, result, sources, opts)
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

func outputDetectText(w io.Writer, result *detector.DetectionResult, sources []string, opts *DetectOptions) error {
	fmt.Fprintln(w, "=== Layout Detection ===")
	fmt.Fprintln(w)
	for _, src := range sources {
		fmt.Fprintf(w, "Input: %s\n", src)
	}
	fmt.Fprintf(w, "Lines sampled: %d\n", result.SampledLines)
	fmt.Fprintf(w, "Marker lines: %d\n", result.MarkerLines)
	fmt.Fprintln(w)

	if !result.HasMatch() {
		fmt.Fprintln(w, "No layout detected.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tip: Make sure the paste includes the review list itself,")
		fmt.Fprintln(w, "then run 'revtab lines' to inspect the cleaned lines.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Known layouts look like:")
		for _, sig := range detector.DefaultSignatures() {
			fmt.Fprintf(w, "  %s (%s): %s\n", sig.Layout, sig.Name, strings.Join(sig.Examples, " | "))
		}
		return nil
	}

	best := result.BestMatch()
	fmt.Fprintf(w, "Detected Layout: %s (%s)\n", best.Signature.Layout, best.Signature.Name)
	fmt.Fprintf(w, "Confidence: %.1f%% (%d/%d marker lines)\n",
		best.Confidence*100, best.MatchCount, result.MarkerLines)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sample marker:\n  %s\n", best.SampleLine)
	fmt.Fprintln(w)

	if result.AmbiguityNote != "" {
		fmt.Fprintf(w, "Note: %s\n", result.AmbiguityNote)
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "--- Configuration snippet (copy to your config file) ---")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "layout: %s\n", best.Signature.Layout)
	fmt.Fprintln(w)

	if opts.ShowAll && len(result.Matches) > 1 {
		fmt.Fprintln(w, "--- Other layouts detected ---")
		for i, m := range result.Matches[1:] {
			fmt.Fprintf(w, "%d. %s (%.1f%% confidence, %d marker lines)\n",
				i+2, m.Signature.Layout, m.Confidence*100, m.MatchCount)
		}
		fmt.Fprintln(w)
	}

	return nil
}

// JSONMatch represents a layout match in JSON output.
type JSONMatch struct {
	Layout     string  `json:"layout"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	MatchCount int     `json:"match_count"`
	SampleLine string  `json:"sample_line"`
}

// JSONOutput represents the full JSON output.
type JSONOutput struct {
	Sources       []string    `json:"sources"`
	Matches       []JSONMatch `json:"matches"`
	SampledLines  int         `json:"sampled_lines"`
	MarkerLines   int         `json:"marker_lines"`
	AmbiguityNote string      `json:"ambiguity_note,omitempty"`
}

func outputDetectJSON(w io.Writer, result *detector.DetectionResult, sources []string, opts *DetectOptions) error {
	output := JSONOutput{
		Sources:       sources,
		SampledLines:  result.SampledLines,
		MarkerLines:   result.MarkerLines,
		AmbiguityNote: result.AmbiguityNote,
		Matches:       make([]JSONMatch, 0),
	}

	matches := result.Matches
	if !opts.ShowAll && len(matches) > 1 {
		matches = matches[:1]
	}

	for _, m := range matches {
		output.Matches = append(output.Matches, JSONMatch{
			Layout:     string(m.Signature.Layout),
			Name:       m.Signature.Name,
			Confidence: m.Confidence,
			MatchCount: m.MatchCount,
			SampleLine: m.SampleLine,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(output)
}

// writeStarterConfig writes a config file for the detected layout.
func writeStarterConfig(w io.Writer, result *detector.DetectionResult, sources []string, configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	if !result.HasMatch() {
		return fmt.Errorf("cannot generate config: no layout detected")
	}

	data, err := generateStarterConfig(result.BestMatch(), sources)
	if err != nil {
		return err
	}

	// #nosec G306 - config file doesn't need restrictive permissions
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(w, "Wrote starter config to: %s\n\n", configPath)
	return nil
}

// generateStarterConfig renders a commented YAML config for match.
func generateStarterConfig(match *detector.LayoutMatch, sources []string) ([]byte, error) {
	cfg := config.DefaultConfig()
	cfg.Layout = match.Signature.Layout
	cfg.OutputFile = config.DefaultOutputFile
	cfg.CSVHeader = parser.Columns

	for _, src := range sources {
		if src == parser.StdinSource {
			continue
		}
		if abs, err := filepath.Abs(src); err == nil {
			src = abs
		}
		cfg.Inputs = append(cfg.Inputs, src)
	}

	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("rendering starter config: %w", err)
	}

	header := fmt.Sprintf(`# revtab configuration
# Generated by: revtab detect
# Detected layout: %s (%.0f%% confidence)
#
# Add a SQLite export with:
#   database: reviews.db
# and a webhook with:
#   webhooks:
#     - name: sheet-sync
#       url: https://example.com/hook
#       token: ${HOOK_TOKEN}
#       trigger: on_records

`, match.Signature.Name, match.Confidence*100)

	return append([]byte(header), body...), nil
}

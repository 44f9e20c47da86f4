package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/revtab/pkg/config"
	"github.com/ccollicutt/revtab/pkg/detector"
	"github.com/ccollicutt/revtab/pkg/output"
	"github.com/ccollicutt/revtab/pkg/parser"
	"github.com/ccollicutt/revtab/pkg/store"
	"github.com/ccollicutt/revtab/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ParseOptions holds command-line options for the parse command.
type ParseOptions struct {
	ConfigPath string
	Layout     string
	Year       int
	Output     string
	OutFile    string
	Database   string
	Verbose    bool
	Quiet      bool
	NoColor    bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "Extract reviews from pasted review pages",
		Long: `Extract author, date and review text from review pages copied out of
a browser and pasted into text files.

Supported layouts:
  jd     - JD product review list (avatar / star markers)
  tmall  - Tmall review list (2025年3月12日已购：... markers)
  auto   - pick the layout whose markers dominate (default)

Files are read in the given order; glob matches are sorted. Each file
is treated as one saved page, so page headers and footers are trimmed
per file. With no files and no inputs in the config file, the paste is
read from stdin. Duplicate reviews caused by overlapping pastes are
dropped across all files.

Exit codes:
  0 - Reviews extracted
  1 - No reviews recognised
  2 - Configuration or runtime error`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file (YAML)")
	cmd.Flags().StringVarP(&opts.Layout, "layout", "l", "", "Page layout (auto|jd|tmall)")
	cmd.Flags().IntVarP(&opts.Year, "year", "y", 0, "Year for JD dates shown as MM-DD")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (csv|json|text)")
	cmd.Flags().StringVarP(&opts.OutFile, "out", "f", "", "Write output to file instead of stdout")
	cmd.Flags().StringVar(&opts.Database, "db", "", "Also append records to this SQLite database")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show run metadata in text output")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only (text and json)")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "Disable colored text output")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", string(config.WebhookTriggerOnRecords), "When to fire webhook (on_records|always|never)")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	start := time.Now()
	ExitCode = 0
	ctx := commandContext(cmd)
	log := zerolog.Ctx(ctx)

	cfg, err := loadConfig(ctx, opts.ConfigPath, opts.Layout, opts.Year)
	if err != nil {
		return err
	}
	if opts.Output != "" {
		cfg.Output = config.OutputFormat(opts.Output)
	}
	if opts.OutFile != "" {
		cfg.OutputFile = opts.OutFile
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	inputs, err := readInputs(ctx, cmd, args, cfg)
	if err != nil {
		return err
	}
	text := parser.Combine(inputs)
	log.Info().Strs("sources", parser.Sources(inputs)).Int("bytes", len(text)).Msg("inputs read")

	layout, detection, err := detector.New().Resolve(cfg.Layout, text)
	if err != nil {
		return err
	}
	if detection != nil {
		best := detection.BestMatch()
		log.Info().Str("layout", string(layout)).Float64("confidence", best.Confidence).Msg("layout detected")
		if detection.AmbiguityNote != "" {
			log.Warn().Msg(detection.AmbiguityNote)
		}
	}

	p, err := parser.New(layout, cfg.DefaultYear)
	if err != nil {
		return err
	}

	extracted := parser.ExtractInputs(p, inputs)
	kept := parser.Dedupe(extracted)
	log.Info().Int("extracted", len(extracted)).Int("kept", len(kept)).Msg("records parsed")

	report := output.NewReport(layout, parser.Sources(inputs), extracted, kept, start)

	formatter, err := output.New(string(cfg.Output), output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
		NoColor: opts.NoColor,
		Header:  cfg.Header(),
	})
	if err != nil {
		return err
	}

	if err := writeReport(ctx, cmd, formatter, report, cfg.OutputFile); err != nil {
		return err
	}
	if cfg.OutputFile != "" {
		log.Info().Str("file", cfg.OutputFile).Str("format", formatter.Name()).Msg("table written")
	}

	if cfg.Database != "" {
		if err := saveReport(ctx, cfg.Database, report); err != nil {
			return err
		}
		log.Info().Str("database", cfg.Database).Str("run_id", report.Metadata.RunID).Msg("records stored")
	}

	// Webhook failures are logged but don't fail the run
	sendWebhooks(ctx, cfg, opts, report)

	if !report.HasRecords() {
		log.Warn().Str("layout", string(layout)).Msg("no reviews recognised")
		ExitCode = 1
	}

	return nil
}

// loadConfig loads the config file and applies the layout and year flags.
func loadConfig(ctx context.Context, path, layout string, year int) (*config.Config, error) {
	cfg, err := config.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if layout != "" {
		cfg.Layout = parser.Layout(layout)
	}
	if year != 0 {
		cfg.DefaultYear = year
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeReport(ctx context.Context, cmd *cobra.Command, f output.Formatter, report *output.Report, path string) error {
	w, closeOut, err := openOutput(cmd, path)
	if err != nil {
		return err
	}
	if err := f.Format(ctx, report, w); err != nil {
		_ = closeOut()
		return fmt.Errorf("formatting output: %w", err)
	}
	if err := closeOut(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}

func saveReport(ctx context.Context, dsn string, report *output.Report) error {
	db, err := store.Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Save(ctx, store.Run{
		ID:      report.Metadata.RunID,
		Layout:  report.Metadata.Layout,
		Records: report.Records,
	})
	return err
}

// sendWebhooks sends the report to all configured webhooks.
func sendWebhooks(ctx context.Context, cfg *config.Config, opts *ParseOptions, report *output.Report) {
	webhooks := collectWebhooks(cfg, opts)

	if len(webhooks) == 0 {
		return
	}

	log := zerolog.Ctx(ctx)
	client := webhook.NewClient(nil)

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, report.HasRecords()) {
			continue
		}

		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			log.Info().Str("webhook", name).Int("status", resp.StatusCode).Dur("took", resp.Duration).Msg("webhook sent")
		} else {
			log.Error().Str("webhook", name).Err(resp.Error).Msg("webhook failed")
		}
	}
}

// collectWebhooks merges config file webhooks with CLI webhook.
func collectWebhooks(cfg *config.Config, opts *ParseOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)

	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnRecords
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}

// shouldFireWebhook determines if a webhook should fire based on trigger and result.
func shouldFireWebhook(trigger config.WebhookTrigger, hasRecords bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	default:
		return hasRecords
	}
}

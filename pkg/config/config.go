package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/revtab/pkg/parser"
)

// Load reads and validates a configuration file. An empty path yields
// the defaults with environment overrides applied.
func Load(_ context.Context, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnvironmentOverrides(); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and fills in defaults for
// optional webhook fields.
func Validate(cfg *Config) error {
	switch cfg.Layout {
	case parser.LayoutAuto, parser.LayoutJD, parser.LayoutTmall:
	case "":
		cfg.Layout = DefaultLayout
	default:
		return fmt.Errorf("layout: invalid layout %q (must be auto, jd, or tmall)", cfg.Layout)
	}

	if err := ValidateYear(cfg.DefaultYear); err != nil {
		return fmt.Errorf("default_year: %w", err)
	}

	switch cfg.Output {
	case OutputCSV, OutputJSON, OutputText:
	case "":
		cfg.Output = DefaultOutput
	default:
		return fmt.Errorf("output: invalid format %q (must be csv, json, or text)", cfg.Output)
	}

	if len(cfg.CSVHeader) > 0 {
		if len(cfg.CSVHeader) != len(parser.Columns) {
			return fmt.Errorf("csv_header: expected %d names, got %d", len(parser.Columns), len(cfg.CSVHeader))
		}
		for i, name := range cfg.CSVHeader {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("csv_header[%d]: name is empty", i)
			}
		}
	}

	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

// ValidateYear checks that short JD dates completed with year still
// produce a ten character YYYY-MM-DD date.
func ValidateYear(year int) error {
	if year < 1000 || year > 9999 {
		return fmt.Errorf("year %d must have four digits", year)
	}
	return nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("url must have a host")
	}

	// Expand environment variables in token
	wh.Token = expandEnvVar(wh.Token)

	if wh.Trigger != "" {
		switch wh.Trigger {
		case WebhookTriggerOnRecords, WebhookTriggerAlways, WebhookTriggerNever:
		default:
			return fmt.Errorf("invalid trigger %q (must be on_records, always, or never)", wh.Trigger)
		}
	} else {
		wh.Trigger = WebhookTriggerOnRecords
	}

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}

	if strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${") {
		return os.Getenv(s[1:])
	}

	return s
}

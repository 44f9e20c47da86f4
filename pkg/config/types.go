// Package config provides configuration loading and validation for revtab.
package config

import (
	"time"

	"github.com/ccollicutt/revtab/pkg/parser"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Inputs are paste files or glob patterns. "-" reads stdin.
	// Command-line arguments replace this list.
	Inputs []string `yaml:"inputs,omitempty"`

	// Layout selects the parser: auto, jd or tmall.
	Layout parser.Layout `yaml:"layout"`

	// DefaultYear completes JD dates shown as MM-DD.
	DefaultYear int `yaml:"default_year"`

	// Output is the output format: csv, json or text.
	Output OutputFormat `yaml:"output"`

	// OutputFile is where the table is written. Empty means stdout.
	OutputFile string `yaml:"output_file,omitempty"`

	// Database is an optional SQLite file that receives every run's records.
	Database string `yaml:"database,omitempty"`

	// CSVHeader overrides the CSV header names. Must have exactly three entries.
	CSVHeader []string `yaml:"csv_header,omitempty"`

	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// OutputFormat names a table rendering.
type OutputFormat string

const (
	OutputCSV  OutputFormat = "csv"
	OutputJSON OutputFormat = "json"
	OutputText OutputFormat = "text"
)

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnRecords fires only when at least one record was parsed (default).
	WebhookTriggerOnRecords WebhookTrigger = "on_records"
	// WebhookTriggerAlways fires after every run.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint that receives the parsed report.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	// Defaults to "on_records" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

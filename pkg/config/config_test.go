package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ccollicutt/revtab/pkg/parser"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
inputs:
  - pastes/*.txt
layout: jd
default_year: 2025
output: json
output_file: out.json
database: reviews.db
`
	path := writeTempFile(t, "config.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Inputs) != 1 {
		t.Errorf("Inputs = %d, want 1", len(cfg.Inputs))
	}
	if cfg.Layout != parser.LayoutJD {
		t.Errorf("Layout = %q, want %q", cfg.Layout, parser.LayoutJD)
	}
	if cfg.DefaultYear != 2025 {
		t.Errorf("DefaultYear = %d, want 2025", cfg.DefaultYear)
	}
	if cfg.Output != OutputJSON {
		t.Errorf("Output = %q, want json", cfg.Output)
	}
	if cfg.OutputFile != "out.json" || cfg.Database != "reviews.db" {
		t.Errorf("OutputFile = %q, Database = %q", cfg.OutputFile, cfg.Database)
	}
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	path := writeTempFile(t, "config.yaml", "layout: tmall\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultYear != DefaultYear {
		t.Errorf("DefaultYear = %d, want %d", cfg.DefaultYear, DefaultYear)
	}
	if cfg.Output != DefaultOutput {
		t.Errorf("Output = %q, want %q", cfg.Output, DefaultOutput)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load(context.Background(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Layout != DefaultLayout {
		t.Errorf("Layout = %q, want %q", cfg.Layout, DefaultLayout)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(context.Background(), "/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	content := `invalid: yaml: content: [`
	path := writeTempFile(t, "invalid.yaml", content)
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvLayout, "tmall")
	t.Setenv(EnvDefaultYear, "2024")
	t.Setenv(EnvOutput, "text")

	path := writeTempFile(t, "config.yaml", "layout: jd\ndefault_year: 2025\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Layout != parser.LayoutTmall {
		t.Errorf("Layout = %q, want tmall", cfg.Layout)
	}
	if cfg.DefaultYear != 2024 {
		t.Errorf("DefaultYear = %d, want 2024", cfg.DefaultYear)
	}
	if cfg.Output != OutputText {
		t.Errorf("Output = %q, want text", cfg.Output)
	}
}

func TestLoad_InvalidYearEnvironment(t *testing.T) {
	t.Setenv(EnvDefaultYear, "next")
	_, err := Load(context.Background(), "")
	if err == nil {
		t.Error("Load() expected error for non-numeric year")
	}
}

func TestValidate_Layout(t *testing.T) {
	tests := []struct {
		layout  parser.Layout
		wantErr bool
	}{
		{parser.LayoutAuto, false},
		{parser.LayoutJD, false},
		{parser.LayoutTmall, false},
		{"", false},
		{"amazon", true},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Layout = tt.layout
		err := Validate(cfg)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(layout=%q) error = %v, wantErr %v", tt.layout, err, tt.wantErr)
		}
	}
}

func TestValidate_EmptyLayoutDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout = ""
	cfg.Output = ""
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Layout != DefaultLayout || cfg.Output != DefaultOutput {
		t.Errorf("Layout = %q, Output = %q", cfg.Layout, cfg.Output)
	}
}

func TestValidate_DefaultYear(t *testing.T) {
	tests := []struct {
		year    int
		wantErr bool
	}{
		{2026, false},
		{1000, false},
		{9999, false},
		{26, true},
		{0, true},
		{10000, true},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.DefaultYear = tt.year
		err := Validate(cfg)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(default_year=%d) error = %v, wantErr %v", tt.year, err, tt.wantErr)
		}
	}
}

func TestValidate_Output(t *testing.T) {
	for _, out := range []OutputFormat{OutputCSV, OutputJSON, OutputText} {
		cfg := DefaultConfig()
		cfg.Output = out
		if err := Validate(cfg); err != nil {
			t.Errorf("Validate(output=%q) error = %v", out, err)
		}
	}

	cfg := DefaultConfig()
	cfg.Output = "xlsx"
	if err := Validate(cfg); err == nil {
		t.Error("Validate() expected error for unknown output format")
	}
}

func TestValidate_CSVHeader(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CSVHeader = []string{"author", "date", "review"}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got := cfg.Header(); got[2] != "review" {
		t.Errorf("Header() = %v", got)
	}

	cfg.CSVHeader = []string{"author", "date"}
	if err := Validate(cfg); err == nil {
		t.Error("Validate() expected error for two header names")
	}

	cfg.CSVHeader = []string{"author", " ", "review"}
	if err := Validate(cfg); err == nil {
		t.Error("Validate() expected error for blank header name")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Layout != parser.LayoutAuto {
		t.Errorf("Layout = %q, want auto", cfg.Layout)
	}
	if cfg.DefaultYear != 2026 {
		t.Errorf("DefaultYear = %d, want 2026", cfg.DefaultYear)
	}
	if got := cfg.Header(); len(got) != 3 || got[0] != parser.Columns[0] {
		t.Errorf("Header() = %v, want %v", got, parser.Columns)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate(DefaultConfig()) error = %v", err)
	}
}

// ============================================================================
// Webhook Validation Tests
// ============================================================================

func configWithWebhooks(webhooks ...WebhookConfig) *Config {
	cfg := DefaultConfig()
	cfg.Webhooks = webhooks
	return cfg
}

func TestValidate_Webhook_Valid(t *testing.T) {
	cfg := configWithWebhooks(WebhookConfig{
		Name:    "test-webhook",
		URL:     "https://example.com/webhook",
		Trigger: WebhookTriggerOnRecords,
		Timeout: 10 * time.Second,
	})
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate_Webhook_ValidHTTP(t *testing.T) {
	cfg := configWithWebhooks(WebhookConfig{URL: "http://localhost:8080/webhook"})
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate_Webhook_MissingURL(t *testing.T) {
	cfg := configWithWebhooks(WebhookConfig{Name: "no-url", Trigger: WebhookTriggerOnRecords})
	if err := Validate(cfg); err == nil {
		t.Error("Validate() expected error for missing URL")
	}
}

func TestValidate_Webhook_InvalidScheme(t *testing.T) {
	cfg := configWithWebhooks(WebhookConfig{URL: "ftp://example.com/webhook"})
	if err := Validate(cfg); err == nil {
		t.Error("Validate() expected error for non-http scheme")
	}
}

func TestValidate_Webhook_MissingHost(t *testing.T) {
	cfg := configWithWebhooks(WebhookConfig{URL: "https:///webhook"})
	if err := Validate(cfg); err == nil {
		t.Error("Validate() expected error for url without host")
	}
}

func TestValidate_Webhook_InvalidTrigger(t *testing.T) {
	cfg := configWithWebhooks(WebhookConfig{URL: "https://example.com/webhook", Trigger: "on_issues"})
	if err := Validate(cfg); err == nil {
		t.Error("Validate() expected error for invalid trigger")
	}
}

func TestValidate_Webhook_AllTriggers(t *testing.T) {
	triggers := []WebhookTrigger{
		WebhookTriggerOnRecords,
		WebhookTriggerAlways,
		WebhookTriggerNever,
	}

	for _, trigger := range triggers {
		cfg := configWithWebhooks(WebhookConfig{URL: "https://example.com/webhook", Trigger: trigger})
		if err := Validate(cfg); err != nil {
			t.Errorf("Validate() with trigger %q error = %v", trigger, err)
		}
	}
}

func TestValidate_Webhook_Defaults(t *testing.T) {
	cfg := configWithWebhooks(WebhookConfig{URL: "https://example.com/webhook"})
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Webhooks[0].Trigger != WebhookTriggerOnRecords {
		t.Errorf("Default trigger = %v, want %v", cfg.Webhooks[0].Trigger, WebhookTriggerOnRecords)
	}
	if cfg.Webhooks[0].Timeout != DefaultWebhookTimeout {
		t.Errorf("Default timeout = %v, want %v", cfg.Webhooks[0].Timeout, DefaultWebhookTimeout)
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("TEST_WEBHOOK_TOKEN", "secret-value")

	tests := []struct {
		input string
		want  string
	}{
		{"${TEST_WEBHOOK_TOKEN}", "secret-value"},
		{"$TEST_WEBHOOK_TOKEN", "secret-value"},
		{"plain-value", "plain-value"},
		{"", ""},
		{"${NONEXISTENT_VAR}", ""},
	}

	for _, tt := range tests {
		got := expandEnvVar(tt.input)
		if got != tt.want {
			t.Errorf("expandEnvVar(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLoad_WithWebhooks(t *testing.T) {
	content := `
layout: tmall
webhooks:
  - name: sheet-sync
    url: "https://example.com/webhook"
    trigger: on_records
    timeout: 30s
  - url: "https://backup.example.com/webhook"
    trigger: always
`
	path := writeTempFile(t, "config-with-webhooks.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Webhooks) != 2 {
		t.Fatalf("Webhooks = %d, want 2", len(cfg.Webhooks))
	}
	if cfg.Webhooks[0].Name != "sheet-sync" {
		t.Errorf("Webhook[0].Name = %q, want %q", cfg.Webhooks[0].Name, "sheet-sync")
	}
	if cfg.Webhooks[0].Timeout != 30*time.Second {
		t.Errorf("Webhook[0].Timeout = %v, want 30s", cfg.Webhooks[0].Timeout)
	}
	if cfg.Webhooks[1].Trigger != WebhookTriggerAlways {
		t.Errorf("Webhook[1].Trigger = %v, want %v", cfg.Webhooks[1].Trigger, WebhookTriggerAlways)
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

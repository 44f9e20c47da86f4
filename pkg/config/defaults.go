package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ccollicutt/revtab/pkg/parser"
)

// Default values for configuration.
const (
	DefaultLayout         = parser.LayoutAuto
	DefaultYear           = 2026
	DefaultOutput         = OutputCSV
	DefaultWebhookTimeout = 10 * time.Second
	DefaultOutputFile     = "reviews_parsed.csv"
)

// Environment variable names.
const (
	EnvLayout      = "REVTAB_LAYOUT"
	EnvDefaultYear = "REVTAB_DEFAULT_YEAR"
	EnvOutput      = "REVTAB_OUTPUT"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Layout:      DefaultLayout,
		DefaultYear: DefaultYear,
		Output:      DefaultOutput,
	}
}

// Header returns the CSV header to write.
func (c *Config) Header() []string {
	if len(c.CSVHeader) == len(parser.Columns) {
		return c.CSVHeader
	}
	return parser.Columns
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() error {
	if layout := os.Getenv(EnvLayout); layout != "" {
		c.Layout = parser.Layout(layout)
	}

	if year := os.Getenv(EnvDefaultYear); year != "" {
		y, err := strconv.Atoi(year)
		if err != nil {
			return fmt.Errorf("%s: %q is not a year", EnvDefaultYear, year)
		}
		c.DefaultYear = y
	}

	if out := os.Getenv(EnvOutput); out != "" {
		c.Output = OutputFormat(out)
	}

	return nil
}

// Package logging builds the zerolog logger used by the revtab commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Supported log formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// DefaultLevel keeps the commands quiet unless something goes wrong.
const DefaultLevel = "warn"

// Options configures New.
type Options struct {
	Level  string
	Format string
	// Output defaults to stderr so that stdout stays reserved for tables.
	Output io.Writer
}

// New returns a logger for the given options.
func New(opts Options) (zerolog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var zl zerolog.Logger
	switch strings.ToLower(opts.Format) {
	case "", FormatConsole:
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	case FormatJSON:
		zl = zerolog.New(out)
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q (use console or json)", opts.Format)
	}

	return zl.Level(level).With().Timestamp().Str("service", "revtab").Logger(), nil
}

// ParseLevel maps a level name to a zerolog level. Empty means DefaultLevel.
func ParseLevel(name string) (zerolog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "", "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q (use debug, info, warn or error)", name)
	}
}

package output

import (
	"context"
	"fmt"
	"io"

	"github.com/ccollicutt/revtab/pkg/parser"
)

// Formatter renders a report in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (csv, json, text).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose adds run metadata to text output.
	Verbose bool

	// Quiet limits text and json output to the summary.
	Quiet bool

	// NoColor disables colored text headers.
	NoColor bool

	// Header overrides the column names. Nil means parser.Columns.
	Header []string
}

func (o FormatOptions) header() []string {
	if len(o.Header) == len(parser.Columns) {
		return o.Header
	}
	return parser.Columns
}

// New returns the formatter registered under name.
func New(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "csv":
		return NewCSVFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	case "text":
		return NewTextFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use csv, json or text)", name)
	}
}

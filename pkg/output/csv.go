package output

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVFormatter writes the record table as UTF-8 CSV with a byte order
// mark, so spreadsheet tools pick the right encoding for Hangul and Han text.
type CSVFormatter struct {
	opts FormatOptions
}

// NewCSVFormatter creates a new CSV formatter with the given options.
func NewCSVFormatter(opts FormatOptions) *CSVFormatter {
	return &CSVFormatter{opts: opts}
}

// Name returns the format name.
func (f *CSVFormatter) Name() string {
	return "csv"
}

// Format writes the header row followed by one row per record.
// Quiet and Verbose do not apply; the table is always complete.
func (f *CSVFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	bom := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(bom)

	if err := cw.Write(f.opts.header()); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for i, rec := range report.Records {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := cw.Write(rec.Row()); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	// Close flushes the encoder; it does not close w.
	return bom.Close()
}

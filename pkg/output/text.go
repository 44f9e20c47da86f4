package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/width"
)

// TextFormatter formats reports as an aligned, human-readable table.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "revtab: %d extracted, %d kept, %d duplicates dropped\n",
		report.Summary.Extracted,
		report.Summary.Kept,
		report.Summary.Duplicates)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	heading := color.New(color.FgCyan, color.Bold)
	if f.opts.NoColor {
		heading.DisableColor()
	}

	layout := string(report.Metadata.Layout)
	if layout == "" {
		layout = "unknown"
	}
	heading.Fprintf(w, "=== revtab: %s layout ===\n", layout)
	fmt.Fprintln(w)

	header := f.opts.header()
	authorWidth := displayWidth(header[0])
	for _, rec := range report.Records {
		if n := displayWidth(rec.Author); n > authorWidth {
			authorWidth = n
		}
	}
	dateWidth := max(displayWidth(header[1]), len("2006-01-02"))

	fmt.Fprintf(w, "%s  %s  %s\n", pad(header[0], authorWidth), pad(header[1], dateWidth), header[2])
	for _, rec := range report.Records {
		fmt.Fprintf(w, "%s  %s  %s\n", pad(rec.Author, authorWidth), pad(rec.Date, dateWidth), rec.Body)
	}
	if len(report.Records) == 0 {
		fmt.Fprintln(w, "(no reviews recognised)")
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d extracted, %d kept, %d duplicates dropped\n",
		report.Summary.Extracted,
		report.Summary.Kept,
		report.Summary.Duplicates)

	if f.opts.Verbose {
		fmt.Fprintf(w, "Run: %s\n", report.Metadata.RunID)
		if len(report.Metadata.Sources) > 0 {
			fmt.Fprintf(w, "Sources: %s\n", strings.Join(report.Metadata.Sources, ", "))
		}
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return nil
}

// displayWidth counts terminal cells, two for wide and fullwidth runes.
func displayWidth(s string) int {
	n := 0
	for len(s) > 0 {
		p, size := width.LookupString(s)
		if size == 0 {
			size = 1
		}
		switch p.Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
		s = s[size:]
	}
	return n
}

func pad(s string, cells int) string {
	if gap := cells - displayWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

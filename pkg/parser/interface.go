package parser

import (
	"errors"
	"fmt"
)

// ErrUnknownLayout is returned by New for layouts without a parser.
var ErrUnknownLayout = errors.New("unknown layout")

// Parser extracts review records from the paste of one page layout.
// Implementations are stateless and safe to reuse.
type Parser interface {
	// Layout returns the layout this parser reads.
	Layout() Layout

	// Lines returns the cleaned line sequence the parser scans.
	Lines(text string) []string

	// Extract returns every recognised record in page order, before Dedupe.
	Extract(text string) []Record
}

// New returns the parser for layout. defaultYear completes JD dates that
// are shown without a year and is ignored by other layouts.
func New(layout Layout, defaultYear int) (Parser, error) {
	switch layout {
	case LayoutJD:
		return &JDParser{DefaultYear: defaultYear}, nil
	case LayoutTmall:
		return &TmallParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (use jd or tmall)", ErrUnknownLayout, layout)
	}
}

// Parse runs p over text and removes duplicate records.
func Parse(p Parser, text string) []Record {
	return Dedupe(p.Extract(text))
}

// ExtractInputs runs p over each input on its own, so page chrome such as
// the JD header is trimmed per page, and returns the records in input
// order. Call Dedupe on the result to drop reviews repeated across pages.
func ExtractInputs(p Parser, inputs []Input) []Record {
	var records []Record
	for _, in := range inputs {
		records = append(records, p.Extract(in.Text)...)
	}
	return records
}

// InputLines returns the cleaned lines of each input, in input order.
func InputLines(p Parser, inputs []Input) []string {
	var lines []string
	for _, in := range inputs {
		lines = append(lines, p.Lines(in.Text)...)
	}
	return lines
}

// JDParser reads JD review pages.
type JDParser struct {
	DefaultYear int
}

func (p *JDParser) Layout() Layout { return LayoutJD }

func (p *JDParser) Lines(text string) []string {
	return NormalizeLines(PrecleanJD(text))
}

func (p *JDParser) Extract(text string) []Record {
	return ExtractJD(text, p.DefaultYear)
}

// TmallParser reads Tmall review pages.
type TmallParser struct{}

func (p *TmallParser) Layout() Layout { return LayoutTmall }

func (p *TmallParser) Lines(text string) []string {
	return NormalizeLines(text)
}

func (p *TmallParser) Extract(text string) []Record {
	return ExtractTmall(text)
}

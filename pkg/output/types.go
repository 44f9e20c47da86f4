// Package output renders parsed review tables.
package output

import (
	"time"

	"github.com/google/uuid"

	"github.com/ccollicutt/revtab/pkg/parser"
)

// Report is the complete result of one parse run.
type Report struct {
	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`

	// Records are the deduplicated reviews in scan order.
	Records []parser.Record `json:"records"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate counts.
type Summary struct {
	// Extracted is the number of records recognised before deduplication.
	Extracted int `json:"extracted"`

	// Kept is the number of records after deduplication.
	Kept int `json:"kept"`

	// Duplicates is Extracted minus Kept.
	Duplicates int `json:"duplicates"`
}

// Metadata provides context about the parse run.
type Metadata struct {
	// RunID identifies the run across the table, database and webhooks.
	RunID string `json:"run_id"`

	// Layout is the parser layout that produced the records.
	Layout parser.Layout `json:"layout"`

	// Sources lists the inputs that were read.
	Sources []string `json:"sources"`

	// ParsedAt is when the run finished.
	ParsedAt time.Time `json:"parsed_at"`

	// Duration is how long the run took.
	Duration time.Duration `json:"duration"`
}

// NewReport builds a Report from the records before and after deduplication.
func NewReport(layout parser.Layout, sources []string, extracted, kept []parser.Record, started time.Time) *Report {
	if kept == nil {
		kept = []parser.Record{}
	}
	now := time.Now()
	return &Report{
		Records: kept,
		Summary: Summary{
			Extracted:  len(extracted),
			Kept:       len(kept),
			Duplicates: len(extracted) - len(kept),
		},
		Metadata: Metadata{
			RunID:    uuid.NewString(),
			Layout:   layout,
			Sources:  sources,
			ParsedAt: now,
			Duration: now.Sub(started),
		},
	}
}

// HasRecords returns true if at least one review was recognised.
func (r *Report) HasRecords() bool {
	return len(r.Records) > 0
}

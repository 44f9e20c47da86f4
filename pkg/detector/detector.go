// Package detector guesses which storefront layout a pasted review page came from.
package detector

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ccollicutt/revtab/pkg/parser"
)

// ErrNoLayoutSignal is returned by Resolve when no layout marker was found.
var ErrNoLayoutSignal = errors.New("no layout markers found; pass --layout jd or --layout tmall")

// DetectionResult holds the result of analyzing a paste.
type DetectionResult struct {
	Matches       []LayoutMatch // Layouts that matched, sorted by confidence descending
	SampledLines  int           // Number of cleaned lines sampled
	MarkerLines   int           // Number of lines matching any signature
	AmbiguityNote string        // Warning when the top layouts tie
}

// LayoutMatch represents a layout that matched with its confidence score.
type LayoutMatch struct {
	Signature  *LayoutSignature
	Confidence float64 // 0.0 to 1.0 (share of all marker lines)
	MatchCount int     // Number of marker lines for this layout
	SampleLine string  // First marker line seen
}

// Detector scores pastes against layout signatures.
type Detector struct {
	signatures []*LayoutSignature
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of cleaned lines to sample (default 5000).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// New creates a new Detector with default signatures.
func New(opts ...Option) *Detector {
	d := &Detector{
		signatures: DefaultSignatures(),
		sampleSize: 5000,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromText analyzes raw pasted text.
func (d *Detector) DetectFromText(text string) *DetectionResult {
	lines := parser.NormalizeLines(text)
	if len(lines) > d.sampleSize {
		lines = lines[:d.sampleSize]
	}
	return d.DetectFromLines(lines)
}

// DetectFromLines analyzes already normalized lines.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	result := &DetectionResult{
		SampledLines: len(lines),
	}

	counts := make(map[parser.Layout]*LayoutMatch)

	for _, line := range lines {
		for _, sig := range d.signatures {
			if !sig.matches(line) {
				continue
			}
			m := counts[sig.Layout]
			if m == nil {
				m = &LayoutMatch{Signature: sig, SampleLine: line}
				counts[sig.Layout] = m
			}
			m.MatchCount++
			result.MarkerLines++
		}
	}

	for _, m := range counts {
		m.Confidence = float64(m.MatchCount) / float64(result.MarkerLines)
		result.Matches = append(result.Matches, *m)
	}

	// Highest confidence first; layout name breaks ties for stable output
	sort.Slice(result.Matches, func(i, j int) bool {
		if result.Matches[i].Confidence != result.Matches[j].Confidence {
			return result.Matches[i].Confidence > result.Matches[j].Confidence
		}
		return result.Matches[i].Signature.Layout < result.Matches[j].Signature.Layout
	})

	if len(result.Matches) > 1 && result.Matches[0].MatchCount == result.Matches[1].MatchCount {
		result.AmbiguityNote = fmt.Sprintf(
			"%s and %s markers are equally frequent. Pass --layout explicitly if the result looks wrong.",
			result.Matches[0].Signature.Name, result.Matches[1].Signature.Name)
	}

	return result
}

// BestMatch returns the highest confidence match, or nil if none found.
func (r *DetectionResult) BestMatch() *LayoutMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one layout matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}

// Resolve returns requested unless it is parser.LayoutAuto, in which case
// the best detected layout for text is returned along with the detection
// result. Auto detection with no markers fails with ErrNoLayoutSignal.
func (d *Detector) Resolve(requested parser.Layout, text string) (parser.Layout, *DetectionResult, error) {
	if requested != parser.LayoutAuto && requested != "" {
		return requested, nil, nil
	}

	result := d.DetectFromText(text)
	best := result.BestMatch()
	if best == nil {
		return "", result, ErrNoLayoutSignal
	}
	return best.Signature.Layout, result, nil
}

package detector

import (
	"regexp"

	"github.com/ccollicutt/revtab/pkg/parser"
)

// LayoutSignature describes the lines that give a page layout away.
type LayoutSignature struct {
	Layout      parser.Layout
	Name        string           // Human-readable name
	Patterns    []*regexp.Regexp // Compiled regexes (set during init)
	PatternStrs []string         // Pattern strings, in match priority order
	Examples    []string         // Example marker lines
}

// DefaultSignatures returns the built-in layout signatures.
func DefaultSignatures() []*LayoutSignature {
	signatures := []*LayoutSignature{
		{
			Layout: parser.LayoutJD,
			Name:   "JD review list",
			PatternStrs: []string{
				`^avatar$`,
				`^star$`,
			},
			Examples: []string{"avatar", "star"},
		},
		{
			Layout: parser.LayoutTmall,
			Name:   "Tmall review list",
			PatternStrs: []string{
				`^20\d{2}年\d{1,2}月\d{1,2}日已购：.+$`,
				`^\d+天后追评：.+$`,
			},
			Examples: []string{"2025年3月12日已购：框架结构", "30天后追评：用了一个月"},
		},
	}

	for _, s := range signatures {
		for _, p := range s.PatternStrs {
			s.Patterns = append(s.Patterns, regexp.MustCompile(p))
		}
	}

	return signatures
}

// matches reports whether line is a marker line of this layout.
func (s *LayoutSignature) matches(line string) bool {
	for _, p := range s.Patterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

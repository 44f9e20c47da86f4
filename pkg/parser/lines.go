package parser

import (
	"regexp"
	"strings"
)

// objectReplacement is the placeholder glyph browsers leave behind for images.
const objectReplacement = "\ufffc"

var (
	digitsOnly  = regexp.MustCompile(`^\p{Nd}+$`)
	bulletsOnly = regexp.MustCompile(`^[•·\-—_]+$`)
)

// NormalizeLines splits text into trimmed, non-empty lines with the
// object replacement glyph removed. Order is preserved and repeated
// lines are kept.
func NormalizeLines(text string) []string {
	var lines []string
	for _, raw := range strings.FieldsFunc(text, isLineBreak) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		line = strings.TrimSpace(strings.ReplaceAll(line, objectReplacement, ""))
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// JoinLines is the inverse of NormalizeLines for already clean lines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// IsCommonNoise reports whether line is a bare counter or a separator
// made of bullets, dashes or underscores. Both layouts scatter these
// between review fields.
func IsCommonNoise(line string) bool {
	return digitsOnly.MatchString(line) || bulletsOnly.MatchString(line)
}

// isLineBreak matches every rune that starts a new line in pasted text,
// including the vertical tab, form feed, file/group/record separators,
// NEL and the Unicode line and paragraph separators.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// firstWord returns the first whitespace-delimited token of s.
func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

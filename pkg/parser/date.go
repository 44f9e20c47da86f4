package parser

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	jdFullDate  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	jdShortDate = regexp.MustCompile(`^\d{2}-\d{2}$`)
)

// DateNormalizer recognises JD review date lines.
type DateNormalizer struct {
	defaultYear int
}

// NewDateNormalizer creates a normalizer that completes year-less dates
// with defaultYear.
func NewDateNormalizer(defaultYear int) *DateNormalizer {
	return &DateNormalizer{defaultYear: defaultYear}
}

// Normalize returns the ISO date for a JD date line. Full dates pass
// through unchanged; MM-DD dates get the default year. The second return
// value is false when the line is not date-shaped.
func (n *DateNormalizer) Normalize(line string) (string, bool) {
	if jdFullDate.MatchString(line) {
		return line, true
	}
	if jdShortDate.MatchString(line) {
		return fmt.Sprintf("%04d-%s", n.defaultYear, line), true
	}
	return "", false
}

// formatYMD zero-pads year, month and day digit strings into YYYY-MM-DD.
// The inputs come from regexp digit groups, so conversion cannot fail.
func formatYMD(y, m, d string) string {
	yi, _ := strconv.Atoi(y)
	mi, _ := strconv.Atoi(m)
	di, _ := strconv.Atoi(d)
	return fmt.Sprintf("%04d-%02d-%02d", yi, mi, di)
}

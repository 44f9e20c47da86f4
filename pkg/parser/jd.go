package parser

import "strings"

// JD page tokens. Each is a whole line in a paste of the review list.
const (
	jdAnchor      = "avatar"
	jdRating      = "star"
	jdHeader      = "京东首页"
	merchantReply = "商家回复"

	// jdDateSearchLimit bounds how far past the rating marker a date may sit.
	jdDateSearchLimit = 40
)

var jdNoiseTokens = map[string]bool{
	jdAnchor: true,
	"pic":    true,
	"more":   true,
	jdRating: true,
	"回复":     true,
	"有用":     true,
}

// isJDNoise reports whether line carries no JD record field.
func isJDNoise(line string) bool {
	return IsCommonNoise(line) || jdNoiseTokens[line]
}

// PrecleanJD strips page chrome around a JD review list. Everything
// before the first avatar line is dropped. From there on, the second line
// mentioning the storefront header marks the footer navigation, and it and
// everything after it are dropped too. Text without an avatar line is
// returned normalized but otherwise untouched.
func PrecleanJD(text string) string {
	lines := NormalizeLines(text)
	if len(lines) == 0 {
		return ""
	}

	start := indexOf(lines, jdAnchor)
	if start < 0 {
		return JoinLines(lines)
	}
	lines = lines[start:]

	hits := 0
	for i, line := range lines {
		if !strings.Contains(line, jdHeader) {
			continue
		}
		hits++
		if hits == 2 {
			lines = lines[:i]
			break
		}
	}

	return JoinLines(lines)
}

// ExtractJD scans a JD paste and returns one record per avatar anchor
// that has a rating marker and a date, in page order. Duplicates are
// not removed; see ParseJD.
func ExtractJD(text string, defaultYear int) []Record {
	s := &jdScanner{
		lines: NormalizeLines(PrecleanJD(text)),
		dates: NewDateNormalizer(defaultYear),
	}
	return s.scan()
}

// ParseJD extracts JD records and applies Dedupe.
func ParseJD(text string, defaultYear int) []Record {
	return Dedupe(ExtractJD(text, defaultYear))
}

type jdScanner struct {
	lines []string
	dates *DateNormalizer
}

func (s *jdScanner) scan() []Record {
	var records []Record
	i := 0
	for i < len(s.lines) {
		if s.lines[i] != jdAnchor {
			i++
			continue
		}
		rec, next, ok := s.record(i)
		if ok {
			records = append(records, rec)
		}
		if next <= i {
			break
		}
		i = next
	}
	return records
}

// record extracts the review whose anchor is at index at. It returns the
// index scanning should resume from and whether a record was produced.
// A returned index equal to at means the input ended right after the anchor.
func (s *jdScanner) record(at int) (Record, int, bool) {
	lines := s.lines
	if at+1 >= len(lines) {
		return Record{}, at, false
	}
	author := lines[at+1]

	j := at + 2
	for j < len(lines) && lines[j] != jdRating && lines[j] != jdAnchor {
		j++
	}
	if j >= len(lines) || lines[j] == jdAnchor {
		return Record{}, j, false
	}

	date, rawDate, j, found := s.findDate(j + 1)
	if !found {
		return Record{}, j, false
	}

	j++
	product := ""
	if j < len(lines) && !isJDNoise(lines[j]) {
		product = lines[j]
		j++
	}

	var body []string
	for ; j < len(lines); j++ {
		line := lines[j]
		if line == jdAnchor {
			break
		}
		if strings.HasPrefix(line, merchantReply) {
			continue
		}
		if line == author || line == rawDate || (product != "" && line == product) {
			continue
		}
		if isJDNoise(line) {
			continue
		}
		body = append(body, line)
	}

	return Record{
		Author: author,
		Date:   date,
		Body:   bodyOrSentinel(strings.Join(body, " ")),
	}, j, true
}

// findDate looks for a date line starting at from, giving up after
// jdDateSearchLimit lines or at the next anchor. It returns the
// normalized date, the raw line and the index where the search stopped.
func (s *jdScanner) findDate(from int) (string, string, int, bool) {
	j := from
	for steps := 0; j < len(s.lines) && steps < jdDateSearchLimit; steps++ {
		if s.lines[j] == jdAnchor {
			break
		}
		if date, ok := s.dates.Normalize(s.lines[j]); ok {
			return date, s.lines[j], j, true
		}
		j++
	}
	return "", "", j, false
}

func indexOf(lines []string, target string) int {
	for i, line := range lines {
		if line == target {
			return i
		}
	}
	return -1
}

func bodyOrSentinel(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return NoContent
	}
	return body
}

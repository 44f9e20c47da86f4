package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	tmallPurchase = regexp.MustCompile(`^(20\d{2})年(\d{1,2})月(\d{1,2})日已购：(.+)$`)
	tmallFollowUp = regexp.MustCompile(`^\d+天后追评：(.+)$`)
)

const (
	// tmallAuthorLookback is how many lines above a purchase line may hold the author.
	tmallAuthorLookback = 6

	// tmallBoundaryLookahead is how many noise lines may separate an author
	// handle from the next purchase line.
	tmallBoundaryLookahead = 8

	tmallEmptyReview = "该用户未填写评价内容"
	tmallFollowUpTag = "追评:"
)

var tmallNoisePhrases = []string{
	"为你展示真实评价",
	"默认排序",
	"款式筛选",
	"更多",
	"有用",
	"回复",
}

// tmallChrome are substrings that never occur in a reviewer handle.
var tmallChrome = []string{"展示", "排序", "筛选", "已购"}

// isTmallNoise reports whether line is Tmall page chrome.
func isTmallNoise(line string) bool {
	if containsAny(line, tmallNoisePhrases) {
		return true
	}
	if IsCommonNoise(line) {
		return true
	}
	return strings.HasPrefix(line, merchantReply)
}

// looksLikeAuthor reports whether s could be a masked Tmall handle such as "N**1".
func looksLikeAuthor(s string) bool {
	if strings.Contains(s, " ") {
		return false
	}
	if n := utf8.RuneCountInString(s); n < 2 || n > 60 {
		return false
	}
	if tmallPurchase.MatchString(s) || tmallFollowUp.MatchString(s) {
		return false
	}
	return !containsAny(s, tmallChrome)
}

// ExtractTmall scans a Tmall paste and returns one record per purchase
// line, in page order. Duplicates are not removed; see ParseTmall.
func ExtractTmall(text string) []Record {
	s := &tmallScanner{lines: NormalizeLines(text)}
	return s.scan()
}

// ParseTmall extracts Tmall records and applies Dedupe.
func ParseTmall(text string) []Record {
	return Dedupe(ExtractTmall(text))
}

type tmallScanner struct {
	lines []string
}

func (s *tmallScanner) scan() []Record {
	var records []Record
	i := 0
	for i < len(s.lines) {
		m := tmallPurchase.FindStringSubmatch(s.lines[i])
		if m == nil {
			i++
			continue
		}

		author := s.authorBefore(i)
		date := formatYMD(m[1], m[2], m[3])

		var body string
		body, i = s.body(i + 1)

		records = append(records, Record{Author: author, Date: date, Body: body})
	}
	return records
}

// authorBefore returns the closest plausible handle above the purchase
// line at idx, or UnknownAuthor.
func (s *tmallScanner) authorBefore(idx int) string {
	for back := 1; back <= tmallAuthorLookback && idx-back >= 0; back++ {
		cand := s.lines[idx-back]
		if looksLikeAuthor(cand) && !isTmallNoise(cand) {
			return cand
		}
	}
	return UnknownAuthor
}

// body collects review text from index from until the next review
// starts. It returns the composed body and the index where the next
// review begins.
func (s *tmallScanner) body(from int) (string, int) {
	var main, followUp []string

	i := from
	for ; i < len(s.lines); i++ {
		line := s.lines[i]
		if tmallPurchase.MatchString(line) || s.nextReviewStarts(i) {
			break
		}
		if strings.HasPrefix(line, merchantReply) {
			continue
		}
		if m := tmallFollowUp.FindStringSubmatch(line); m != nil {
			if txt := strings.TrimSpace(m[1]); txt != "" {
				followUp = append(followUp, txt)
			}
			continue
		}
		if !isTmallNoise(line) {
			main = append(main, line)
		}
	}

	return composeTmallBody(strings.Join(main, " "), strings.Join(followUp, " ")), i
}

// nextReviewStarts reports whether the line at idx is the author handle
// of the following review: a plausible handle whose next non-noise line,
// within tmallBoundaryLookahead noise lines, is a purchase line. Handles
// quoted inside review prose fail the second half.
func (s *tmallScanner) nextReviewStarts(idx int) bool {
	if !looksLikeAuthor(s.lines[idx]) {
		return false
	}
	j := idx + 1
	for steps := 0; j < len(s.lines) && steps < tmallBoundaryLookahead; steps++ {
		if !isTmallNoise(s.lines[j]) {
			return tmallPurchase.MatchString(s.lines[j])
		}
		j++
	}
	return false
}

func composeTmallBody(main, followUp string) string {
	main = strings.TrimSpace(main)
	followUp = strings.TrimSpace(followUp)

	if followUp != "" && main == tmallEmptyReview {
		main = ""
	}

	switch {
	case main != "" && followUp != "":
		return main + " " + tmallFollowUpTag + " " + followUp
	case followUp != "":
		return tmallFollowUpTag + " " + followUp
	case main != "":
		return main
	default:
		return NoContent
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

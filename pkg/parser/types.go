// Package parser turns pasted review-page text into review records.
package parser

// Record is a single extracted review.
type Record struct {
	// Author is the reviewer handle as shown on the page.
	Author string `json:"author"`

	// Date is the review date in YYYY-MM-DD form.
	Date string `json:"date"`

	// Body is the review text. Never empty; see NoContent.
	Body string `json:"body"`
}

// Layout identifies the storefront page layout a paste came from.
type Layout string

const (
	LayoutAuto  Layout = "auto"
	LayoutJD    Layout = "jd"
	LayoutTmall Layout = "tmall"
)

// Sentinel field values.
const (
	// NoContent replaces a body that had nothing left after filtering.
	NoContent = "내용 없음"

	// UnknownAuthor is used when no author handle precedes a Tmall purchase line.
	UnknownAuthor = "UNKNOWN"
)

// Columns are the default export header names, in column order.
var Columns = []string{"작성자id", "작성일자", "리뷰내용"}

// Row returns the record fields in export column order.
func (r Record) Row() []string {
	return []string{r.Author, r.Date, r.Body}
}

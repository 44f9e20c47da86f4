package parser

type dedupeKey struct {
	author    string
	date      string
	firstWord string
}

// Dedupe drops repeated records. Records are grouped by author, date and
// the first word of the body. A group of one keeps its record; a larger
// group keeps only its second member, since a paste that repeats a review
// carries the complete copy second. Kept records stay in input order.
func Dedupe(records []Record) []Record {
	if len(records) == 0 {
		return []Record{}
	}

	keys := make([]dedupeKey, len(records))
	ranks := make([]int, len(records))
	sizes := make(map[dedupeKey]int)

	for i, r := range records {
		k := dedupeKey{author: r.Author, date: r.Date, firstWord: firstWord(r.Body)}
		keys[i] = k
		ranks[i] = sizes[k]
		sizes[k]++
	}

	kept := make([]Record, 0, len(records))
	for i, r := range records {
		size := sizes[keys[i]]
		if (size == 1 && ranks[i] == 0) || (size >= 2 && ranks[i] == 1) {
			kept = append(kept, r)
		}
	}
	return kept
}

// Package similarity scores how close a query is to a candidate string.
//
// Scores follow the convention of fuzzy-search libraries: 0.0 means identical
// and 1.0 means unrelated. Comparison is case-insensitive and insensitive to
// the order of whitespace, underscore or hyphen separated tokens, while still
// being sensitive to the order of characters inside a token.
package similarity

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Score returns the edit distance between query and candidate normalized by the
// length of the query, clamped to [0, 1].
//
// Normalizing by the query length makes every edit the caller made count
// against the same budget, regardless of how long the stored candidate is:
// one dropped letter in "abrtura" costs 1/7, while "venda" against "vendas"
// costs 1/5.
//
// A query with no tokens matches nothing, not even a candidate without tokens.
func Score(query, candidate string) float64 {
	q := Canonical(query)
	n := utf8.RuneCountInString(q)
	if n == 0 {
		return 1
	}
	c := Canonical(candidate)
	if q == c {
		return 0
	}
	score := float64(levenshtein.ComputeDistance(q, c)) / float64(n)
	if score > 1 {
		return 1
	}
	return score
}

// Canonical lower-cases s, splits it into tokens and joins them back sorted
// with single spaces.
func Canonical(s string) string {
	tokens := strings.FieldsFunc(strings.ToLower(s), isSeparator)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == '_' || r == '-'
}

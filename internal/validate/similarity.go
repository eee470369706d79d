package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Acceptance thresholds.
const (
	MinProductScore = 0.55
	MinBrandScore   = 0.5

	// usableProductScore is the structured-data score below which the page
	// title is consulted.
	usableProductScore = 0.5

	// hostBrandScore is assigned when the candidate host contains the brand.
	hostBrandScore = 0.6
)

// Normalize applies NFKC, case folding, and whitespace collapsing.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}

// Similarity returns 1 - editDistance/maxLen over the normalized strings,
// measured in runes. Two empty strings have similarity 0.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	maxLen := max(utf8.RuneCountInString(na), utf8.RuneCountInString(nb))
	if maxLen == 0 {
		return 0
	}
	d := levenshtein.Distance(na, nb, nil)
	return 1 - float64(d)/float64(maxLen)
}

// Accept reports whether a candidate's scores clear both thresholds.
func Accept(productScore, brandScore float64) bool {
	return productScore >= MinProductScore && brandScore >= MinBrandScore
}

// bestSimilarity returns the highest similarity between any value and any
// target.
func bestSimilarity(values, targets []string) float64 {
	var best float64
	for _, v := range values {
		for _, t := range targets {
			if s := Similarity(v, t); s > best {
				best = s
			}
		}
	}
	return best
}

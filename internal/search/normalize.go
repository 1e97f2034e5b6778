package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Fold lowercases s with full Unicode case folding, the comparison form
// shared by the search and recommendation code. cases.Caser is not safe
// for concurrent use, so a fresh one is made per call.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// tokenize folds s and splits it into letter/digit runs. '+' and '#' stay
// part of a token so "c++" and "c#" survive.
func tokenize(s string) []string {
	return strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})
}

func containsFolded(haystack, foldedNeedle string) bool {
	return strings.Contains(Fold(haystack), foldedNeedle)
}

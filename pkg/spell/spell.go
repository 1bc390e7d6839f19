// Package spell checks typed answers against target words. Comparison is
// case-insensitive and Unicode-normalized so composed and decomposed
// accents both match.
package spell

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// Normalize trims, case-folds, and NFC-normalizes an answer.
func Normalize(s string) string {
	return norm.NFC.String(folder.String(strings.TrimSpace(s)))
}

// Check reports whether the typed attempt spells the target word.
func Check(attempt, word string) bool {
	return Normalize(attempt) == Normalize(word)
}

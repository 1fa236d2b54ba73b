package domain

import (
	"strings"
)

// NormalizeText prepares text for comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses multiple spaces into one
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeText(text string) string {
	return strings.ToLower(NormalizeLemma(text))
}

// NormalizeLemma cleans a WordNet written form without changing its case.
// Underscores used as word separators in older WordNet dumps become spaces.
func NormalizeLemma(text string) string {
	text = strings.ReplaceAll(text, "_", " ")
	return strings.Join(strings.Fields(text), " ")
}

package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Canonicalize reduces text to the form used for anchor comparison:
// accents stripped, lower-cased, whitespace collapsed to single spaces.
// "  Crème  Brûlée " and "creme brulee" canonicalize identically.
func Canonicalize(s string) string {
	if s == "" {
		return ""
	}
	// Transformers carry internal state, so build the chain per call
	// rather than sharing one across goroutines.
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		stripped = s
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}

// tokenOverlap returns the fraction of the anchor's tokens that appear in
// the candidate's token set.
func tokenOverlap(canonText, canonAnchor string) float64 {
	anchorTokens := strings.Fields(canonAnchor)
	if len(anchorTokens) == 0 {
		return 0
	}
	textTokens := make(map[string]bool)
	for _, tok := range strings.Fields(canonText) {
		textTokens[tok] = true
	}
	hits := 0
	for _, tok := range anchorTokens {
		if textTokens[tok] {
			hits++
		}
	}
	return float64(hits) / float64(len(anchorTokens))
}

// Package normalizer turns raw product text into a comparable token
// sequence. The same pipeline runs over taxonomy breadcrumbs at index time
// and over item titles at query time, so both sides agree on what a token
// is. Output is deterministic: identical input always yields the identical
// sequence, with no locale dependence beyond ASCII case folding.
package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Tokens normalizes text and splits it into scoring tokens:
// case-fold, fold typographic quotes to a straight apostrophe, strip
// everything except letters, digits, whitespace and the product-name
// characters + & / -, then split on runs of anything that is not a
// letter, digit, or '+'. Single-character tokens and stop words are
// dropped.
func Tokens(text string) []string {
	cleaned := clean(text)

	var tokens []string
	for _, field := range strings.Fields(cleaned) {
		for _, tok := range splitToken(field) {
			if len([]rune(tok)) <= 1 {
				continue
			}
			if stopWords[tok] {
				continue
			}
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// clean lowercases, folds quotes, strips accents, and removes every rune
// outside the kept set, collapsing whitespace runs to single spaces.
func clean(text string) string {
	text = strings.ToLower(text)
	text = foldQuotes(text)
	text = stripAccents(text)

	var b strings.Builder
	b.Grow(len(text))
	space := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			space = true
		case keepRune(r):
			if space && b.Len() > 0 {
				b.WriteRune(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// keepRune reports whether a rune survives the strip pass. The small
// punctuation whitelist carries meaning in product names ("Wi-Fi",
// "A/V", "Health & Beauty", "USB+C").
func keepRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '+', '&', '/', '-':
		return true
	}
	return false
}

// splitToken splits a whitespace-free chunk on runs of characters that are
// not letters, digits, or '+'. The whitelist characters kept by clean act
// as separators here: "wi-fi" becomes ["wi", "fi"].
func splitToken(chunk string) []string {
	return strings.FieldsFunc(chunk, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+'
	})
}

// foldQuotes replaces curly and other typographic quote marks with a
// straight apostrophe so "men's" and "men’s" normalize identically.
func foldQuotes(text string) string {
	return quoteReplacer.Replace(text)
}

var quoteReplacer = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"‚", "'", // low single quote
	"‛", "'", // reversed single quote
	"′", "'", // prime
	"“", "'", // left double quote
	"”", "'", // right double quote
	"„", "'", // low double quote
	"″", "'", // double prime
)

// stripAccents removes combining diacritical marks after NFD
// normalization, so "café" and "cafe" produce the same token.
func stripAccents(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range norm.NFD.String(text) {
		if unicode.In(r, unicode.Mn) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

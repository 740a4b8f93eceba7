// Package rag provides fuzzy name retrieval over the curriculum catalogs.
// A BM25 index over program, course and semester names backs the fuzzy
// entity-extraction strategy.
package rag

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics strips combining marks so "công nghệ" and "cong nghe"
// produce the same tokens.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Tokenize lowercases, removes Vietnamese diacritics and splits on anything
// that is not a letter or digit. Vietnamese is whitespace-segmented, so
// word-level tokens are enough; folding lets unaccented typing still match.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)

	folded, _, err := transform.String(foldDiacritics, lower)
	if err != nil {
		folded = lower
	}
	// NFD does not decompose đ
	folded = strings.ReplaceAll(folded, "đ", "d")

	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

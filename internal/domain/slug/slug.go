// Package slug derives URL-safe, human-readable identifiers from free text.
// Uniqueness within a collection is enforced by the repository layer via a
// conditional reservation write; this package is the pure normalization half.
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes accented runes and drops the combining marks, so
// "Crème Brûlée" normalizes to "Creme Brulee" before slugification.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize converts free text to lowercase kebab-case: diacritics stripped,
// punctuation dropped, whitespace runs collapsed to single hyphens.
func Normalize(name string) string {
	flat, _, err := transform.String(stripMarks, name)
	if err != nil {
		flat = name
	}

	var b strings.Builder
	b.Grow(len(flat))
	pendingHyphen := false
	for _, r := range strings.ToLower(flat) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '-', r == '_', r == '/':
			pendingHyphen = true
		default:
			// punctuation and symbols are dropped entirely
		}
	}
	return b.String()
}

// Candidate returns the nth slug candidate for a base: the base itself for
// n==1, then "base-2", "base-3", and so on.
func Candidate(base string, n int) string {
	if n <= 1 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}

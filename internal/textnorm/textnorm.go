// Package textnorm canonicalizes free text for keyword comparison:
// case-fold, strip diacritics, trim surrounding whitespace.
// "Açaí  " and "acai" normalize to the same string.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, drops combining marks, and recomposes.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize returns the canonical comparison form of s.
func Normalize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return ""
	}
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		// Malformed UTF-8; compare the lowercased input as-is.
		return s
	}
	return out
}

// Words splits an already-normalized string on runs of whitespace.
func Words(s string) []string {
	return strings.Fields(s)
}

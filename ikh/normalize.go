package ikh

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// normalizer applies a Hasher's text policy one rune at a
// time so that whole-string and streaming input agree.
// A cases.Caser is stateful; a normalizer must stay on one
// goroutine.
type normalizer struct {
	strip bool
	upper cases.Caser
}

func newNormalizer(strip bool) *normalizer {
	n := &normalizer{strip: strip}
	if strip {
		n.upper = cases.Upper(language.Und)
	}

	return n
}

// appendRune appends the runes r contributes to dst. With
// stripping enabled r is upper-cased with the full Unicode
// mapping (so 'ß' becomes "SS") and everything outside A-Z
// is dropped. Otherwise r is kept as is.
func (n *normalizer) appendRune(dst []rune, r rune) []rune {
	if !n.strip {
		return append(dst, r)
	}

	if r < utf8.RuneSelf {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}

		if r >= 'A' && r <= 'Z' {
			dst = append(dst, r)
		}

		return dst
	}

	for _, ur := range n.upper.String(string(r)) {
		if ur >= 'A' && ur <= 'Z' {
			dst = append(dst, ur)
		}
	}

	return dst
}

func (n *normalizer) runes(text string) []rune {
	out := make([]rune, 0, len(text))
	for _, r := range text {
		out = n.appendRune(out, r)
	}

	return out
}

func (n *normalizer) normalize(text string) string {
	var sb strings.Builder

	for _, r := range n.runes(text) {
		sb.WriteRune(r)
	}

	return sb.String()
}

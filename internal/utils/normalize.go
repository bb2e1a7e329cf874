package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var wsRe = regexp.MustCompile(`\s+`)

// FoldName lower-cases s, drops diacritics and collapses whitespace so that
// "  Pilátes  Core" and "pilates core" compare equal.
func FoldName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = wsRe.ReplaceAllString(folded, " ")
	return strings.ToLower(folded)
}

// NormalizeEmail is the canonical form used for document ids and comparisons.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TrimMax trims a string to a maximum number of runes.
func TrimMax(s string, max int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// Compact trims every entry and drops the empty ones.
func Compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

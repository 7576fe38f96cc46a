package textutil

import (
	"regexp"
	"strings"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]+`)

// Normalize lowercases text, removes punctuation, and collapses whitespace.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "\n", " ")
	s = nonAlnumRe.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// Words returns the normalized word sequence of s.
func Words(s string) []string {
	return strings.Fields(Normalize(s))
}

// WordSet returns the set of distinct normalized words in s.
func WordSet(s string) map[string]struct{} {
	words := Words(s)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// OverlapCount returns how many distinct words appear in both sets.
func OverlapCount(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	count := 0
	for w := range a {
		if _, ok := b[w]; ok {
			count++
		}
	}
	return count
}

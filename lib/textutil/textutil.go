package textutil

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases a name and removes every whitespace character.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	return whitespaceRegex.ReplaceAllString(name, "")
}

// CollapseWhitespace trims s and collapses inner whitespace runs to a single
// space, cell text scraped from the portal is full of layout whitespace.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// Closest returns the candidate most similar to name by Jaro-Winkler
// distance over the normalized strings, ok is false when there are no
// candidates.
func Closest(name string, candidates []string) (best string, score float64, ok bool) {
	normalized := NormalizeName(name)
	for _, c := range candidates {
		s := matchr.JaroWinkler(normalized, NormalizeName(c), false)
		if !ok || s > score {
			best, score, ok = c, s, true
		}
	}
	return best, score, ok
}

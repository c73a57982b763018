package errors

import (
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// maxSuggestDistance bounds how different a candidate may be from the input
// before Suggest stops offering it.
const maxSuggestDistance = 3

// Suggest returns the candidate closest to name by case-insensitive edit
// distance, or "" if nothing is within a small distance. Ties keep the
// earliest candidate, so callers passing names in schema order get stable
// suggestions.
func Suggest(name string, candidates []string) string {
	if name == "" {
		return ""
	}
	target := []rune(strings.ToLower(name))
	best, bestDist := "", maxSuggestDistance+1
	for _, c := range candidates {
		if c == name {
			continue
		}
		d := levenshtein.DistanceForStrings(target, []rune(strings.ToLower(c)), levenshtein.DefaultOptions)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// NotFound builds an error for a missing named resource, attaching a
// "did you mean" hint when one of the known names is close.
func NotFound(code Code, kind, name string, known []string) *Error {
	err := New(code, "unknown %s %q", kind, name)
	if s := Suggest(name, known); s != "" {
		err.WithHint("did you mean %q?", s)
	}
	return err
}

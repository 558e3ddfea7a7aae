// Package globlist supplements the zero-heap core's exact name/index
// lookup (spec.md §4.H) with pattern-based listing, for callers that don't
// know an entry's exact name up front.
package globlist

import (
	"github.com/bmatcuk/doublestar/v4"

	"tinyzip"
)

// Match walks an initialized archive's central directory once and returns
// every filename matching pattern (doublestar syntax: "*", "**", "?",
// character classes), the same doublestar.MatchUnvalidated call the
// teacher's path.go uses for path matching. It does not touch state's
// located-entry slot, so a *tinyzip.FileInfo the caller already holds from
// LocateFile stays valid.
func Match(state *tinyzip.State, pattern string) ([]string, error) {
	var matches []string
	err := state.WalkNames(func(name []byte) bool {
		if doublestar.MatchUnvalidated(pattern, string(name)) {
			matches = append(matches, string(name))
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

package service

import (
	"path/filepath"
	"sort"

	set "github.com/deckarep/golang-set/v2"
)

// ReducePaths drops every path lying below another path of the list, as walking the
// ancestor already visits it. Duplicates are dropped too. A single path is returned
// as is; otherwise the result is sorted.
func ReducePaths(paths []string) []string {
	if len(paths) <= 1 {
		return append(make([]string, 0, len(paths)), paths...)
	}
	all := set.NewThreadUnsafeSet[string](paths...)
	sorted := all.ToSlice()
	sort.Strings(sorted)
	reduced := make([]string, 0, len(sorted))
	for _, p := range sorted {
		if !hasAncestorIn(p, all) {
			reduced = append(reduced, p)
		}
	}
	return reduced
}

// hasAncestorIn ascends from p up to the file system root (or ".") looking for a listed ancestor
func hasAncestorIn(p string, listed set.Set[string]) bool {
	current := filepath.Clean(p)
	for {
		parent := filepath.Dir(current)
		if parent == current {
			return false
		}
		if listed.Contains(parent) {
			return true
		}
		current = parent
	}
}

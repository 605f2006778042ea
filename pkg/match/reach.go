package match

import (
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Roots returns the directories patterns are anchored in: the static prefix
// of each pattern before its first meta character. Roots nested inside
// another root are dropped.
func Roots(patterns []string) []string {
	var bases []string
	for _, pattern := range patterns {
		base, _ := doublestar.SplitPattern(pattern)
		bases = append(bases, path.Clean(base))
	}
	sort.Strings(bases)

	var roots []string
	for _, base := range bases {
		if len(roots) > 0 && within(base, roots[len(roots)-1]) {
			continue
		}
		roots = append(roots, base)
	}
	return roots
}

func within(p, root string) bool {
	return root == "." || p == root || strings.HasPrefix(p, root+"/")
}

// MayContain reports whether some path strictly inside dir could match
// pattern, going segment by segment. A "**" segment reaches everything
// below it.
func MayContain(pattern, dir string) bool {
	segments := strings.Split(pattern, "/")
	if dir == "." {
		return len(segments) > 0
	}

	parts := strings.Split(dir, "/")
	for i, part := range parts {
		if i >= len(segments) {
			return false
		}
		if segments[i] == "**" {
			return true
		}
		ok, err := doublestar.Match(segments[i], part)
		if err != nil {
			// A brace alternative spanning segments; assume it may reach.
			return true
		}
		if !ok {
			return false
		}
	}
	return len(segments) > len(parts)
}

// AnyMayContain reports whether MayContain holds for at least one pattern.
func AnyMayContain(patterns []string, dir string) bool {
	for _, pattern := range patterns {
		if MayContain(pattern, dir) {
			return true
		}
	}
	return false
}

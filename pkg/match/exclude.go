package match

import (
	"path"
	"sort"
)

// ExcludeSet holds canonical paths that must never be re-exported.
type ExcludeSet struct {
	barrelName string
	paths      map[string]struct{}
}

// NewExcludeSet canonicalizes matched exclude paths. Paths without an
// extension are directories and are recorded as their barrel file.
func NewExcludeSet(matched []string, barrelName string) *ExcludeSet {
	s := &ExcludeSet{
		barrelName: barrelName,
		paths:      make(map[string]struct{}, len(matched)),
	}
	for _, p := range matched {
		s.paths[s.canonical(p)] = struct{}{}
	}
	return s
}

func (s *ExcludeSet) canonical(p string) string {
	p = path.Clean(p)
	if p == "." || path.Ext(p) == "" {
		return path.Join(p, s.barrelName)
	}
	return p
}

// Excludes reports whether p is excluded. A directory path is checked
// through its barrel file, the same way it was recorded.
func (s *ExcludeSet) Excludes(p string) bool {
	if s == nil {
		return false
	}
	_, ok := s.paths[s.canonical(p)]
	return ok
}

// ExcludesBarrel reports whether the barrel of dir is excluded.
func (s *ExcludeSet) ExcludesBarrel(dir string) bool {
	if s == nil {
		return false
	}
	_, ok := s.paths[path.Join(dir, s.barrelName)]
	return ok
}

// Len returns the number of canonical exclusions.
func (s *ExcludeSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.paths)
}

// Paths returns the canonical exclusions, sorted.
func (s *ExcludeSet) Paths() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.paths))
	for p := range s.paths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

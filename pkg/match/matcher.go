package match

import (
	"context"
	stderrors "errors"
	"io/fs"
	"path"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/autobarrel/pkg/errors"
	"github.com/arthur-debert/autobarrel/pkg/logging"
)

// Matcher expands glob patterns against a filesystem rooted at the base
// directory.
type Matcher struct {
	fsys   fs.FS
	ignore []string
	logger zerolog.Logger
}

// NewMatcher creates a matcher over fsys. Every ignore pattern is validated
// up front.
func NewMatcher(fsys fs.FS, ignore []string) (*Matcher, error) {
	for _, pattern := range ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Newf(errors.ErrMatchPattern, "invalid ignore pattern %q", pattern).
				WithDetail("pattern", pattern)
		}
	}
	return &Matcher{
		fsys:   fsys,
		ignore: ignore,
		logger: logging.GetLogger("match"),
	}, nil
}

// Ignored reports whether p matches any ignore pattern.
func (m *Matcher) Ignored(p string) bool {
	return Any(m.ignore, p)
}

// Match expands a single pattern. A pattern that matches nothing yields an
// empty result, not an error.
func (m *Matcher) Match(pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Newf(errors.ErrMatchPattern, "invalid pattern %q", pattern).
			WithDetail("pattern", pattern)
	}

	var matches []string
	err := doublestar.GlobWalk(m.fsys, pattern, func(p string, d fs.DirEntry) error {
		p = path.Clean(p)
		if m.Ignored(p) {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		matches = append(matches, p)
		return nil
	})
	if err != nil {
		if stderrors.Is(err, doublestar.ErrBadPattern) {
			return nil, errors.Wrapf(err, errors.ErrMatchPattern, "invalid pattern %q", pattern)
		}
		return nil, errors.Wrapf(err, errors.ErrMatchWalk, "failed to expand %q", pattern)
	}

	m.logger.Trace().
		Str("pattern", pattern).
		Int("matches", len(matches)).
		Msg("Expanded pattern")
	return matches, nil
}

// MatchAll expands every pattern concurrently and returns the sorted union
// of the results.
func (m *Matcher) MatchAll(ctx context.Context, patterns []string) ([]string, error) {
	var (
		mu   sync.Mutex
		seen = make(map[string]struct{})
	)

	g, _ := errgroup.WithContext(ctx)
	for _, pattern := range patterns {
		g.Go(func() error {
			matches, err := m.Match(pattern)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			for _, p := range matches {
				seen[p] = struct{}{}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	union := make([]string, 0, len(seen))
	for p := range seen {
		union = append(union, p)
	}
	sort.Strings(union)
	return union, nil
}

// Any reports whether name matches at least one of patterns. Invalid
// patterns never match.
func Any(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

package barrel

import (
	"context"
	"path"
	"sort"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/autobarrel/pkg/errors"
	"github.com/arthur-debert/autobarrel/pkg/filesystem"
	"github.com/arthur-debert/autobarrel/pkg/match"
)

// Tree maps every tracked directory to the set of entries it re-exports.
// Entries are module file paths, sub-directory paths (sub-barrels) and the
// directory's own barrel path, which is kept so the pruner can tell an
// empty directory from a populated one but is never rendered.
type Tree struct {
	conv  Conventions
	nodes map[string]map[string]struct{}
}

func newTree(conv Conventions) *Tree {
	return &Tree{conv: conv, nodes: make(map[string]map[string]struct{})}
}

// Aggregate classifies matched paths and builds the directory tree.
//
// Paths with a module suffix are module candidates; paths without an
// extension, and the base directory itself, are directory candidates and
// are confirmed with a stat. Each
// confirmed directory contributes its barrel path as a module candidate.
// A module becomes a child of its parent directory when that directory is
// tracked and the module is not excluded; a directory's own barrel is
// always kept. Finally every directory whose barrel is not excluded is
// promoted into its parent's children.
func Aggregate(ctx context.Context, fsys afero.Fs, matched []string, excludes *match.ExcludeSet, conv Conventions) (*Tree, error) {
	modules := make(map[string]struct{})
	var candidates []string
	for _, p := range matched {
		switch {
		case conv.IsModule(p):
			modules[p] = struct{}{}
		case p == "." || path.Ext(p) == "":
			candidates = append(candidates, p)
		}
	}

	dirs, err := confirmDirs(ctx, fsys, candidates)
	if err != nil {
		return nil, err
	}

	tree := newTree(conv)
	for _, dir := range dirs {
		tree.nodes[dir] = make(map[string]struct{})
		modules[conv.BarrelPath(dir)] = struct{}{}
	}

	for p := range modules {
		dir := path.Dir(p)
		children, tracked := tree.nodes[dir]
		if !tracked {
			continue
		}
		if !excludes.Excludes(p) || p == conv.BarrelPath(dir) {
			children[p] = struct{}{}
		}
	}

	for _, dir := range dirs {
		parent := path.Dir(dir)
		if parent == dir {
			continue
		}
		siblings, tracked := tree.nodes[parent]
		if !tracked {
			continue
		}
		if _, ok := tree.nodes[dir][conv.BarrelPath(dir)]; ok && !excludes.ExcludesBarrel(dir) {
			siblings[dir] = struct{}{}
		}
	}

	return tree, nil
}

// confirmDirs stats every candidate concurrently and returns the ones that
// are directories, sorted. Candidates that are files or no longer exist are
// dropped silently.
func confirmDirs(ctx context.Context, fsys afero.Fs, candidates []string) ([]string, error) {
	var (
		mu   sync.Mutex
		dirs []string
	)

	g, _ := errgroup.WithContext(ctx)
	for _, candidate := range candidates {
		g.Go(func() error {
			isDir, err := filesystem.IsDir(fsys, candidate)
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", candidate).
					WithDetail("path", candidate)
			}
			if !isDir {
				return nil
			}
			mu.Lock()
			dirs = append(dirs, candidate)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(dirs)
	return dirs, nil
}

// Dirs returns the tracked directories, sorted.
func (t *Tree) Dirs() []string {
	dirs := make([]string, 0, len(t.nodes))
	for dir := range t.nodes {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// Has reports whether dir is tracked.
func (t *Tree) Has(dir string) bool {
	_, ok := t.nodes[dir]
	return ok
}

// Children returns every entry of dir, including its own barrel, sorted.
func (t *Tree) Children(dir string) []string {
	children := make([]string, 0, len(t.nodes[dir]))
	for child := range t.nodes[dir] {
		children = append(children, child)
	}
	sort.Strings(children)
	return children
}

// Exports returns the entries of dir that end up in its barrel, sorted.
func (t *Tree) Exports(dir string) []string {
	own := t.conv.BarrelPath(dir)
	children := t.Children(dir)
	exports := children[:0]
	for _, child := range children {
		if child != own {
			exports = append(exports, child)
		}
	}
	return exports
}

// Len returns the number of tracked directories.
func (t *Tree) Len() int {
	return len(t.nodes)
}

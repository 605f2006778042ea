package barrel

import (
	"path"
	"sort"
)

// Prune removes every directory that has nothing to export besides its own
// barrel. Removing a directory also removes its entry from the parent, which
// is then re-evaluated, so empty chains collapse all the way up. The loop
// runs over an explicit worklist until no directory changes and returns the
// pruned directories, sorted.
func (t *Tree) Prune() []string {
	worklist := t.Dirs()
	var pruned []string

	for len(worklist) > 0 {
		dir := worklist[0]
		worklist = worklist[1:]

		if !t.Has(dir) || len(t.Exports(dir)) > 0 {
			continue
		}

		delete(t.nodes, dir)
		pruned = append(pruned, dir)

		parent := path.Dir(dir)
		if parent == dir {
			continue
		}
		if siblings, ok := t.nodes[parent]; ok {
			delete(siblings, dir)
			worklist = append(worklist, parent)
		}
	}

	sort.Strings(pruned)
	return pruned
}

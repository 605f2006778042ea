package barrel

import "sort"

// Result reports what a pass produced.
type Result struct {
	// Barrels lists every barrel the tree holds after pruning.
	Barrels []string `json:"barrels"`
	// Updated lists the barrels whose content changed (or would change on a
	// dry run).
	Updated []string `json:"updated"`
	// Deleted lists barrels of pruned directories that were removed (or
	// would be removed on a dry run).
	Deleted []string `json:"deleted"`
	// DryRun is set when nothing was written.
	DryRun bool `json:"dry_run"`
}

// Changed reports whether the pass touched (or would touch) the disk.
func (r *Result) Changed() bool {
	return len(r.Updated) > 0 || len(r.Deleted) > 0
}

func (r *Result) sort() {
	sortStrings(r.Barrels)
	sortStrings(r.Updated)
	sortStrings(r.Deleted)
}

func sortStrings(s []string) {
	sort.Strings(s)
}

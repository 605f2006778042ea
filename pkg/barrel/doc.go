// Package barrel builds and maintains barrel files: generated index modules
// that re-export every module of their directory.
//
// A pass runs four strictly ordered stages:
//
//  1. Match: include and exclude patterns are expanded (package match).
//  2. Aggregate: matched paths become a Tree mapping each confirmed directory
//     to the modules and sub-barrels it re-exports.
//  3. Prune: directories with nothing to export besides their own barrel are
//     removed, cascading upward until a fix-point is reached.
//  4. Write: every surviving directory gets its barrel rendered and written;
//     barrels of pruned directories are deleted.
//
// The tree is rebuilt from scratch on every pass. The only durable state is
// the files on disk, and a pass over an unchanged tree rewrites nothing.
package barrel

// Package match expands include, ignore and exclude glob patterns against a
// base directory.
//
// Patterns use doublestar syntax (`*`, `**`, `?`, `[...]`, `{a,b}`) and are
// always relative to the base directory. Results are slash-separated,
// relative, cleaned and de-duplicated, so they can be compared by plain
// string equality.
//
// Ignore patterns are applied while walking: an ignored path is never
// reported, and an ignored directory is not descended into when it is itself
// a match.
//
// Exclude patterns are resolved through the same matcher into an ExcludeSet.
// A matched path without an extension is treated as a directory and recorded
// as that directory's barrel file, which keeps the directory's files
// exportable while hiding its barrel from the parent.
package match

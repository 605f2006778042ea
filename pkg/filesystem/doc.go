// Package filesystem provides the filesystem layer autobarrel reads and
// writes through.
//
// Everything below the CLI works on an afero.Fs rooted at the configured base
// directory, so paths handled by the barrel engine are slash-separated and
// relative to that root. Production code uses NewBase over the OS filesystem;
// tests can use the same constructor over a temp directory.
package filesystem

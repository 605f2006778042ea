// Package testutil provides utilities for testing autobarrel components.
//
// Tests build small source trees on disk inside t.TempDir() with WriteTree
// or CreateFile, run the code under test against them, and check the
// resulting files with the Assert helpers. All test data is defined inline.
package testutil

// Test Type: Integration Test
// Description: Full passes over real temp trees

package barrel_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/autobarrel/pkg/barrel"
	"github.com/arthur-debert/autobarrel/pkg/errors"
	"github.com/arthur-debert/autobarrel/pkg/filesystem"
	"github.com/arthur-debert/autobarrel/pkg/testutil"
)

func fixture(t *testing.T) string {
	t.Helper()
	root := testutil.TempDir(t)
	testutil.WriteTree(t, root, map[string]string{
		"src/a.ts":              "export const a = 1",
		"src/b.tsx":             "export const B = () => null",
		"src/types.d.ts":        "declare const x: number",
		"src/styles.css":        "",
		"src/secret.ts":         "export const secret = 1",
		"src/c/d.ts":            "export const d = 1",
		"src/c/e.ts":            "export const e = 1",
		"src/excluded/x.ts":     "export const x = 1",
		"src/empty/deeper/":     "",
		"src/generated/skip.ts": "",
		"other/untracked.ts":    "",
	})
	return root
}

func fixtureOptions() barrel.Options {
	return barrel.Options{
		Paths:       []string{"src", "src/**"},
		Ignore:      []string{"src/generated/**", "src/generated"},
		Exclude:     []string{"src/excluded", "src/secret.ts"},
		Conventions: barrel.NewConventions("ts"),
	}
}

func run(t *testing.T, root string, opts barrel.Options) *barrel.Result {
	t.Helper()
	result, err := barrel.NewEngine(filesystem.NewBase(root), opts).Run(context.Background())
	require.NoError(t, err)
	return result
}

func TestEngine_Run(t *testing.T) {
	root := fixture(t)

	result := run(t, root, fixtureOptions())

	expected := []string{"src/c/index.ts", "src/excluded/index.ts", "src/index.ts"}
	assert.Equal(t, expected, result.Barrels)
	assert.Equal(t, expected, result.Updated)
	assert.Empty(t, result.Deleted)

	testutil.AssertFileContent(t, filepath.Join(root, "src", "index.ts"),
		barrel.Marker+"\n\n"+
			"export * from './a'\n"+
			"export * from './b'\n"+
			"export * from './c/'")
	testutil.AssertFileContent(t, filepath.Join(root, "src", "c", "index.ts"),
		barrel.Marker+"\n\n"+
			"export * from './d'\n"+
			"export * from './e'")
	testutil.AssertFileContent(t, filepath.Join(root, "src", "excluded", "index.ts"),
		barrel.Marker+"\n\n"+
			"export * from './x'")

	testutil.AssertNoFile(t, filepath.Join(root, "src", "empty", "index.ts"))
	testutil.AssertNoFile(t, filepath.Join(root, "src", "empty", "deeper", "index.ts"))
	testutil.AssertNoFile(t, filepath.Join(root, "src", "generated", "index.ts"))
	testutil.AssertNoFile(t, filepath.Join(root, "other", "index.ts"))
}

func TestEngine_Idempotent(t *testing.T) {
	root := fixture(t)
	first := run(t, root, fixtureOptions())
	before := map[string]string{}
	for _, p := range first.Barrels {
		before[p] = testutil.ReadFile(t, filepath.Join(root, filepath.FromSlash(p)))
	}
	filesBefore := testutil.ListFiles(t, root)

	second := run(t, root, fixtureOptions())

	assert.Equal(t, first.Barrels, second.Barrels)
	assert.Empty(t, second.Updated)
	assert.Empty(t, second.Deleted)
	assert.False(t, second.Changed())
	for p, content := range before {
		testutil.AssertFileContent(t, filepath.Join(root, filepath.FromSlash(p)), content)
	}
	assert.Equal(t, filesBefore, testutil.ListFiles(t, root))
}

func TestEngine_DeletesPrunedBarrels(t *testing.T) {
	root := fixture(t)
	run(t, root, fixtureOptions())

	// A previous configuration left barrels in directories that no longer
	// export anything.
	stale := barrel.Marker + "\n\nexport * from './gone'"
	testutil.CreateFile(t, root, "src/empty/index.ts", stale)
	testutil.CreateFile(t, root, "src/empty/deeper/index.ts", stale)

	result := run(t, root, fixtureOptions())

	assert.Equal(t, []string{"src/empty/deeper/index.ts", "src/empty/index.ts"}, result.Deleted)
	assert.Empty(t, result.Updated)
	testutil.AssertNoFile(t, filepath.Join(root, "src", "empty", "index.ts"))
	testutil.AssertNoFile(t, filepath.Join(root, "src", "empty", "deeper", "index.ts"))

	again := run(t, root, fixtureOptions())
	assert.Empty(t, again.Deleted)
}

func TestEngine_TracksFilesystemChanges(t *testing.T) {
	root := fixture(t)
	run(t, root, fixtureOptions())

	t.Run("module_added", func(t *testing.T) {
		testutil.CreateFile(t, root, "src/empty/deeper/f.ts", "export const f = 1")

		result := run(t, root, fixtureOptions())

		assert.Equal(t, []string{"src/empty/deeper/index.ts", "src/empty/index.ts", "src/index.ts"}, result.Updated)
		testutil.AssertFileContent(t, filepath.Join(root, "src", "empty", "index.ts"),
			barrel.Marker+"\n\nexport * from './deeper/'")
		assert.Contains(t, testutil.ReadFile(t, filepath.Join(root, "src", "index.ts")), "export * from './empty/'")
	})

	t.Run("module_removed", func(t *testing.T) {
		testutil.RemovePath(t, root, "src/empty/deeper/f.ts")

		result := run(t, root, fixtureOptions())

		assert.Equal(t, []string{"src/index.ts"}, result.Updated)
		assert.Equal(t, []string{"src/empty/deeper/index.ts", "src/empty/index.ts"}, result.Deleted)
		assert.NotContains(t, testutil.ReadFile(t, filepath.Join(root, "src", "index.ts")), "empty")
	})

	t.Run("directory_removed", func(t *testing.T) {
		testutil.RemovePath(t, root, "src/c")

		result := run(t, root, fixtureOptions())

		assert.Equal(t, []string{"src/index.ts"}, result.Updated)
		assert.NotContains(t, testutil.ReadFile(t, filepath.Join(root, "src", "index.ts")), "./c/")
	})
}

func TestEngine_CascadingChain(t *testing.T) {
	root := testutil.TempDir(t)
	testutil.WriteTree(t, root, map[string]string{
		"pkg/a/b/c/x.ts": "export const x = 1",
		"pkg/z/":         "",
	})

	result := run(t, root, barrel.Options{Paths: []string{"pkg", "pkg/**"}})

	assert.Equal(t, []string{"pkg/a/b/c/index.ts", "pkg/a/b/index.ts", "pkg/a/index.ts", "pkg/index.ts"}, result.Barrels)
	testutil.AssertFileContent(t, filepath.Join(root, "pkg", "index.ts"), barrel.Marker+"\n\nexport * from './a/'")
	testutil.AssertNoFile(t, filepath.Join(root, "pkg", "z", "index.ts"))
}

func TestEngine_Prefix(t *testing.T) {
	root := testutil.TempDir(t)
	testutil.WriteTree(t, root, map[string]string{"lib/a.ts": ""})

	opts := barrel.Options{Paths: []string{"lib", "lib/*"}, Prefix: "/* eslint-disable */"}
	run(t, root, opts)

	testutil.AssertFileContent(t, filepath.Join(root, "lib", "index.ts"),
		"/* eslint-disable */\n"+barrel.Marker+"\n\nexport * from './a'")
}

func TestEngine_DryRun(t *testing.T) {
	root := fixture(t)
	generated := barrel.Marker + "\n\nexport * from './gone'"
	testutil.CreateFile(t, root, "src/empty/index.ts", generated)
	testutil.CreateFile(t, root, "src/empty/deeper/index.ts", "export const handWritten = 1")

	opts := fixtureOptions()
	opts.DryRun = true
	result := run(t, root, opts)

	assert.True(t, result.DryRun)
	assert.True(t, result.Changed())
	assert.Equal(t, []string{"src/c/index.ts", "src/excluded/index.ts", "src/index.ts"}, result.Updated)
	assert.Equal(t, []string{"src/empty/index.ts"}, result.Deleted)
	testutil.AssertNoFile(t, filepath.Join(root, "src", "index.ts"))
	testutil.AssertFileContent(t, filepath.Join(root, "src", "empty", "index.ts"), generated)
}

func TestEngine_KeepsHandWrittenIndex(t *testing.T) {
	root := testutil.TempDir(t)
	handWritten := "export function realCode() {\n  return 1\n}\n"
	testutil.WriteTree(t, root, map[string]string{
		"src/a.ts":          "export const a = 1",
		"src/util/index.ts": handWritten,
	})
	opts := barrel.Options{Paths: []string{"src", "src/**"}}

	result := run(t, root, opts)

	assert.Empty(t, result.Deleted)
	assert.Equal(t, []string{"src/index.ts"}, result.Barrels)
	testutil.AssertFileContent(t, filepath.Join(root, "src", "util", "index.ts"), handWritten)
	testutil.AssertFileContent(t, filepath.Join(root, "src", "index.ts"),
		barrel.Marker+"\n\nexport * from './a'")
}

func TestEngine_DeletesPrefixedBarrel(t *testing.T) {
	root := testutil.TempDir(t)
	testutil.WriteTree(t, root, map[string]string{
		"src/a.ts":          "export const a = 1",
		"src/gone/index.ts": "/* eslint-disable */\n" + barrel.Marker + "\n\nexport * from './old'",
	})
	opts := barrel.Options{Paths: []string{"src", "src/**"}}

	result := run(t, root, opts)

	assert.Equal(t, []string{"src/gone/index.ts"}, result.Deleted)
	testutil.AssertNoFile(t, filepath.Join(root, "src", "gone", "index.ts"))
}

func TestEngine_BaseDirectoryBarrel(t *testing.T) {
	root := testutil.TempDir(t)
	testutil.WriteTree(t, root, map[string]string{
		"a.ts":     "export const a = 1",
		"sub/b.ts": "export const b = 1",
	})
	opts := barrel.Options{Paths: []string{"**"}}

	result := run(t, root, opts)

	assert.Equal(t, []string{"index.ts", "sub/index.ts"}, result.Barrels)
	testutil.AssertFileContent(t, filepath.Join(root, "index.ts"),
		barrel.Marker+"\n\n"+
			"export * from './a'\n"+
			"export * from './sub/'")
	testutil.AssertFileContent(t, filepath.Join(root, "sub", "index.ts"),
		barrel.Marker+"\n\nexport * from './b'")

	again := run(t, root, opts)
	assert.False(t, again.Changed())
}

func TestEngine_MalformedPattern(t *testing.T) {
	root := fixture(t)
	opts := fixtureOptions()
	opts.Paths = []string{"src/[a-"}

	_, err := barrel.NewEngine(filesystem.NewBase(root), opts).Run(context.Background())

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMatchPattern))
	testutil.AssertNoFile(t, filepath.Join(root, "src", "index.ts"))
}

func TestEngine_NoMatchesWritesNothing(t *testing.T) {
	root := fixture(t)
	opts := fixtureOptions()
	opts.Paths = []string{"nowhere/**"}

	result := run(t, root, opts)

	assert.Empty(t, result.Barrels)
	assert.False(t, result.Changed())
}

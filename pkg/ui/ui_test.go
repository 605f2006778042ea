// Test Type: Unit Test
// Description: Rendering pass results in every output format

package ui_test

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/autobarrel/pkg/barrel"
	"github.com/arthur-debert/autobarrel/pkg/errors"
	"github.com/arthur-debert/autobarrel/pkg/ui"
)

func sampleResult() *barrel.Result {
	return &barrel.Result{
		Barrels: []string{"src/c/index.ts", "src/index.ts"},
		Updated: []string{"src/index.ts"},
		Deleted: []string{"src/empty/index.ts"},
	}
}

func render(t *testing.T, format ui.Format, fn func(ui.Renderer) error) string {
	t.Helper()
	var buf bytes.Buffer
	r, err := ui.NewRenderer(format, &buf)
	require.NoError(t, err)
	require.NoError(t, fn(r))
	return buf.String()
}

func TestTextRenderer(t *testing.T) {
	t.Run("result", func(t *testing.T) {
		out := render(t, ui.FormatText, func(r ui.Renderer) error { return r.RenderResult(sampleResult()) })
		assert.Equal(t,
			"wrote src/index.ts\ndeleted src/empty/index.ts\n2 barrels, 1 written, 1 deleted\n", out)
	})

	t.Run("dry_run", func(t *testing.T) {
		result := sampleResult()
		result.DryRun = true
		out := render(t, ui.FormatText, func(r ui.Renderer) error { return r.RenderResult(result) })
		assert.Equal(t,
			"stale src/index.ts\nwould delete src/empty/index.ts\n2 barrels, 1 stale, 1 to delete\n", out)
	})

	t.Run("up_to_date", func(t *testing.T) {
		result := &barrel.Result{Barrels: []string{"src/index.ts"}}
		out := render(t, ui.FormatText, func(r ui.Renderer) error { return r.RenderResult(result) })
		assert.Equal(t, "1 barrels up to date\n", out)
	})

	t.Run("error", func(t *testing.T) {
		err := errors.Wrap(stderrors.New("permission denied"), errors.ErrFileWrite, "cannot write src/index.ts")
		out := render(t, ui.FormatText, func(r ui.Renderer) error { return r.RenderError(err) })
		assert.Equal(t, "Error: cannot write src/index.ts: permission denied\n", out)
	})

	t.Run("message", func(t *testing.T) {
		out := render(t, ui.FormatText, func(r ui.Renderer) error { return r.RenderMessage("watching") })
		assert.Equal(t, "watching\n", out)
	})
}

func TestTerminalRenderer(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	out := render(t, ui.FormatTerminal, func(r ui.Renderer) error { return r.RenderResult(sampleResult()) })
	assert.Contains(t, out, "wrote src/index.ts")
	assert.Contains(t, out, "deleted src/empty/index.ts")
	assert.Contains(t, out, "2 barrels, 1 written, 1 deleted")

	out = render(t, ui.FormatTerminal, func(r ui.Renderer) error {
		return r.RenderError(errors.New(errors.ErrConfigValid, `"paths" is required`))
	})
	assert.Contains(t, out, `"paths" is required`)
	assert.Contains(t, out, "CONFIG_INVALID")
}

func TestJSONRenderer(t *testing.T) {
	t.Run("result", func(t *testing.T) {
		out := render(t, ui.FormatJSON, func(r ui.Renderer) error { return r.RenderResult(sampleResult()) })

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, []interface{}{"src/c/index.ts", "src/index.ts"}, got["barrels"])
		assert.Equal(t, []interface{}{"src/empty/index.ts"}, got["deleted"])
		assert.Equal(t, true, got["changed"])
		assert.Equal(t, false, got["dry_run"])
	})

	t.Run("empty_lists", func(t *testing.T) {
		out := render(t, ui.FormatJSON, func(r ui.Renderer) error { return r.RenderResult(&barrel.Result{}) })
		assert.Contains(t, out, `"updated": []`)
		assert.Contains(t, out, `"changed": false`)
	})

	t.Run("error", func(t *testing.T) {
		err := errors.New(errors.ErrMatchPattern, "bad pattern").WithDetail("pattern", "src/[")
		out := render(t, ui.FormatJSON, func(r ui.Renderer) error { return r.RenderError(err) })

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "MATCH_PATTERN", got["code"])
		assert.Equal(t, map[string]interface{}{"pattern": "src/["}, got["details"])
	})
}

func TestNewRenderer_AutoOnBufferIsText(t *testing.T) {
	out := render(t, ui.FormatAuto, func(r ui.Renderer) error { return r.RenderMessage("hello") })
	assert.Equal(t, "hello\n", out)
}

func TestNewRenderer_Unknown(t *testing.T) {
	_, err := ui.NewRenderer(ui.Format(99), &bytes.Buffer{})
	assert.Error(t, err)
}

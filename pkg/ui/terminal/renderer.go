// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"

	"github.com/arthur-debert/autobarrel/pkg/barrel"
	"github.com/arthur-debert/autobarrel/pkg/errors"
	"github.com/arthur-debert/autobarrel/pkg/style"
	"github.com/arthur-debert/autobarrel/pkg/ui/text"
)

// Renderer provides rich terminal output using lipgloss styles
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

// RenderResult renders the barrels a pass touched, one per line, followed
// by a summary.
func (r *Renderer) RenderResult(result *barrel.Result) error {
	updated, deleted := "wrote", "deleted"
	if result.DryRun {
		updated, deleted = "stale", "would delete"
	}

	for _, p := range result.Updated {
		line := fmt.Sprintf("%s %s %s", style.WrittenIndicator, style.MutedStyle.Render(updated), style.PathStyle.Render(p))
		if _, err := fmt.Fprintln(r.output, style.Indent(line, 1)); err != nil {
			return err
		}
	}
	for _, p := range result.Deleted {
		line := fmt.Sprintf("%s %s %s", style.DeletedIndicator, style.MutedStyle.Render(deleted), style.PathStyle.Render(p))
		if _, err := fmt.Fprintln(r.output, style.Indent(line, 1)); err != nil {
			return err
		}
	}

	indicator := style.SuccessIndicator
	if result.DryRun && result.Changed() {
		indicator = style.WarningIndicator
	}
	_, err := fmt.Fprintf(r.output, "%s %s\n", indicator, style.TitleStyle.Render(text.Summary(result)))
	return err
}

// RenderError renders an error with its code
func (r *Renderer) RenderError(err error) error {
	code := errors.GetErrorCode(err)
	line := fmt.Sprintf("%s %s", style.ErrorIndicator, style.ErrorStyle.Render(text.Message(err)))
	if code != errors.ErrUnknown {
		line += " " + style.CodeStyle.Render(string(code))
	}
	_, werr := fmt.Fprintln(r.output, line)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintf(r.output, "%s %s\n", style.InfoIndicator, msg)
	return err
}

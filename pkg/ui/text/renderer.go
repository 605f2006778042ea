// Package text provides plain text output without any styling
package text

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/arthur-debert/autobarrel/pkg/barrel"
	"github.com/arthur-debert/autobarrel/pkg/errors"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult lists every barrel written or deleted followed by a summary
// line. Dry runs use "stale" and "would delete" instead.
func (r *Renderer) RenderResult(result *barrel.Result) error {
	updated, deleted := "wrote", "deleted"
	if result.DryRun {
		updated, deleted = "stale", "would delete"
	}

	for _, p := range result.Updated {
		if _, err := fmt.Fprintf(r.output, "%s %s\n", updated, p); err != nil {
			return err
		}
	}
	for _, p := range result.Deleted {
		if _, err := fmt.Fprintf(r.output, "%s %s\n", deleted, p); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(r.output, Summary(result))
	return err
}

// Summary is the one-line description of a result.
func Summary(result *barrel.Result) string {
	if !result.Changed() {
		return fmt.Sprintf("%d barrels up to date", len(result.Barrels))
	}
	if result.DryRun {
		return fmt.Sprintf("%d barrels, %d stale, %d to delete",
			len(result.Barrels), len(result.Updated), len(result.Deleted))
	}
	return fmt.Sprintf("%d barrels, %d written, %d deleted",
		len(result.Barrels), len(result.Updated), len(result.Deleted))
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %s\n", Message(err))
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

// Message is the user-facing text of err, without the error code.
func Message(err error) string {
	var be *errors.BarrelError
	if stderrors.As(err, &be) {
		if be.Wrapped != nil {
			return fmt.Sprintf("%s: %v", be.Message, be.Wrapped)
		}
		return be.Message
	}
	return err.Error()
}

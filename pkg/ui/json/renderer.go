// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/autobarrel/pkg/barrel"
	"github.com/arthur-debert/autobarrel/pkg/errors"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	output  io.Writer
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{
		output:  output,
		encoder: encoder,
	}
}

type resultObject struct {
	*barrel.Result
	Changed bool `json:"changed"`
}

// RenderResult renders the result as a JSON object. Empty lists are
// rendered as [] rather than null.
func (r *Renderer) RenderResult(result *barrel.Result) error {
	out := *result
	out.Barrels = nonNil(out.Barrels)
	out.Updated = nonNil(out.Updated)
	out.Deleted = nonNil(out.Deleted)
	return r.encoder.Encode(resultObject{Result: &out, Changed: result.Changed()})
}

// RenderError renders an error as JSON
func (r *Renderer) RenderError(err error) error {
	errorObj := map[string]interface{}{
		"error": err.Error(),
		"code":  errors.GetErrorCode(err),
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		errorObj["details"] = details
	}
	return r.encoder.Encode(errorObj)
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	messageObj := map[string]string{
		"message": msg,
	}
	return r.encoder.Encode(messageObj)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

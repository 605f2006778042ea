package ui

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/autobarrel/pkg/errors"
)

// Format selects a renderer. It implements pflag.Value so --format is
// validated while flags are parsed.
type Format int

const (
	// FormatAuto picks FormatTerminal or FormatText for the output stream
	FormatAuto Format = iota
	FormatTerminal
	FormatText
	// FormatJSON emits one JSON document per pass
	FormatJSON
)

var formatNames = map[Format]string{
	FormatAuto:     "auto",
	FormatTerminal: "term",
	FormatText:     "text",
	FormatJSON:     "json",
}

var formatAliases = map[string]Format{
	"":         FormatAuto,
	"terminal": FormatTerminal,
	"plain":    FormatText,
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// Set parses s into f.
func (f *Format) Set(s string) error {
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type names the flag value in help output.
func (f *Format) Type() string {
	return "format"
}

// ParseFormat accepts a format name or alias, case-insensitively.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if f, ok := formatAliases[name]; ok {
		return f, nil
	}
	for f, known := range formatNames {
		if known == name {
			return f, nil
		}
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s).
		WithDetail("format", s)
}

// DetectFormat resolves FormatAuto for out. Only a color-capable terminal
// gets FormatTerminal; anything else gets FormatText.
func DetectFormat(out io.Writer) Format {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return FormatText
	}

	file, ok := out.(interface{ Fd() uintptr })
	if !ok {
		return FormatText
	}
	fd := file.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return FormatText
	}

	if termenv.NewOutput(out).Profile == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}

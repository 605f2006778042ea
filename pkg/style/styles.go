// Package style holds the lipgloss styles used for terminal output.
package style

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	CodeStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)
)

// Barrel state styles
var (
	WrittenStyle = lipgloss.NewStyle().
			Foreground(WrittenColor).
			Bold(true)

	DeletedStyle = lipgloss.NewStyle().
			Foreground(DeletedColor).
			Bold(true)
)

// Operation indicator styles
var (
	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator   = ErrorStyle.Render("✗")
	WarningIndicator = WarningStyle.Render("!")
	InfoIndicator    = InfoStyle.Render("•")
	WrittenIndicator = WrittenStyle.Render("+")
	DeletedIndicator = DeletedStyle.Render("-")
)

// Indent pads s by level steps of two spaces.
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

// Pluralize returns "n word" or "n words".
func Pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

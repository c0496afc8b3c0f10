package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Styles renders operator-facing output. Plain styles return text unchanged.
type Styles struct {
	plain bool

	Title  lipgloss.Style
	Prompt lipgloss.Style
	Answer lipgloss.Style
	Muted  lipgloss.Style
	OK     lipgloss.Style
	Error  lipgloss.Style
}

// NewStyles returns colored styles for a terminal and plain ones otherwise.
func NewStyles(color bool) *Styles {
	return &Styles{
		plain:  !color,
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		Prompt: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4")),
		Answer: lipgloss.NewStyle().Foreground(lipgloss.Color("#CDD6F4")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		OK:     lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
	}
}

// Render applies style to text unless the styles are plain.
func (s *Styles) Render(style lipgloss.Style, text string) string {
	if s.plain {
		return text
	}
	return style.Render(text)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

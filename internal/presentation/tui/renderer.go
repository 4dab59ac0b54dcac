package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// It falls back to the raw markdown when no renderer can be built.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

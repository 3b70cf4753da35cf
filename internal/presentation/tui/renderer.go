package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders prompt markdown using
// glamour, wrapped to the current terminal width. Output that is not a
// terminal falls back to a fixed width.
func NewRenderer() func(string) (string, error) {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // detect light/dark background
		glamour.WithWordWrap(width),
	)

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

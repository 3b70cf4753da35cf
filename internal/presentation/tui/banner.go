package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for adkflow.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Indigo to rose gradient, one color per line
	lines := []struct {
		text  string
		color string
	}{
		{"              _ _     __ _               ", "#818cf8"},
		{"   __ _    __| | | __/ _| | _____      __", "#a78bfa"},
		{"  / _` |  / _` | |/ / |_| |/ _ \\ \\ /\\ / /", "#c084fc"},
		{" | (_| | | (_| |   <|  _| | (_) \\ V  V / ", "#e879f9"},
		{"  \\__,_|  \\__,_|_|\\_\\_| |_|\\___/ \\_/\\_/  ", "#f472b6"},
	}

	fmt.Println()
	for _, l := range lines {
		fmt.Println(termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Println()
}

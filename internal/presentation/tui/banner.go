package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`                    _   _            _   `, "#818cf8"},
	{`   __ _ _   _  ___ | |_(_) ___ _ __ | |_ `, "#a78bfa"},
	{`  / _' | | | |/ _ \| __| |/ _ \ '_ \| __|`, "#c084fc"},
	{` | (_| | |_| | (_) | |_| |  __/ | | | |_ `, "#e879f9"},
	{`  \__, |\__,_|\___/ \__|_|\___|_| |_|\__|`, "#f472b6"},
	{`     |_|                                 `, "#fb7185"},
}

// PrintBanner writes the ASCII art banner, colored when the terminal supports it.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Fprintln(w)
}

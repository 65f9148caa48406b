package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the wayfinder banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" __      __              _____.__            .___", "#34d399"},
		{"/  \\    /  \\_____  ___.__/ ____\\__| ____   __| _/___________", "#2dd4bf"},
		{"\\   \\/\\/   /\\__  \\<   |  \\   __\\|  |/    \\ / __ |/ __ \\_  __ \\", "#22d3ee"},
		{" \\        /  / __ \\\\___  ||  |  |  |   |  / /_/ \\  ___/|  | \\/", "#38bdf8"},
		{"  \\__/\\  /  (____  / ____||__|  |__|___|  \\____ |\\___  >__|", "#60a5fa"},
		{"       \\/        \\/\\/                    \\/     \\/    \\/", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

package format

import (
	"strings"

	"github.com/rivo/tview"

	"github.com/cnharrison/zirest/internal/highlight"
)

// Colorize renders text with tview colour tags for the given ranges. Ranges
// may overlap or arrive in any order; where they overlap the one listed last
// wins. Text outside every range keeps the default colour.
func Colorize(text string, ranges []highlight.Range, palette Palette) string {
	if text == "" {
		return ""
	}

	colors := make([]string, len(text))
	for _, r := range ranges {
		start, end := r.Start, r.End
		if start < 0 {
			start = 0
		}
		if end > len(text) {
			end = len(text)
		}
		color := palette.Color(r.Category)
		for i := start; i < end; i++ {
			colors[i] = color
		}
	}

	var sb strings.Builder
	sb.Grow(len(text) + len(ranges)*10)

	current := ""
	runStart := 0
	flush := func(end int) {
		if end > runStart {
			sb.WriteString(tview.Escape(text[runStart:end]))
		}
	}

	for i := 0; i < len(text); i++ {
		if colors[i] == current {
			continue
		}
		flush(i)
		runStart = i
		current = colors[i]
		if current == "" {
			sb.WriteString("[-]")
		} else {
			sb.WriteString("[" + current + "]")
		}
	}
	flush(len(text))
	if current != "" {
		sb.WriteString("[-]")
	}

	return sb.String()
}

// Paint wraps all of text in a single colour.
func Paint(text, color string) string {
	if color == "" {
		return tview.Escape(text)
	}
	return "[" + color + "]" + tview.Escape(text) + "[-]"
}

// Package render prints highlighted JSON, response summaries and tables to a
// plain terminal for the non-interactive commands.
package render

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	apperrors "github.com/cnharrison/zirest/internal/errors"
	"github.com/cnharrison/zirest/internal/format"
	"github.com/cnharrison/zirest/internal/highlight"
	"github.com/cnharrison/zirest/internal/httpclient"
)

// Renderer styles output for one writer. With colour off every method
// returns plain text.
type Renderer struct {
	color   bool
	palette format.Palette
	lg      *lipgloss.Renderer
}

// New creates a renderer writing to out.
func New(out io.Writer, color bool, palette format.Palette) *Renderer {
	lg := lipgloss.NewRenderer(out)
	if color {
		lg.SetColorProfile(termenv.TrueColor)
	} else {
		lg.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{color: color, palette: palette, lg: lg}
}

// ColorEnabled reports whether f should receive colour: it must be a
// terminal, and neither noColor nor $NO_COLOR may be set.
func ColorEnabled(f *os.File, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Color reports whether the renderer emits ANSI colour.
func (r *Renderer) Color() bool { return r.color }

// Paint colours text with a #rrggbb colour. Lines are styled one at a time
// so lipgloss never pads them to a common width.
func (r *Renderer) Paint(text, color string) string {
	if !r.color || color == "" || text == "" {
		return text
	}
	style := r.lg.NewStyle().Foreground(lipgloss.Color(color)).TabWidth(lipgloss.NoTabConversion)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// Highlight colours text according to ranges. Where ranges overlap the one
// listed last wins.
func (r *Renderer) Highlight(text string, ranges []highlight.Range) string {
	if !r.color || len(ranges) == 0 {
		return text
	}

	colors := make([]string, len(text))
	for _, rg := range ranges {
		start, end := max(rg.Start, 0), min(rg.End, len(text))
		for i := start; i < end; i++ {
			colors[i] = r.palette.Color(rg.Category)
		}
	}

	var b strings.Builder
	runStart := 0
	for i := 1; i <= len(text); i++ {
		if i < len(text) && colors[i] == colors[runStart] {
			continue
		}
		b.WriteString(r.Paint(text[runStart:i], colors[runStart]))
		runStart = i
	}
	return b.String()
}

// StatusLine summarises a response: "● HTTP 200 OK  42 ms  1.2 KB".
func (r *Renderer) StatusLine(resp *httpclient.Response) string {
	status := strconv.Itoa(resp.Status)
	color := format.StatusColor(status)
	line := r.Paint("●", color) + " " + r.Paint(format.StatusLabel(status, resp.StatusText), color)
	return line + "  " + r.Paint(format.DurationLabel(resp.DurationMs())+"  "+format.SizeLabel(resp.SizeBytes), r.palette.Comment)
}

// ErrorLine renders a failed request the way the interactive view does.
func (r *Renderer) ErrorLine(err error) string {
	return r.Paint("● ERR", r.palette.Error) + " " + apperrors.UserFriendlyError(err)
}

package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/cnharrison/zirest/internal/highlight"
	"github.com/cnharrison/zirest/internal/request"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const (
	emptyResponseTitle = "No response yet"
	emptyResponseHint  = "Send a request to see its response here."
)

// nextIndex steps i by step within [0, n), wrapping at both ends
func nextIndex(i, step, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i+step)%n + n) % n
}

func modeLabel(mode request.Mode) string {
	if mode == request.ModeJSON {
		return "JSON"
	}
	return "Raw"
}

// getBlinkingArrows returns blinking arrow characters
func (app *Application) getBlinkingArrows() string {
	if app.animationFrame%animationCycleFrames < pulseCycleFrames {
		return "►"
	}
	return " "
}

func spinnerFrame(frame int) string {
	return spinnerFrames[nextIndex(frame, 0, len(spinnerFrames))]
}

// loadingText is the body shown while a request is in flight
func loadingText(method, rawURL string) string {
	return "Loading...\n" + method + " " + rawURL
}

// insertSpacesOnTab makes Tab insert two spaces in a text area instead of
// moving focus.
func insertSpacesOnTab(area *tview.TextArea) func(event *tcell.EventKey) *tcell.EventKey {
	return func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() != tcell.KeyTab || event.Modifiers()&tcell.ModShift != 0 || area.HasSelection() {
			return event
		}
		_, cursor, _ := area.GetSelection()
		area.Replace(cursor, cursor, "  ")
		area.Select(cursor+2, cursor+2)
		return nil
	}
}

// extensionForContentType picks a temp file extension for $EDITOR
func extensionForContentType(contentType string) string {
	contentType = strings.ToLower(contentType)
	switch {
	case strings.Contains(contentType, "json"):
		return "json"
	case strings.Contains(contentType, "html"):
		return "html"
	case strings.Contains(contentType, "css"):
		return "css"
	case strings.Contains(contentType, "javascript"):
		return "js"
	case strings.Contains(contentType, "xml"):
		return "xml"
	default:
		return "txt"
	}
}

// bodyStats summarises the body's keys and the token under the cursor
func bodyStats(ranges []highlight.Range, cursor int) string {
	stats := fmt.Sprintf("   [gray]%d keys", highlight.Count(ranges, highlight.Key))
	if at := highlight.Within(ranges, cursor); len(at) > 0 {
		stats += " · cursor on " + at[0].Category.String()
	}
	return stats + "[-]"
}

// firstLine returns the first non-blank line of text, trimmed
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

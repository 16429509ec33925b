package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const defaultStatusColor = "#D4D4D4"

// StatusColor picks the status line colour for a status code. Non-numeric
// codes such as "ERR" get the neutral colour.
func StatusColor(status string) string {
	code, err := strconv.Atoi(strings.TrimSpace(status))
	if err != nil {
		return defaultStatusColor
	}
	switch {
	case code >= 200 && code < 300:
		return "#6A9955"
	case code >= 300 && code < 400:
		return "#569CD6"
	case code >= 400 && code < 500:
		return "#F44747"
	case code >= 500 && code < 600:
		return "#C586C0"
	}
	return defaultStatusColor
}

// StatusLabel renders "HTTP 200 OK", or "HTTP 200" when text is empty.
func StatusLabel(status, text string) string {
	if text == "" {
		return "HTTP " + status
	}
	return "HTTP " + status + " " + text
}

// DurationLabel renders a duration rounded to whole milliseconds.
func DurationLabel(ms float64) string {
	return fmt.Sprintf("%d ms", int64(math.Round(ms)))
}

// SizeLabel renders a byte count in kilobytes with one decimal.
func SizeLabel(bytes int) string {
	return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
}

// StatusLine is the coloured status summary: a dot, the status label, then
// duration and size in the dim colour when known.
func StatusLine(status, text string, durationMs float64, sizeBytes int, known bool) string {
	color := StatusColor(status)
	line := Paint("●", color) + " " + Paint(StatusLabel(status, text), color)
	if known {
		line += "  [gray]" + DurationLabel(durationMs) + "  " + SizeLabel(sizeBytes) + "[-]"
	}
	return line
}

package format

import (
	"strings"
	"testing"

	"github.com/cnharrison/zirest/internal/highlight"
)

func TestContentFormatter_FormatContent(t *testing.T) {
	formatter := NewContentFormatter(DefaultPalette(), false)

	tests := []struct {
		name        string
		content     string
		contentType string
		shouldColor bool
	}{
		{
			name:        "empty content",
			content:     "",
			contentType: TypeJSON,
		},
		{
			name:        "json content",
			content:     `{"key": "value", "number": 42}`,
			contentType: TypeJSON,
			shouldColor: true,
		},
		{
			name:        "javascript content",
			content:     "const msg = `Hello ${name}!`; console.log(msg);",
			contentType: TypeJavaScript,
			shouldColor: true,
		},
		{
			name:        "css content",
			content:     ".class { color: red; background: blue; }",
			contentType: TypeCSS,
			shouldColor: true,
		},
		{
			name:        "html content",
			content:     "<html><body><p class=\"x\">Hello</p></body></html>",
			contentType: TypeHTML,
			shouldColor: true,
		},
		{
			name:        "xml content",
			content:     `<?xml version="1.0"?><root><item id="1">v</item></root>`,
			contentType: TypeXML,
			shouldColor: true,
		},
		{
			name:        "plain text content",
			content:     "plain text content",
			contentType: TypeText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatter.FormatContent(tt.content, tt.contentType)

			if result == "" {
				t.Error("Expected non-empty result")
			}
			if tt.shouldColor && !strings.Contains(result, "[#") {
				t.Errorf("Expected colored output, but got: %s", result)
			}
			if tt.content == "" && !strings.Contains(result, "No content") {
				t.Errorf("Expected 'No content' message for empty input, got: %s", result)
			}
			if tt.contentType == TypeText && result != tt.content {
				t.Errorf("Expected plain text unchanged, got: %s", result)
			}
		})
	}
}

func TestContentFormatter_FormatJSON(t *testing.T) {
	formatter := NewContentFormatter(DefaultPalette(), false)

	result := formatter.FormatJSON(`{"a":[1,true,null]}`)
	expected := "[#D4D4D4]{[-]\n  [#9CDCFE]\"a\"[#D4D4D4]:[-] [#D4D4D4][[-]\n    [#B5CEA8]1[#D4D4D4],[-]\n    [#569CD6]true[#D4D4D4],[-]\n    [#569CD6]null[-]\n  [#D4D4D4]][-]\n[#D4D4D4]}[-]"
	if result != expected {
		t.Errorf("FormatJSON() =\n%q\nwant\n%q", result, expected)
	}
}

func TestPrettyJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{
			name:     "object keeps key order",
			input:    `{"b":1,"a":{"c":[]}}`,
			expected: "{\n  \"b\": 1,\n  \"a\": {\n    \"c\": []\n  }\n}",
			ok:       true,
		},
		{
			name:     "number literal preserved",
			input:    `[1.50, 1e3]`,
			expected: "[\n  1.50,\n  1e3\n]",
			ok:       true,
		},
		{
			name:     "invalid json returned as is",
			input:    `{"a":`,
			expected: `{"a":`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := PrettyJSON(tt.input)
			if ok != tt.ok {
				t.Errorf("PrettyJSON() ok = %v, want %v", ok, tt.ok)
			}
			if result != tt.expected {
				t.Errorf("PrettyJSON() =\n%s\nwant\n%s", result, tt.expected)
			}
		})
	}
}

func TestColorize(t *testing.T) {
	palette := Palette{Key: "#111111", String: "#222222", Punctuation: "#333333"}

	tests := []struct {
		name     string
		text     string
		ranges   []highlight.Range
		expected string
	}{
		{
			name:     "no ranges",
			text:     "plain",
			expected: "plain",
		},
		{
			name:     "empty text",
			text:     "",
			ranges:   []highlight.Range{{Start: 0, End: 3, Category: highlight.Key}},
			expected: "",
		},
		{
			name:     "last range wins on overlap",
			text:     `"ab"`,
			ranges:   []highlight.Range{{Start: 0, End: 4, Category: highlight.String}, {Start: 1, End: 3, Category: highlight.Key}},
			expected: `[#222222]"[#111111]ab[#222222]"[-]`,
		},
		{
			name:     "duplicate ranges are harmless",
			text:     "{}",
			ranges:   []highlight.Range{{Start: 0, End: 1, Category: highlight.Punctuation}, {Start: 0, End: 1, Category: highlight.Punctuation}, {Start: 1, End: 2, Category: highlight.Punctuation}},
			expected: "[#333333]{}[-]",
		},
		{
			name:     "out of bounds range clipped",
			text:     "ab",
			ranges:   []highlight.Range{{Start: -3, End: 99, Category: highlight.Key}},
			expected: "[#111111]ab[-]",
		},
		{
			name:     "tags in text are escaped",
			text:     `"[red]"`,
			ranges:   []highlight.Range{{Start: 0, End: 7, Category: highlight.String}},
			expected: `[#222222]"[red[]"[-]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Colorize(tt.text, tt.ranges, palette); got != tt.expected {
				t.Errorf("Colorize() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		mimeType string
		expected string
	}{
		{"json from mime", `{"a":1}`, "application/json", TypeJSON},
		{"json body beats text mime", `[1,2]`, "text/plain", TypeJSON},
		{"invalid json with json mime", `{"a":`, "application/json; charset=utf-8", TypeText},
		{"javascript from mime", "var x = 1;", "application/javascript", TypeJavaScript},
		{"html from content", "<!DOCTYPE html><html><body></body></html>", "", TypeHTML},
		{"css from mime", ".a{}", "text/css", TypeCSS},
		{"xml from declaration", `<?xml version="1.0"?><a/>`, "", TypeXML},
		{"xml from mime", "<a>1</a>", "application/xml", TypeXML},
		{"javascript from keywords", "function go() { return 1 }", "", TypeJavaScript},
		{"fallback to text", "hello world", "", TypeText},
		{"empty content", "", "", TypeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectContentType(tt.content, tt.mimeType); got != tt.expected {
				t.Errorf("DetectContentType() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestStatusLabels(t *testing.T) {
	colors := map[string]string{
		"200": "#6A9955",
		"204": "#6A9955",
		"301": "#569CD6",
		"404": "#F44747",
		"503": "#C586C0",
		"ERR": "#D4D4D4",
		"100": "#D4D4D4",
		"…":   "#D4D4D4",
	}
	for status, expected := range colors {
		if got := StatusColor(status); got != expected {
			t.Errorf("StatusColor(%q) = %q, want %q", status, got, expected)
		}
	}

	if got := StatusLabel("200", "OK"); got != "HTTP 200 OK" {
		t.Errorf("StatusLabel() = %q", got)
	}
	if got := StatusLabel("418", ""); got != "HTTP 418" {
		t.Errorf("StatusLabel() = %q", got)
	}
	if got := DurationLabel(12.5); got != "13 ms" {
		t.Errorf("DurationLabel() = %q", got)
	}
	if got := SizeLabel(1536); got != "1.5 KB" {
		t.Errorf("SizeLabel() = %q", got)
	}
	if got := SizeLabel(0); got != "0.0 KB" {
		t.Errorf("SizeLabel() = %q", got)
	}
}

func TestStatusLine(t *testing.T) {
	line := StatusLine("ERR", "Error", 0, 0, false)
	if line != "[#D4D4D4]●[-] [#D4D4D4]HTTP ERR Error[-]" {
		t.Errorf("StatusLine() = %q", line)
	}

	line = StatusLine("200", "OK", 41.6, 2048, true)
	if !strings.HasSuffix(line, "[gray]42 ms  2.0 KB[-]") {
		t.Errorf("StatusLine() = %q", line)
	}
}

func BenchmarkContentFormatter_FormatJSON(b *testing.B) {
	formatter := NewContentFormatter(DefaultPalette(), false)
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < 200; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(`{"id":1,"title":"lorem ipsum","done":false,"tags":["a","b"]}`)
	}
	sb.WriteString("]")
	content := sb.String()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		formatter.FormatJSON(content)
	}
}

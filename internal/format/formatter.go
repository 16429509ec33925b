package format

import (
	"bytes"
	"encoding/xml"
	"net/http"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/go-xmlfmt/xmlfmt"
	"github.com/rivo/tview"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/yosssi/gohtml"

	"github.com/cnharrison/zirest/internal/highlight"
)

// Content types returned by DetectContentType.
const (
	TypeJSON       = "json"
	TypeHTML       = "html"
	TypeXML        = "xml"
	TypeJavaScript = "javascript"
	TypeCSS        = "css"
	TypeText       = "text"
)

// ContentFormatter pretty-prints response bodies and colours them with tview tags
type ContentFormatter struct {
	palette    Palette
	structural bool
}

// NewContentFormatter creates a formatter. structuralKeys selects the
// syntax-tree key classification instead of the textual one.
func NewContentFormatter(palette Palette, structuralKeys bool) *ContentFormatter {
	return &ContentFormatter{palette: palette, structural: structuralKeys}
}

// Palette returns the formatter's colours
func (f *ContentFormatter) Palette() Palette {
	return f.palette
}

// Highlight tokenizes JSON-like text with the configured key rule
func (f *ContentFormatter) Highlight(text string) []highlight.Range {
	if f.structural {
		return highlight.HighlightStructural(text)
	}
	return highlight.Highlight(text)
}

// FormatContent formats content based on detected type with syntax highlighting
func (f *ContentFormatter) FormatContent(content, contentType string) string {
	if content == "" {
		return "[gray]No content[-]"
	}

	switch contentType {
	case TypeJSON:
		return f.FormatJSON(content)
	case TypeHTML:
		return f.chromaTags("html", gohtml.Format(content))
	case TypeXML:
		return f.chromaTags("xml", xmlfmt.FormatXML(content, "", "  "))
	case TypeJavaScript:
		return f.chromaTags("javascript", content)
	case TypeCSS:
		return f.chromaTags("css", content)
	default:
		// Plain text still goes through the JSON tokenizer, which colours
		// any numbers, literals and quoted strings it finds.
		return Colorize(content, f.Highlight(content), f.palette)
	}
}

// FormatJSON pretty-prints valid JSON and colours it. Invalid JSON is
// coloured as typed.
func (f *ContentFormatter) FormatJSON(content string) string {
	text, _ := PrettyJSON(content)
	return Colorize(text, f.Highlight(text), f.palette)
}

// FormatError colours an error message for the body view
func (f *ContentFormatter) FormatError(message string) string {
	return Paint(message, f.palette.Error)
}

// PrettyJSON re-indents valid JSON with two spaces, keeping key order and
// number literals. It returns the input unchanged and false when content is
// not valid JSON.
func PrettyJSON(content string) (string, bool) {
	if !gjson.Valid(content) {
		return content, false
	}
	out := pretty.PrettyOptions([]byte(content), &pretty.Options{
		Indent:   "  ",
		SortKeys: false,
	})
	return string(bytes.TrimRight(out, "\n")), true
}

// chromaTags colours text with the named chroma lexer, falling back to plain
// escaped text when the lexer is missing or fails.
func (f *ContentFormatter) chromaTags(lexerName, text string) string {
	lexer := lexers.Get(lexerName)
	if lexer == nil {
		return tview.Escape(text)
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return tview.Escape(text)
	}

	var sb strings.Builder
	for _, token := range it.Tokens() {
		sb.WriteString(Paint(token.Value, f.tokenColor(token.Type)))
	}
	return sb.String()
}

func (f *ContentFormatter) tokenColor(t chroma.TokenType) string {
	switch {
	case t.InCategory(chroma.Comment):
		return f.palette.Comment
	case t.InSubCategory(chroma.LiteralString):
		return f.palette.String
	case t.InSubCategory(chroma.LiteralNumber):
		return f.palette.Number
	case t.InSubCategory(chroma.NameAttribute):
		return f.palette.Key
	case t.InSubCategory(chroma.NameTag), t.InCategory(chroma.Keyword):
		return f.palette.Boolean
	case t.InCategory(chroma.Operator), t.InCategory(chroma.Punctuation):
		return f.palette.Punctuation
	}
	return ""
}

var (
	xmlElementRe = regexp.MustCompile(`^<[a-zA-Z][^>]*>.*</[a-zA-Z][^>]*>$`)
	htmlTagRe    = regexp.MustCompile(`<(div|span|p|body|head|script|style|link|meta)\b[^>]*>`)
	jsPatterns   = []*regexp.Regexp{
		regexp.MustCompile(`\b(function|var|let|const|class|import|export)\b`),
		regexp.MustCompile(`\b(console|window|document)\.[a-zA-Z]`),
		regexp.MustCompile(`=>\s*[{(]`),
		regexp.MustCompile(`\.(getElementById|addEventListener|querySelector)`),
	}
	cssPatterns = []*regexp.Regexp{
		regexp.MustCompile(`@(media|import|keyframes|font-face)\b`),
		regexp.MustCompile(`[.#]?[a-zA-Z][\w-]*\s*\{[^}]*\b(color|background|margin|padding|font-size|width|height)\s*:`),
	}
)

// DetectContentType detects content type from the Content-Type header and the body
func (f *ContentFormatter) DetectContentType(content, mimeType string) string {
	return DetectContentType(content, mimeType)
}

// DetectContentType detects content type from the Content-Type header and the body
func DetectContentType(content, mimeType string) string {
	trimmed := strings.TrimSpace(content)

	// A body that parses as JSON is shown as JSON whatever the header says.
	if trimmed != "" && gjson.Valid(trimmed) {
		return TypeJSON
	}

	if mimeType != "" {
		lowerMime := strings.ToLower(mimeType)
		switch {
		case strings.Contains(lowerMime, "html"):
			return TypeHTML
		case strings.Contains(lowerMime, "javascript") || strings.Contains(lowerMime, "/js") || strings.Contains(lowerMime, "ecmascript"):
			return TypeJavaScript
		case strings.Contains(lowerMime, "css"):
			return TypeCSS
		case strings.Contains(lowerMime, "xml"):
			return TypeXML
		}
	}

	if trimmed == "" {
		return TypeText
	}

	detected := http.DetectContentType([]byte(trimmed))
	switch {
	case strings.Contains(detected, "text/html"):
		return TypeHTML
	case strings.Contains(detected, "text/xml") || strings.Contains(detected, "application/xml"):
		return TypeXML
	}

	if strings.HasPrefix(trimmed, "<?xml") {
		return TypeXML
	}
	if xmlElementRe.MatchString(strings.ReplaceAll(trimmed, "\n", "")) {
		var xmlData interface{}
		if xml.Unmarshal([]byte(trimmed), &xmlData) == nil {
			return TypeXML
		}
	}

	lowerTrimmed := strings.ToLower(trimmed)
	if strings.Contains(lowerTrimmed, "<!doctype html") ||
		strings.Contains(lowerTrimmed, "<html") ||
		htmlTagRe.MatchString(lowerTrimmed) {
		return TypeHTML
	}

	for _, pattern := range jsPatterns {
		if pattern.MatchString(trimmed) {
			return TypeJavaScript
		}
	}
	for _, pattern := range cssPatterns {
		if pattern.MatchString(trimmed) {
			return TypeCSS
		}
	}

	return TypeText
}

package render

import (
	"bytes"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/cnharrison/zirest/internal/errors"
	"github.com/cnharrison/zirest/internal/format"
	"github.com/cnharrison/zirest/internal/highlight"
	"github.com/cnharrison/zirest/internal/history"
	"github.com/cnharrison/zirest/internal/httpclient"
	"github.com/cnharrison/zirest/internal/jsontree"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(t *testing.T) *Renderer {
	t.Helper()
	return New(&bytes.Buffer{}, false, format.DefaultPalette())
}

func colored(t *testing.T) *Renderer {
	t.Helper()
	return New(&bytes.Buffer{}, true, format.DefaultPalette())
}

func TestHighlight_NoColor(t *testing.T) {
	text := `{"a": [1, true, null]}`
	assert.Equal(t, text, plain(t).Highlight(text, highlight.Highlight(text)))
}

func TestHighlight_Color(t *testing.T) {
	text := "{\n  \"a\": \"x\ty\",\n  \"b\": 2\n}"
	out := colored(t).Highlight(text, highlight.Highlight(text))

	assert.Contains(t, out, "\x1b[")
	assert.Equal(t, text, ansiRe.ReplaceAllString(out, ""))
}

func TestHighlight_ClipsRanges(t *testing.T) {
	text := "abc"
	out := colored(t).Highlight(text, []highlight.Range{{Start: -2, End: 10, Category: highlight.String}})
	assert.Equal(t, text, ansiRe.ReplaceAllString(out, ""))
}

func TestPaint_Multiline(t *testing.T) {
	r := colored(t)
	out := r.Paint("a\n\nlonger line", "#FF0000")
	lines := strings.Split(ansiRe.ReplaceAllString(out, ""), "\n")
	assert.Equal(t, []string{"a", "", "longer line"}, lines)

	assert.Equal(t, "x", plain(t).Paint("x", "#FF0000"))
	assert.Equal(t, "x", r.Paint("x", ""))
}

func TestStatusLine(t *testing.T) {
	resp := &httpclient.Response{Status: 200, StatusText: "OK", Duration: 42 * time.Millisecond, SizeBytes: 2048}
	assert.Equal(t, "● HTTP 200 OK  42 ms  2.0 KB", plain(t).StatusLine(resp))
}

func TestErrorLine(t *testing.T) {
	assert.Equal(t, "● ERR Error: Enter a URL before sending.", plain(t).ErrorLine(apperrors.ErrEmptyURL))
}

func TestTree(t *testing.T) {
	v, err := jsontree.Parse([]byte(`{"a": [1, true], "b": null, "c": "hi"}`))
	require.NoError(t, err)

	want := strings.Join([]string{
		"{ … } (3)",
		`├── "a": [ … ] (2)`,
		"│   ├── [0]: 1",
		"│   └── [1]: true",
		`├── "b": null`,
		`└── "c": "hi"`,
		"",
	}, "\n")
	assert.Equal(t, want, plain(t).Tree(jsontree.Project(v), 0))
}

func TestTree_MaxDepth(t *testing.T) {
	v, err := jsontree.Parse([]byte(`{"a": {"b": {"c": 1}}}`))
	require.NoError(t, err)

	out := plain(t).Tree(jsontree.Project(v), 1)
	assert.Equal(t, "{ … } (1)\n└── \"a\": { … } (1)\n", out)
}

func TestTree_Scalar(t *testing.T) {
	assert.Equal(t, "42\n", plain(t).Tree(jsontree.Project(42), 0))
}

func TestHeadersTable(t *testing.T) {
	out := plain(t).HeadersTable(map[string]string{
		"Content-Type": "application/json",
		"Age":          "12",
	})

	assert.Contains(t, out, "Content-Type")
	assert.Contains(t, out, "application/json")
	assert.Less(t, strings.Index(out, "Age"), strings.Index(out, "Content-Type"))
}

func TestHistoryTable(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	items := []history.Item{
		history.NewItem("GET", "https://example.com/a", now.Add(-10*time.Second)),
		history.NewItem("DELETE", "https://example.com/"+strings.Repeat("x", 200), now.Add(-time.Hour)),
	}

	out := plain(t).HistoryTable(items, now)
	assert.Contains(t, out, "https://example.com/a")
	assert.Contains(t, out, "just now")
	assert.Contains(t, out, "DELETE")
	assert.Contains(t, out, "...")
	assert.NotContains(t, out, strings.Repeat("x", 100))
}

func TestColorEnabled(t *testing.T) {
	assert.False(t, ColorEnabled(os.Stdout, true))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(os.Stdout, false))
}

package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cnharrison/zirest/internal/config"
	"github.com/cnharrison/zirest/internal/format"
	"github.com/cnharrison/zirest/internal/har"
	"github.com/cnharrison/zirest/internal/highlight"
	"github.com/cnharrison/zirest/internal/render"
	"github.com/cnharrison/zirest/internal/request"
)

func newParser(t *testing.T, cli *CLI) *kong.Kong {
	t.Helper()
	parser, err := kong.New(cli, kong.Name("zirest"), kong.Vars{"version": version}, kong.Exit(func(int) {}))
	require.NoError(t, err)
	return parser
}

func testContext(t *testing.T) (*runContext, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cfg := config.NewConfig()
	cfg.History.Path = filepath.Join(t.TempDir(), "history.json")
	cfg.History.Watch = false

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &runContext{cfg: cfg, stdout: stdout, stderr: stderr}, stdout, stderr
}

func TestCLI_DefaultsToTUI(t *testing.T) {
	var cli CLI
	ctx, err := newParser(t, &cli).Parse([]string{})
	require.NoError(t, err)
	assert.Equal(t, "tui", ctx.Command())
}

func TestCLI_ParsesSend(t *testing.T) {
	var cli CLI
	ctx, err := newParser(t, &cli).Parse([]string{
		"send", "post", "example.com/items", "name=x", "page==2",
		"-H", "X-Trace: abc", "--raw", "--no-history",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ctx.Command(), "send"))
	assert.Equal(t, "post", cli.Send.Method)
	assert.Equal(t, []string{"name=x", "page==2"}, cli.Send.Items)
	assert.Equal(t, []string{"X-Trace: abc"}, cli.Send.Header)
	assert.True(t, cli.Send.Raw)
	assert.True(t, cli.Send.NoHistory)
}

func TestCLI_HistoryListTakesQuery(t *testing.T) {
	var cli CLI
	_, err := newParser(t, &cli).Parse([]string{"history", "list", "users", "-m", "GET"})
	require.NoError(t, err)
	assert.Equal(t, "users", cli.History.List.Query)
	assert.Equal(t, "GET", cli.History.List.Method)
}

func TestSendCmd_Draft(t *testing.T) {
	cmd := &SendCmd{
		Method: "post",
		URL:    "example.com",
		Items:  []string{"user.name=x", "age:=3", "X-A:1", "q==v"},
		Header: []string{"X-B: 2"},
		Query:  []string{"page=2"},
	}
	draft, err := cmd.draft(strings.NewReader(""))
	require.NoError(t, err)

	assert.Equal(t, "POST", draft.Method)
	assert.Equal(t, request.ModeJSON, draft.Mode)
	assert.JSONEq(t, `{"user":{"name":"x"},"age":3}`, draft.Body)
	assert.Equal(t, []request.Pair{{Key: "X-A", Value: "1"}, {Key: "X-B", Value: "2"}}, draft.Headers)
	assert.Equal(t, []request.Pair{{Key: "q", Value: "v"}, {Key: "page", Value: "2"}}, draft.Query)
}

func TestSendCmd_DraftRejectsDataWithBodyItems(t *testing.T) {
	cmd := &SendCmd{Method: "POST", URL: "example.com", Items: []string{"a=1"}, Data: "{}"}
	_, err := cmd.draft(strings.NewReader(""))
	assert.Error(t, err)
}

func TestSendCmd_DraftRejectsUnknownMethod(t *testing.T) {
	cmd := &SendCmd{Method: "TRACE", URL: "example.com"}
	_, err := cmd.draft(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadData(t *testing.T) {
	got, err := readData("plain", nil)
	require.NoError(t, err)
	assert.Equal(t, "plain", got)

	got, err = readData("@-", strings.NewReader(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, got)

	path := filepath.Join(t.TempDir(), "body.json")
	require.NoError(t, os.WriteFile(path, []byte("[1]"), 0o644))
	got, err = readData("@"+path, nil)
	require.NoError(t, err)
	assert.Equal(t, "[1]", got)

	_, err = readData("@"+filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}

func TestSendCmd_Run(t *testing.T) {
	var gotMethod, gotBody, gotType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":7,"user":{"name":"x"}}`))
	}))
	defer server.Close()

	rc, stdout, stderr := testContext(t)
	cmd := &SendCmd{Method: "POST", URL: server.URL, Items: []string{"name=x"}, NoColor: true}
	require.NoError(t, cmd.Run(rc))

	assert.Equal(t, "POST", gotMethod)
	assert.Equal(t, "application/json", gotType)
	assert.JSONEq(t, `{"name":"x"}`, gotBody)
	assert.Contains(t, stderr.String(), "HTTP 200")
	assert.Contains(t, stdout.String(), `"id": 7`)

	h, err := rc.openHistory()
	require.NoError(t, err)
	defer h.Close()
	require.Len(t, h.Items(), 1)
	assert.Equal(t, server.URL, h.Items()[0].URL)
}

func TestSendCmd_RunWithFilterAndTree(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"items":[1,2]}}`))
	}))
	defer server.Close()

	rc, stdout, _ := testContext(t)
	cmd := &SendCmd{Method: "GET", URL: server.URL, Filter: "data.items", Tree: true, NoColor: true, NoHistory: true}
	require.NoError(t, cmd.Run(rc))
	assert.Equal(t, "[ … ] (2)\n├── [0]: 1\n└── [1]: 2\n", stdout.String())

	stdout.Reset()
	cmd.Filter = "data.missing"
	assert.Error(t, cmd.Run(rc))
}

func TestHighlightCmd_Run(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":[true,null]}`), 0o644))

	rc, stdout, _ := testContext(t)
	require.NoError(t, (&HighlightCmd{File: path, NoColor: true}).Run(rc))
	assert.Contains(t, stdout.String(), `"a": [`)
	assert.Contains(t, stdout.String(), "null")

	stdout.Reset()
	require.NoError(t, (&HighlightCmd{File: path, Tree: true, NoColor: true}).Run(rc))
	assert.Equal(t, "{ … } (1)\n└── \"a\": [ … ] (2)\n    ├── [0]: true\n    └── [1]: null\n", stdout.String())
}

func TestHighlightText_SelectsTokenizer(t *testing.T) {
	r := render.New(io.Discard, true, format.DefaultPalette())
	text := `["a": 1]`

	regex := highlightText(r, text, false)
	structural := highlightText(r, text, true)

	assert.Equal(t, r.Highlight(text, highlight.Highlight(text))+"\n", regex)
	assert.Equal(t, r.Highlight(text, highlight.HighlightStructural(text))+"\n", structural)
	assert.NotEqual(t, regex, structural, "a string outside a pair is only a key to the regex tokenizer")
}

func TestHistoryCommands(t *testing.T) {
	rc, stdout, _ := testContext(t)

	h, err := rc.openHistory()
	require.NoError(t, err)
	_, err = h.Add("GET", "https://example.com/users")
	require.NoError(t, err)
	_, err = h.Add("POST", "https://example.com/orders")
	require.NoError(t, err)
	h.Close()

	require.NoError(t, (&HistoryListCmd{Query: "users"}).Run(rc))
	assert.Contains(t, stdout.String(), "https://example.com/users")
	assert.NotContains(t, stdout.String(), "orders")

	stdout.Reset()
	require.NoError(t, (&HistoryListCmd{Query: "nothing-matches"}).Run(rc))
	assert.Equal(t, "No matches\n", stdout.String())

	out := filepath.Join(t.TempDir(), "history.har")
	require.NoError(t, (&HistoryExportCmd{File: out}).Run(rc))
	exported, err := har.ReadHistoryItems(out, time.Now())
	require.NoError(t, err)
	assert.Len(t, exported, 2)

	require.NoError(t, (&HistoryRmCmd{Method: "get", URL: "https://example.com/users"}).Run(rc))
	require.NoError(t, (&HistoryClearCmd{}).Run(rc))

	stdout.Reset()
	require.NoError(t, (&HistoryImportCmd{File: out}).Run(rc))
	assert.Contains(t, stdout.String(), "Imported 2 request(s)")

	h, err = rc.openHistory()
	require.NoError(t, err)
	defer h.Close()
	assert.Len(t, h.Items(), 2)
}

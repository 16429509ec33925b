package har

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cnharrison/zirest/internal/history"
	"github.com/cnharrison/zirest/internal/httpclient"
)

var started = time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

func sampleExchange() (httpclient.Request, *httpclient.Response) {
	req := httpclient.Request{
		Method: "post",
		URL:    "https://api.example.com/v1/users?page=2",
		Headers: []httpclient.Header{
			{Key: "Content-Type", Value: "application/json"},
			{Key: "X-Trace", Value: "abc"},
		},
		Body: `{"name":"ada"}`,
	}
	resp := &httpclient.Response{
		Status:     201,
		StatusText: "Created",
		OK:         true,
		Proto:      "HTTP/2.0",
		Headers:    map[string]string{"Content-Type": "application/json", "Date": "today"},
		Duration:   42 * time.Millisecond,
		SizeBytes:  9,
		Body:       []byte(`{"id":7}`),
	}
	return req, resp
}

func TestNewEntry(t *testing.T) {
	req, resp := sampleExchange()
	entry := NewEntry(req, resp, started)

	if entry.StartedDateTime != "2024-05-01T12:30:00.000Z" {
		t.Errorf("StartedDateTime = %q", entry.StartedDateTime)
	}
	if entry.Time != 42 {
		t.Errorf("Time = %v, want 42", entry.Time)
	}
	if entry.Request.Method != "POST" {
		t.Errorf("Method = %q, want POST", entry.Request.Method)
	}
	if len(entry.Request.Headers) != 2 || entry.Request.Headers[1].Name != "X-Trace" {
		t.Errorf("request headers = %+v", entry.Request.Headers)
	}
	if len(entry.Request.QueryString) != 1 || entry.Request.QueryString[0] != (Header{Name: "page", Value: "2"}) {
		t.Errorf("QueryString = %+v", entry.Request.QueryString)
	}
	if entry.Request.PostData == nil || entry.Request.PostData.MimeType != "application/json" {
		t.Fatalf("PostData = %+v", entry.Request.PostData)
	}
	if entry.Response.Status != 201 || entry.Response.HTTPVersion != "HTTP/2.0" {
		t.Errorf("response = %d %s", entry.Response.Status, entry.Response.HTTPVersion)
	}
	if entry.Response.Headers[0].Name != "Content-Type" || entry.Response.Headers[1].Name != "Date" {
		t.Errorf("response headers not sorted: %+v", entry.Response.Headers)
	}
	if entry.Response.Content.MimeType != "application/json" || entry.BodyText() != `{"id":7}` {
		t.Errorf("content = %+v", entry.Response.Content)
	}
}

func TestNewEntry_NoResponse(t *testing.T) {
	entry := NewEntry(httpclient.Request{URL: "https://example.com"}, nil, started)

	if entry.Request.Method != "GET" {
		t.Errorf("Method = %q, want GET", entry.Request.Method)
	}
	if entry.Response.Status != 0 {
		t.Errorf("Status = %d, want 0", entry.Response.Status)
	}
	if entry.Request.PostData != nil {
		t.Errorf("PostData = %+v, want nil", entry.Request.PostData)
	}
}

func TestNewEntry_BinaryBody(t *testing.T) {
	req, resp := sampleExchange()
	resp.Body = []byte{0xff, 0xfe, 0x00}
	entry := NewEntry(req, resp, started)

	if entry.Response.Content.Encoding != "base64" {
		t.Fatalf("Encoding = %q, want base64", entry.Response.Content.Encoding)
	}
	if entry.BodyText() != string(resp.Body) {
		t.Errorf("BodyText did not round-trip binary content")
	}
}

func TestWriteAndStream(t *testing.T) {
	req, resp := sampleExchange()
	path := filepath.Join(t.TempDir(), "out.har")
	f := NewFile("test", []Entry{
		NewEntry(req, resp, started),
		NewEntry(httpclient.Request{Method: "GET", URL: "https://example.com/<a>"}, nil, started.Add(time.Minute)),
	})

	if err := WriteFile(path, f); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"creator": {`) || !strings.Contains(string(data), "/<a>") {
		t.Errorf("unexpected archive layout:\n%s", data)
	}

	var loaded File
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("decoding archive: %v", err)
	}
	if loaded.Log.Version != Version || loaded.Log.Creator.Name != CreatorName {
		t.Errorf("log header = %+v", loaded.Log)
	}

	in, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	var urls []string
	err = StreamEntries(in, func(entry Entry, index int) error {
		if index != len(urls) {
			t.Errorf("index = %d, want %d", index, len(urls))
		}
		urls = append(urls, entry.Request.URL)
		return nil
	})
	if err != nil {
		t.Fatalf("StreamEntries: %v", err)
	}
	if len(urls) != 2 || urls[1] != "https://example.com/<a>" {
		t.Errorf("urls = %v", urls)
	}
}

func TestStreamEntries_SkipsUnknownKeys(t *testing.T) {
	doc := `{"meta": {"x": [1, 2]}, "log": {"pages": [], "entries": [{"request": {"method": "GET", "url": "https://a"}}], "comment": "c"}}`

	count := 0
	err := StreamEntries(strings.NewReader(doc), func(Entry, int) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("StreamEntries: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestStreamEntries_StopsOnCallbackError(t *testing.T) {
	doc := `{"log": {"entries": [{}, {}, {}]}}`
	stop := errors.New("stop")

	count := 0
	err := StreamEntries(strings.NewReader(doc), func(Entry, int) error {
		count++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Errorf("err = %v, want stop", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestStreamEntries_Invalid(t *testing.T) {
	tests := []string{``, `[]`, `{"log": []}`, `{"log": {"entries": {}}}`}
	for _, doc := range tests {
		err := StreamEntries(strings.NewReader(doc), func(Entry, int) error { return nil })
		if err == nil {
			t.Errorf("StreamEntries(%q) expected error", doc)
		}
	}
}

func TestReadHistoryItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.har")
	doc := `{"log": {"entries": [
		{"startedDateTime": "2024-01-02T03:04:05.000Z", "request": {"method": "get", "url": "https://a"}},
		{"startedDateTime": "nonsense", "request": {"method": "POST", "url": "https://b"}},
		{"request": {"method": "GET", "url": "  "}}
	]}}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	items, err := ReadHistoryItems(path, started)
	if err != nil {
		t.Fatalf("ReadHistoryItems: %v", err)
	}

	want := []history.Item{
		{Method: "GET", URL: "https://a", At: "2024-01-02T03:04:05.000Z"},
		{Method: "POST", URL: "https://b", At: "2024-05-01T12:30:00.000Z"},
	}
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d: %+v", len(items), len(want), items)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("items[%d] = %+v, want %+v", i, items[i], want[i])
		}
	}
}

func TestFromHistory(t *testing.T) {
	items := []history.Item{
		{Method: "DELETE", URL: "https://a/1", At: "2024-01-02T03:04:05.000Z"},
	}
	entries := FromHistory(items)
	if len(entries) != 1 {
		t.Fatalf("got %d entries", len(entries))
	}
	e := entries[0]
	if e.Request.Method != "DELETE" || e.Request.URL != "https://a/1" || e.StartedDateTime != items[0].At {
		t.Errorf("entry = %+v", e)
	}
	if e.Response.Status != 0 {
		t.Errorf("Status = %d, want 0", e.Response.Status)
	}
}

func TestGenerateDescriptiveFilename(t *testing.T) {
	tests := []struct {
		name   string
		method string
		url    string
		want   string
	}{
		{"path", "get", "https://api.example.com/v1/users", "GET_api.example.com_v1_users.har"},
		{"root", "POST", "https://example.com/", "POST_example.com_root.har"},
		{"port", "GET", "http://localhost:8080/a,b", "GET_localhost_8080_a_b.har"},
		{"no host", "GET", "not a url", "request_GET_unknown.har"},
		{"empty method", "", "https://x.io", "GET_x.io_root.har"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateDescriptiveFilename(tt.method, tt.url, ".har")
			if got != tt.want {
				t.Errorf("GenerateDescriptiveFilename() = %q, want %q", got, tt.want)
			}
		})
	}
}

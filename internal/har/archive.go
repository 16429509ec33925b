package har

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/cnharrison/zirest/internal/errors"
	"github.com/cnharrison/zirest/internal/history"
	"github.com/cnharrison/zirest/internal/httpclient"
)

// CreatorName is written into every archive's creator block.
const CreatorName = "zirest"

var (
	unsafeFilenameChars = regexp.MustCompile(`[^\w\-_.]`)
	repeatedUnderscores = regexp.MustCompile(`_+`)
)

// NewFile wraps entries in a HAR log stamped with the given creator version.
func NewFile(creatorVersion string, entries []Entry) *File {
	if entries == nil {
		entries = []Entry{}
	}
	return &File{
		Log: Log{
			Version: Version,
			Creator: Creator{Name: CreatorName, Version: creatorVersion},
			Entries: entries,
		},
	}
}

// NewEntry records one exchange. resp may be nil when the request failed, in
// which case the response status is 0.
func NewEntry(req httpclient.Request, resp *httpclient.Response, started time.Time) Entry {
	entry := Entry{
		StartedDateTime: history.FormatTime(started),
		Request:         newRequest(req),
		Response: Response{
			HTTPVersion: "HTTP/1.1",
			Headers:     []Header{},
			Cookies:     []Cookie{},
			HeadersSize: -1,
			BodySize:    -1,
		},
		Timings: Timings{Blocked: -1, DNS: -1, Connect: -1, SSL: -1},
	}
	if resp == nil {
		return entry
	}

	entry.Time = resp.DurationMs()
	entry.Timings.Wait = resp.DurationMs()
	entry.Response.Status = resp.Status
	entry.Response.StatusText = resp.StatusText
	if resp.Proto != "" {
		entry.Response.HTTPVersion = resp.Proto
	}
	for _, name := range httpclient.SortedHeaderKeys(resp.Headers) {
		entry.Response.Headers = append(entry.Response.Headers, Header{Name: name, Value: resp.Headers[name]})
	}
	entry.Response.BodySize = resp.SizeBytes
	entry.Response.Content = newContent(resp.Body, resp.Headers["Content-Type"])
	return entry
}

func newRequest(req httpclient.Request) Request {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = "GET"
	}
	r := Request{
		Method:      method,
		URL:         req.URL,
		HTTPVersion: "HTTP/1.1",
		Headers:     make([]Header, 0, len(req.Headers)),
		QueryString: []Header{},
		Cookies:     []Cookie{},
		HeadersSize: -1,
		BodySize:    len(req.Body),
	}

	mimeType := ""
	for _, h := range req.Headers {
		r.Headers = append(r.Headers, Header{Name: h.Key, Value: h.Value})
		if strings.EqualFold(h.Key, "Content-Type") {
			mimeType = h.Value
		}
	}

	if u, err := url.Parse(req.URL); err == nil {
		for key, values := range u.Query() {
			for _, v := range values {
				r.QueryString = append(r.QueryString, Header{Name: key, Value: v})
			}
		}
	}

	if req.Body != "" {
		r.PostData = &PostData{MimeType: mimeType, Text: req.Body}
	}
	return r
}

func newContent(body []byte, mimeType string) Content {
	c := Content{Size: len(body), MimeType: mimeType}
	if len(body) == 0 {
		return c
	}
	if utf8.Valid(body) {
		c.Text = string(body)
	} else {
		c.Text = base64.StdEncoding.EncodeToString(body)
		c.Encoding = "base64"
	}
	return c
}

// BodyText returns the response body, decoding base64 content.
func (e Entry) BodyText() string {
	c := e.Response.Content
	if c.Encoding == "base64" && c.Text != "" {
		if decoded, err := base64.StdEncoding.DecodeString(c.Text); err == nil {
			return string(decoded)
		}
	}
	return c.Text
}

// FromHistory turns history items into request-only entries so an archive
// can be replayed or imported elsewhere.
func FromHistory(items []history.Item) []Entry {
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		req := httpclient.Request{Method: item.Method, URL: item.URL}
		started := item.Time()
		if started.IsZero() {
			started = time.Now()
		}
		entry := NewEntry(req, nil, started)
		entry.StartedDateTime = item.At
		if entry.StartedDateTime == "" {
			entry.StartedDateTime = history.FormatTime(started)
		}
		entries = append(entries, entry)
	}
	return entries
}

// Marshal encodes f with two-space indentation, leaving <, > and & alone.
func Marshal(f *File) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile saves f to path.
func WriteFile(path string, f *File) error {
	data, err := Marshal(f)
	if err != nil {
		return apperrors.NewOutputError("encoding HAR", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.NewOutputError("writing "+path, err)
	}
	return nil
}

// GenerateDescriptiveFilename builds a file name such as
// "GET_api.example.com_v1_users.har" from a request line.
func GenerateDescriptiveFilename(method, rawURL, suffix string) string {
	method = strings.ToUpper(method)
	if method == "" {
		method = "GET"
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "request_" + method + "_unknown" + suffix
	}

	hostname := strings.ReplaceAll(u.Host, ":", "_")
	hostname = unsafeFilenameChars.ReplaceAllString(hostname, "_")

	path := u.Path
	if path == "/" || path == "" {
		path = "root"
	} else {
		path = strings.TrimPrefix(path, "/")
		path = strings.ReplaceAll(path, "/", "_")
		path = unsafeFilenameChars.ReplaceAllString(path, "_")
		if len(path) > 50 {
			path = path[:50]
		}
	}

	filename := method + "_" + hostname + "_" + path + suffix
	return repeatedUnderscores.ReplaceAllString(filename, "_")
}

// Package request holds the editable request: method, URL, body mode, body
// text and the query and header rows, and turns it into something to send.
package request

import (
	"fmt"
	"net/url"
	"strings"

	apperrors "github.com/cnharrison/zirest/internal/errors"
	"github.com/cnharrison/zirest/internal/httpclient"
)

const (
	// DefaultURL is shown in the URL field on startup.
	DefaultURL = "https://jsonplaceholder.typicode.com/posts"

	ContentTypeJSON = "application/json"
)

// Mode says how the body editor treats its text.
type Mode int

const (
	ModeRaw Mode = iota
	ModeJSON
)

func (m Mode) String() string {
	if m == ModeJSON {
		return "json"
	}
	return "raw"
}

// ParseMode accepts "json" or "raw" (case-insensitive); anything else is raw.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return ModeJSON
	}
	return ModeRaw
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeJSON {
		return ModeRaw
	}
	return ModeJSON
}

// NormalizeMethod uppercases method and checks it is one the client offers.
func NormalizeMethod(method string) (string, error) {
	m := strings.ToUpper(strings.TrimSpace(method))
	if m == "" {
		return "GET", nil
	}
	if !httpclient.IsSupportedMethod(m) {
		return "", apperrors.NewInputError(fmt.Sprintf("method %q", method), apperrors.ErrUnsupportedMethod)
	}
	return m, nil
}

// Draft is the request being edited.
type Draft struct {
	Method  string
	URL     string
	Mode    Mode
	Body    string
	Query   []Pair
	Headers []Pair
}

// NewDraft starts a draft in JSON mode.
func NewDraft(method, rawURL string) *Draft {
	if m, err := NormalizeMethod(method); err == nil {
		method = m
	} else {
		method = "GET"
	}
	if rawURL == "" {
		rawURL = DefaultURL
	}
	return &Draft{Method: method, URL: rawURL, Mode: ModeJSON}
}

// SendOptions is the body part of a request: the text to send, and the
// content type implied by the editor mode.
type SendOptions struct {
	Body        string
	ContentType string
}

// SendOptions returns the body to send. A body of only whitespace is not sent.
func (d *Draft) SendOptions() SendOptions {
	var opts SendOptions
	if strings.TrimSpace(d.Body) == "" {
		return opts
	}
	opts.Body = d.Body
	if d.Mode == ModeJSON {
		opts.ContentType = ContentTypeJSON
	}
	return opts
}

// ResolvedURL trims the URL, adds https:// when no scheme is given and
// appends the query rows.
func (d *Draft) ResolvedURL() (string, error) {
	return ResolveURL(d.URL, d.Query)
}

// ResolveURL is ResolvedURL for a bare URL and query rows.
func ResolveURL(rawURL string, query []Pair) (string, error) {
	raw := strings.TrimSpace(rawURL)
	if raw == "" {
		return "", apperrors.NewInputError("URL is required", apperrors.ErrEmptyURL)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", apperrors.NewInputError(fmt.Sprintf("cannot parse %q", raw), apperrors.ErrInvalidURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", apperrors.NewInputError(fmt.Sprintf("scheme %q is not http or https", u.Scheme), apperrors.ErrInvalidURL)
	}
	if u.Host == "" {
		return "", apperrors.NewInputError(fmt.Sprintf("%q has no host", raw), apperrors.ErrInvalidURL)
	}

	query = CleanPairs(query)
	if len(query) == 0 {
		return u.String(), nil
	}

	parts := make([]string, 0, len(query)+1)
	if u.RawQuery != "" {
		parts = append(parts, u.RawQuery)
	}
	for _, p := range query {
		parts = append(parts, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
	}
	u.RawQuery = strings.Join(parts, "&")
	return u.String(), nil
}

// Build validates the draft and produces the request to send. In JSON mode a
// non-blank body adds Content-Type: application/json unless a header row
// already sets a content type.
func (d *Draft) Build() (httpclient.Request, error) {
	method, err := NormalizeMethod(d.Method)
	if err != nil {
		return httpclient.Request{}, err
	}

	target, err := d.ResolvedURL()
	if err != nil {
		return httpclient.Request{}, err
	}

	headers := CleanPairs(d.Headers)
	opts := d.SendOptions()
	if opts.ContentType != "" && !HasKey(headers, "Content-Type") {
		headers = append([]Pair{{Key: "Content-Type", Value: opts.ContentType}}, headers...)
	}

	return httpclient.Request{
		Method:  method,
		URL:     target,
		Headers: toHeaders(headers),
		Body:    opts.Body,
	}, nil
}

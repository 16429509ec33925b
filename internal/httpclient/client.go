// Package httpclient performs one HTTP exchange and captures what the
// response view needs: status, headers, timing, size and body.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	apperrors "github.com/cnharrison/zirest/internal/errors"
)

// Methods are the HTTP methods the client offers, in menu order.
var Methods = []string{"GET", "POST", "PUT", "PATCH", "DELETE"}

// IsSupportedMethod reports whether method (already uppercased) is in Methods.
func IsSupportedMethod(method string) bool {
	for _, m := range Methods {
		if m == method {
			return true
		}
	}
	return false
}

// Header is one request header line. Order is preserved when sending.
type Header struct {
	Key   string
	Value string
}

// Request describes what to send.
type Request struct {
	Method  string
	URL     string
	Headers []Header
	Body    string
}

// Response is a completed exchange.
type Response struct {
	Status     int
	StatusText string
	OK         bool
	Proto      string
	Headers    map[string]string
	Duration   time.Duration
	SizeBytes  int
	Body       []byte
}

// Text returns the body decoded as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// DurationMs returns the round trip in fractional milliseconds.
func (r *Response) DurationMs() float64 {
	return float64(r.Duration) / float64(time.Millisecond)
}

// Client sends requests with a fixed timeout and user agent.
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient creates a client. A zero timeout means no timeout.
func NewClient(timeout time.Duration, userAgent string) *Client {
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Do sends req and reads the full response body.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != "" {
		body = strings.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, apperrors.NewInputError(fmt.Sprintf("cannot build request for %q", req.URL), err)
	}

	for _, h := range req.Headers {
		httpReq.Header.Add(h.Key, h.Value)
	}
	if c.userAgent != "" && httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, apperrors.NewNetworkError(fmt.Sprintf("%s %s", method, req.URL), err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewNetworkError("reading response body", err)
	}
	elapsed := time.Since(start)

	return &Response{
		Status:     resp.StatusCode,
		StatusText: reasonPhrase(resp),
		OK:         resp.StatusCode >= 200 && resp.StatusCode < 300,
		Proto:      resp.Proto,
		Headers:    flattenHeaders(resp.Header),
		Duration:   elapsed,
		SizeBytes:  len(data),
		Body:       data,
	}, nil
}

// reasonPhrase extracts "OK" from "200 OK", falling back to the standard text.
func reasonPhrase(resp *http.Response) string {
	code := fmt.Sprintf("%d", resp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = strings.Join(v, ", ")
	}
	return out
}

// SortedHeaderKeys returns the header names in alphabetical order.
func SortedHeaderKeys(headers map[string]string) []string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

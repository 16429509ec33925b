package export

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cnharrison/zirest/internal/har"
	"github.com/cnharrison/zirest/internal/util"
)

const (
	requestBodyLimit  = 500
	responseBodyLimit = 800
	errorBodyLimit    = 1500
)

var (
	requestHeaderHints  = []string{"authorization", "content-type", "accept", "user-agent", "x-", "cookie", "auth"}
	responseHeaderHints = []string{"content-type", "content-length", "cache-control", "set-cookie", "location", "server", "x-"}
)

func statusMarker(status int) string {
	switch {
	case status == 0:
		return "❌"
	case status >= 500:
		return "🔥"
	case status >= 400:
		return "⚠️"
	case status >= 300:
		return "↩️"
	default:
		return "✅"
	}
}

func fenceLanguage(mimeType string) string {
	mimeType = strings.ToLower(mimeType)
	switch {
	case strings.Contains(mimeType, "json"):
		return "json"
	case strings.Contains(mimeType, "xml"):
		return "xml"
	case strings.Contains(mimeType, "html"):
		return "html"
	case strings.Contains(mimeType, "css"):
		return "css"
	case strings.Contains(mimeType, "javascript"):
		return "js"
	default:
		return "text"
	}
}

func matchesAny(name string, hints []string) bool {
	name = strings.ToLower(name)
	for _, hint := range hints {
		if strings.Contains(name, hint) {
			return true
		}
	}
	return false
}

func redact(name, value string) string {
	if !strings.Contains(strings.ToLower(name), "auth") || len(value) <= 14 {
		return value
	}
	return value[:10] + "..." + value[len(value)-4:] + " (redacted)"
}

func writeFenced(b *strings.Builder, lang, body string, limit int) {
	if len(body) > limit {
		fmt.Fprintf(b, "```%s\n%s\n... (showing first %d chars of %d total)\n```\n\n", lang, body[:limit], limit, len(body))
		return
	}
	fmt.Fprintf(b, "```%s\n%s\n```\n\n", lang, body)
}

// GenerateMarkdownSummary renders an exchange as a markdown report suitable
// for pasting into an issue or chat.
func GenerateMarkdownSummary(entry har.Entry) string {
	host, path := entry.Request.URL, ""
	if u, err := url.Parse(entry.Request.URL); err == nil && u.Host != "" {
		host, path = u.Host, u.Path
	}
	status := entry.Response.Status

	var b strings.Builder
	fmt.Fprintf(&b, "# %s %s %s", statusMarker(status), entry.Request.Method, host)
	if status > 0 {
		fmt.Fprintf(&b, " → %d", status)
	}
	b.WriteString("\n\n")

	b.WriteString("## Summary\n\n")
	if ts, err := util.ParseTimestamp(entry.StartedDateTime); err == nil {
		fmt.Fprintf(&b, "- **Sent:** %s UTC\n", ts.UTC().Format("2006-01-02 15:04:05"))
	}
	if status > 0 {
		fmt.Fprintf(&b, "- **Status:** %d %s\n", status, entry.Response.StatusText)
		fmt.Fprintf(&b, "- **Response Time:** %.0f ms\n", entry.Time)
		fmt.Fprintf(&b, "- **Size:** %d bytes\n", entry.Response.Content.Size)
	} else {
		b.WriteString("- **Status:** no response\n")
	}
	fmt.Fprintf(&b, "- **Method:** %s\n", entry.Request.Method)
	if path != "" {
		fmt.Fprintf(&b, "- **Path:** %s\n", path)
	}
	fmt.Fprintf(&b, "\n**URL:** `%s`\n\n", entry.Request.URL)

	var reqHeaders []har.Header
	for _, h := range entry.Request.Headers {
		if matchesAny(h.Name, requestHeaderHints) {
			reqHeaders = append(reqHeaders, h)
		}
	}
	if len(reqHeaders) > 0 {
		b.WriteString("## Request Headers\n\n")
		for _, h := range reqHeaders {
			fmt.Fprintf(&b, "- **%s:** `%s`\n", h.Name, redact(h.Name, h.Value))
		}
		b.WriteString("\n")
	}

	if pd := entry.Request.PostData; pd != nil && pd.Text != "" {
		b.WriteString("## Request Body\n\n")
		writeFenced(&b, fenceLanguage(pd.MimeType), pd.Text, requestBodyLimit)
	}

	if status == 0 {
		return b.String() + "---\n*Generated by zirest*"
	}

	b.WriteString("## Response\n\n")
	var respHeaders []har.Header
	for _, h := range entry.Response.Headers {
		if matchesAny(h.Name, responseHeaderHints) {
			respHeaders = append(respHeaders, h)
		}
	}
	if len(respHeaders) > 0 {
		for _, h := range respHeaders {
			fmt.Fprintf(&b, "- **%s:** `%s`\n", h.Name, h.Value)
		}
		b.WriteString("\n")
	}

	if body := entry.BodyText(); body != "" {
		limit := responseBodyLimit
		if status >= 400 {
			b.WriteString("**Error Response:**\n")
			limit = errorBodyLimit
		} else {
			b.WriteString("**Response Body:**\n")
		}
		writeFenced(&b, fenceLanguage(entry.Response.Content.MimeType), body, limit)
	}

	if hints := troubleshooting(status); hints != "" {
		b.WriteString("## Troubleshooting\n\n")
		b.WriteString(hints)
		b.WriteString("\n")
	}

	b.WriteString("---\n*Generated by zirest*")
	return b.String()
}

func troubleshooting(status int) string {
	switch {
	case status == 401:
		return "- Check authentication headers/tokens\n- Check token expiration\n"
	case status == 403:
		return "- Check user permissions\n- Check rate limiting\n"
	case status == 404:
		return "- Verify the URL path\n- Check the resource exists\n"
	case status == 429:
		return "- Rate limiting active\n- Check the Retry-After header\n"
	case status >= 500:
		return "- Server-side issue\n- Check server logs\n"
	}
	return ""
}

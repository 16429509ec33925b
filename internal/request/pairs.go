package request

import (
	"strings"

	"github.com/cnharrison/zirest/internal/httpclient"
)

// Pair is one key/value row of the query or header editor.
type Pair struct {
	Key   string
	Value string
}

// CleanPairs trims keys and drops rows whose key is empty. Values are kept as typed.
func CleanPairs(pairs []Pair) []Pair {
	out := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		key := strings.TrimSpace(p.Key)
		if key == "" {
			continue
		}
		out = append(out, Pair{Key: key, Value: p.Value})
	}
	return out
}

// ParsePairs reads one pair per line in the form "Key: Value" or "key=value".
// The first ':' or '=' on the line separates key and value. Blank lines and
// lines starting with '#' are ignored. A line without a separator is a key
// with an empty value.
func ParsePairs(text string) []Pair {
	var pairs []Pair
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		idx := strings.IndexAny(line, ":=")
		if idx < 0 {
			pairs = append(pairs, Pair{Key: line})
			continue
		}
		pairs = append(pairs, Pair{
			Key:   line[:idx],
			Value: strings.TrimSpace(line[idx+1:]),
		})
	}
	return CleanPairs(pairs)
}

// FormatPairs writes pairs back in the editor's line format using sep
// (": " for headers, "=" for query parameters).
func FormatPairs(pairs []Pair, sep string) string {
	var sb strings.Builder
	for i, p := range pairs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(p.Key)
		sb.WriteString(sep)
		sb.WriteString(p.Value)
	}
	return sb.String()
}

// HasKey reports whether pairs contain key, compared case-insensitively.
func HasKey(pairs []Pair, key string) bool {
	for _, p := range pairs {
		if strings.EqualFold(p.Key, key) {
			return true
		}
	}
	return false
}

func toHeaders(pairs []Pair) []httpclient.Header {
	out := make([]httpclient.Header, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, httpclient.Header{Key: p.Key, Value: p.Value})
	}
	return out
}

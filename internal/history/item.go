// Package history keeps the most recent distinct requests, newest first.
package history

import (
	"strings"
	"time"

	"github.com/cnharrison/zirest/internal/util"
)

// MaxItems is the default and upper bound for stored entries.
const MaxItems = 100

const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// Item is one remembered request.
type Item struct {
	Method string `json:"method" msgpack:"method"`
	URL    string `json:"url" msgpack:"url"`
	At     string `json:"at" msgpack:"at"`
}

// NewItem stamps method and url with at, formatted as an ISO-8601 UTC timestamp.
func NewItem(method, url string, at time.Time) Item {
	return Item{
		Method: normalizeMethod(method),
		URL:    url,
		At:     FormatTime(at),
	}
}

// FormatTime renders t the way Item.At stores it.
func FormatTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// Time parses At. A zero time is returned when At cannot be parsed.
func (i Item) Time() time.Time {
	t, err := util.ParseTimestamp(i.At)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Key identifies an item for de-duplication: uppercased method and exact URL.
func (i Item) Key() string {
	return strings.ToUpper(i.Method) + " " + i.URL
}

func normalizeMethod(method string) string {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		return "GET"
	}
	return method
}

// Prepend puts item first, drops any older entry with the same Key and keeps
// at most max entries. items is not modified.
func Prepend(items []Item, item Item, max int) []Item {
	if max <= 0 || max > MaxItems {
		max = MaxItems
	}

	key := item.Key()
	next := make([]Item, 0, len(items)+1)
	next = append(next, item)
	for _, existing := range items {
		if existing.Key() == key {
			continue
		}
		next = append(next, existing)
	}
	if len(next) > max {
		next = next[:max]
	}
	return next
}

// Remove returns items without entries whose method and url match exactly.
func Remove(items []Item, method, url string) []Item {
	next := make([]Item, 0, len(items))
	for _, it := range items {
		if strings.EqualFold(it.Method, method) && it.URL == url {
			continue
		}
		next = append(next, it)
	}
	return next
}

// Search returns the items whose method or URL contains query, ignoring case.
// A blank query matches everything.
func Search(items []Item, query string) []Item {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}

	var out []Item
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Method), q) || strings.Contains(strings.ToLower(it.URL), q) {
			out = append(out, it)
		}
	}
	return out
}

// EmptyLabel is the placeholder shown when a search yields nothing.
func EmptyLabel(query string) string {
	if strings.TrimSpace(query) != "" {
		return "No matches"
	}
	return "No history"
}

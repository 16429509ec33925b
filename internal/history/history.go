package history

import (
	"log"
	"sort"
	"strings"
	"sync"
	"time"
)

// History is the request history backed by a Store. Every mutation re-reads
// the store first, so several running instances share one list.
type History struct {
	store Store
	max   int
	now   func() time.Time

	mu    sync.Mutex
	items []Item
}

// New creates a History over store keeping at most max entries.
func New(store Store, max int) *History {
	if max <= 0 || max > MaxItems {
		max = MaxItems
	}
	h := &History{store: store, max: max, now: time.Now}
	h.Reload()
	return h
}

// Store returns the underlying store.
func (h *History) Store() Store { return h.store }

// Items returns a copy of the cached list.
func (h *History) Items() []Item {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Item(nil), h.items...)
}

// Search filters the cached list by query.
func (h *History) Search(query string) []Item {
	return Search(h.Items(), query)
}

// Reload refreshes the cache from the store. Load failures yield an empty list.
func (h *History) Reload() []Item {
	items := h.load()
	h.mu.Lock()
	h.items = items
	h.mu.Unlock()
	return append([]Item(nil), items...)
}

func (h *History) load() []Item {
	items, err := h.store.Load()
	if err != nil {
		log.Printf("history: %v", err)
		return []Item{}
	}
	return items
}

// Add records method and url as the newest entry, stamped now. An empty url
// leaves the history untouched.
func (h *History) Add(method, url string) ([]Item, error) {
	return h.AddItem(NewItem(method, url, h.now()))
}

// AddItem records item as the newest entry, keeping its timestamp.
func (h *History) AddItem(item Item) ([]Item, error) {
	if strings.TrimSpace(item.URL) == "" {
		return h.Reload(), nil
	}
	item.Method = normalizeMethod(item.Method)
	if item.At == "" {
		item.At = FormatTime(h.now())
	}

	return h.update(func(items []Item) []Item {
		return Prepend(items, item, h.max)
	})
}

// Import merges items into the history, oldest first, so the most recent
// imported request ends up on top.
func (h *History) Import(items []Item) ([]Item, error) {
	sorted := make([]Item, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.URL) == "" {
			continue
		}
		it.Method = normalizeMethod(it.Method)
		sorted = append(sorted, it)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time().Before(sorted[j].Time())
	})

	return h.update(func(current []Item) []Item {
		for _, it := range sorted {
			current = Prepend(current, it, h.max)
		}
		return current
	})
}

// Remove deletes the entry with this method (any case) and exactly this url.
func (h *History) Remove(method, url string) ([]Item, error) {
	method = normalizeMethod(method)
	return h.update(func(items []Item) []Item {
		return Remove(items, method, url)
	})
}

// Clear deletes every entry.
func (h *History) Clear() error {
	_, err := h.update(func([]Item) []Item { return []Item{} })
	return err
}

func (h *History) update(fn func([]Item) []Item) ([]Item, error) {
	next := fn(h.load())

	h.mu.Lock()
	h.items = next
	h.mu.Unlock()

	if err := h.store.Save(next); err != nil {
		return append([]Item(nil), next...), err
	}
	return append([]Item(nil), next...), nil
}

// Close releases the store.
func (h *History) Close() error {
	return h.store.Close()
}

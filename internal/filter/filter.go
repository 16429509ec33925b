package filter

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/cnharrison/zirest/internal/history"
	"github.com/cnharrison/zirest/internal/httpclient"
	"github.com/cnharrison/zirest/internal/util"
)

// MethodAll disables the method filter.
const MethodAll = "all"

// FilterState holds the current history list filtering state
type FilterState struct {
	FilterText         string
	ActiveMethodFilter string
	OldestFirst        bool
}

// NewFilterState creates a new filter state
func NewFilterState() *FilterState {
	return &FilterState{ActiveMethodFilter: MethodAll}
}

// FilterItems returns the indices into items that pass every active filter,
// newest first unless OldestFirst is set.
func (f *FilterState) FilterItems(items []history.Item) []int {
	result := util.AllIndices(len(items))

	if f.ActiveMethodFilter != "" && f.ActiveMethodFilter != MethodAll {
		var byMethod []int
		for i, item := range items {
			if strings.EqualFold(item.Method, f.ActiveMethodFilter) {
				byMethod = append(byMethod, i)
			}
		}
		result = util.IntersectIndices(byMethod, result)
	}

	if query := strings.ToLower(strings.TrimSpace(f.FilterText)); query != "" {
		var byText []int
		for i, item := range items {
			if matchesTextSearch(item, query) {
				byText = append(byText, i)
			}
		}
		result = util.IntersectIndices(byText, result)
	}

	if f.OldestFirst {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i] > result[j]
		})
	}

	return result
}

// Reset resets all filters to their default state
func (f *FilterState) Reset() {
	f.FilterText = ""
	f.ActiveMethodFilter = MethodAll
	f.OldestFirst = false
}

// ToggleOldestFirst flips the list order
func (f *FilterState) ToggleOldestFirst() {
	f.OldestFirst = !f.OldestFirst
}

// SetTextFilter sets the text filter
func (f *FilterState) SetTextFilter(text string) {
	f.FilterText = text
}

// SetMethodFilter sets the method filter
func (f *FilterState) SetMethodFilter(method string) {
	f.ActiveMethodFilter = method
}

// CycleMethodFilter moves to the next entry of GetMethodFilters
func (f *FilterState) CycleMethodFilter() string {
	filters := GetMethodFilters()
	for i, m := range filters {
		if m == f.ActiveMethodFilter {
			f.ActiveMethodFilter = filters[(i+1)%len(filters)]
			return f.ActiveMethodFilter
		}
	}
	f.ActiveMethodFilter = MethodAll
	return f.ActiveMethodFilter
}

// GetMethodFilters returns available method filters
func GetMethodFilters() []string {
	return append([]string{MethodAll}, httpclient.Methods...)
}

// matchesTextSearch matches the method, the raw URL and its host, path and query.
func matchesTextSearch(item history.Item, searchText string) bool {
	if strings.Contains(strings.ToLower(item.Method), searchText) {
		return true
	}
	if strings.Contains(strings.ToLower(item.URL), searchText) {
		return true
	}

	if u, err := url.Parse(item.URL); err == nil {
		if q, err := url.QueryUnescape(u.RawQuery); err == nil && strings.Contains(strings.ToLower(q), searchText) {
			return true
		}
		if strings.Contains(strings.ToLower(u.Path), searchText) {
			return true
		}
	}

	return false
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^\w\-_.]`)
	repeatedUnderscores = regexp.MustCompile(`_+`)
)

// GenerateFilteredFilename creates a descriptive HAR filename based on current filters
func (f *FilterState) GenerateFilteredFilename(prefix string, now time.Time) string {
	timestamp := now.Format("20060102_150405")

	var filterParts []string
	if f.ActiveMethodFilter != "" && f.ActiveMethodFilter != MethodAll {
		filterParts = append(filterParts, strings.ToLower(f.ActiveMethodFilter))
	}
	if text := strings.TrimSpace(f.FilterText); text != "" {
		cleaned := unsafeFilenameChars.ReplaceAllString(text, "_")
		if len(cleaned) > 20 {
			cleaned = cleaned[:20]
		}
		filterParts = append(filterParts, "search_"+cleaned)
	}

	var filename string
	if len(filterParts) > 0 {
		filename = fmt.Sprintf("%s_filtered_%s_%s.har", prefix, strings.Join(filterParts, "_"), timestamp)
	} else {
		filename = fmt.Sprintf("%s_all_%s.har", prefix, timestamp)
	}

	return repeatedUnderscores.ReplaceAllString(filename, "_")
}

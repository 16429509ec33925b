// Package highlight classifies byte ranges of JSON-like text into display
// categories. It is a lexical scanner, not a parser: malformed input yields
// fewer ranges, never an error.
package highlight

import (
	"regexp"
	"sort"
	"unicode"
	"unicode/utf8"
)

// Category is the semantic class of a highlighted range.
type Category int

const (
	String Category = iota
	Key
	Number
	Boolean
	Null
	Punctuation
)

func (c Category) String() string {
	switch c {
	case String:
		return "string"
	case Key:
		return "key"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case Null:
		return "null"
	case Punctuation:
		return "punctuation"
	default:
		return "unknown"
	}
}

// Range is a half-open [Start, End) span of byte offsets.
type Range struct {
	Start    int
	End      int
	Category Category
}

// Text returns the slice of s covered by the range.
func (r Range) Text(s string) string {
	return s[r.Start:r.End]
}

// regexp.Regexp carries no per-match state, so sharing these is safe across
// goroutines and calls.
var (
	stringRe  = regexp.MustCompile(`"(?:\\.|[^"\\])*"`)
	numberRe  = regexp.MustCompile(`-?\b\d+(?:\.\d+)?(?:[eE][+-]?\d+)?\b`)
	booleanRe = regexp.MustCompile(`\btrue\b|\bfalse\b`)
	nullRe    = regexp.MustCompile(`\bnull\b`)
)

// Highlight scans text and returns its categorized ranges. A quoted string is
// a Key when the next non-whitespace character after it is a colon.
func Highlight(text string) []Range {
	strs := stringRe.FindAllStringIndex(text, -1)
	return scan(text, strs, func(start, end int) bool {
		return followedByColon(text, end)
	})
}

// scan runs every pass over text. strs must be the sorted, non-overlapping
// string spans; isKey decides Key versus String for each of them.
func scan(text string, strs [][]int, isKey func(start, end int) bool) []Range {
	ranges := make([]Range, 0, len(strs)*2)

	for _, m := range strs {
		cat := String
		if isKey(m[0], m[1]) {
			cat = Key
		}
		ranges = append(ranges, Range{Start: m[0], End: m[1], Category: cat})
	}

	words := []struct {
		re  *regexp.Regexp
		cat Category
	}{
		{numberRe, Number},
		{booleanRe, Boolean},
		{nullRe, Null},
	}
	for _, w := range words {
		for _, m := range w.re.FindAllStringIndex(text, -1) {
			if insideString(strs, m[0]) {
				continue
			}
			ranges = append(ranges, Range{Start: m[0], End: m[1], Category: w.cat})
		}
	}

	next := 0
	for i := 0; i < len(text); i++ {
		// Jump over the string span covering i, if any.
		for next < len(strs) && strs[next][1] <= i {
			next++
		}
		if next < len(strs) && strs[next][0] <= i {
			i = strs[next][1] - 1
			continue
		}
		switch text[i] {
		case '{', '}', '[', ']', ':', ',':
			ranges = append(ranges, Range{Start: i, End: i + 1, Category: Punctuation})
		}
	}

	return ranges
}

// insideString reports whether offset falls within one of the sorted spans.
func insideString(strs [][]int, offset int) bool {
	i := sort.Search(len(strs), func(i int) bool { return strs[i][1] > offset })
	return i < len(strs) && strs[i][0] <= offset
}

// followedByColon reports whether the first non-space rune at or after end
// is ':'. Space covers Unicode white space and the byte order mark.
func followedByColon(text string, end int) bool {
	for i := end; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case r == ':':
			return true
		case unicode.IsSpace(r) || r == '\uFEFF':
			i += size
		default:
			return false
		}
	}
	return false
}

// Within returns the ranges that contain offset.
func Within(ranges []Range, offset int) []Range {
	var out []Range
	for _, r := range ranges {
		if r.Start <= offset && offset < r.End {
			out = append(out, r)
		}
	}
	return out
}

// Count returns how many ranges have the given category.
func Count(ranges []Range, cat Category) int {
	n := 0
	for _, r := range ranges {
		if r.Category == cat {
			n++
		}
	}
	return n
}

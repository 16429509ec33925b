package format

import (
	"github.com/cnharrison/zirest/internal/config"
	"github.com/cnharrison/zirest/internal/highlight"
)

// Palette maps token categories to #rrggbb colours.
type Palette struct {
	Punctuation string
	Key         string
	String      string
	Number      string
	Boolean     string
	Null        string
	Error       string
	Comment     string
}

// DefaultPalette is the dark editor palette.
func DefaultPalette() Palette {
	return PaletteFromConfig(config.DefaultColors())
}

// PaletteFromConfig builds a palette from the highlight.colors section.
func PaletteFromConfig(c config.ColorsConfig) Palette {
	return Palette{
		Punctuation: c.Punctuation,
		Key:         c.Key,
		String:      c.String,
		Number:      c.Number,
		Boolean:     c.Boolean,
		Null:        c.Null,
		Error:       c.Error,
		Comment:     "#6A9955",
	}
}

// Color returns the colour for a highlight category.
func (p Palette) Color(c highlight.Category) string {
	switch c {
	case highlight.Key:
		return p.Key
	case highlight.String:
		return p.String
	case highlight.Number:
		return p.Number
	case highlight.Boolean:
		return p.Boolean
	case highlight.Null:
		return p.Null
	case highlight.Punctuation:
		return p.Punctuation
	}
	return ""
}

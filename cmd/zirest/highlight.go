package main

import (
	"fmt"
	"io"
	"os"

	apperrors "github.com/cnharrison/zirest/internal/errors"
	"github.com/cnharrison/zirest/internal/format"
)

// HighlightCmd colours JSON read from a file or stdin
type HighlightCmd struct {
	File       string `arg:"" optional:"" help:"JSON file to read. Reads stdin when omitted." type:"existingfile"`
	Tree       bool   `help:"Print a tree instead of highlighted text."`
	Depth      int    `help:"Expand the tree this many levels; 0 expands everything." default:"0"`
	Structural bool   `help:"Classify object keys with the JSON syntax tree."`
	NoColor    bool   `help:"Disable colours."`
}

func (c *HighlightCmd) Run(rc *runContext) error {
	var data []byte
	var err error
	if c.File == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(c.File)
	}
	if err != nil {
		return apperrors.NewInputError("cannot read input", err)
	}

	r := rc.renderer(c.NoColor)
	structural := c.Structural || rc.cfg.Highlight.StructuralKeys
	if c.Tree {
		out, err := renderBody(r, string(data), true, c.Depth, structural)
		if err != nil {
			return err
		}
		fmt.Fprint(rc.stdout, out)
		return nil
	}

	// Text that is not valid JSON is coloured as typed.
	text, _ := format.PrettyJSON(string(data))
	fmt.Fprint(rc.stdout, highlightText(r, text, structural))
	return nil
}

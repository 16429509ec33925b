package render

import (
	"fmt"
	"strings"

	"github.com/cnharrison/zirest/internal/jsontree"
)

// Tree draws root as an indented outline. Containers deeper than maxDepth
// are shown collapsed and their children are never built; maxDepth <= 0
// expands everything.
func (r *Renderer) Tree(root *jsontree.Node, maxDepth int) string {
	var b strings.Builder
	b.WriteString(r.nodeText(root))
	b.WriteString("\n")
	r.writeChildren(&b, root, "", 1, maxDepth)
	return b.String()
}

func (r *Renderer) writeChildren(b *strings.Builder, n *jsontree.Node, prefix string, depth, maxDepth int) {
	if n.IsLeaf() || (maxDepth > 0 && depth > maxDepth) {
		return
	}

	children := jsontree.Children(n)
	for i, child := range children {
		branch, indent := "├── ", "│   "
		if i == len(children)-1 {
			branch, indent = "└── ", "    "
		}
		b.WriteString(prefix)
		b.WriteString(r.Paint(branch, r.palette.Comment))
		b.WriteString(r.nodeText(child))
		b.WriteString("\n")
		r.writeChildren(b, child, prefix+indent, depth+1, maxDepth)
	}
}

func (r *Renderer) nodeText(n *jsontree.Node) string {
	summary := r.Paint(jsontree.Summary(n), r.kindColor(n.Kind()))
	if n.Kind().IsContainer() {
		summary += " " + r.Paint(fmt.Sprintf("(%d)", n.Len()), r.palette.Comment)
	}
	if n.Label() == "" {
		return summary
	}

	labelColor := r.palette.Key
	if strings.HasPrefix(n.Label(), "[") {
		labelColor = r.palette.Punctuation
	}
	return r.Paint(n.Label(), labelColor) + r.Paint(":", r.palette.Punctuation) + " " + summary
}

func (r *Renderer) kindColor(k jsontree.Kind) string {
	switch k {
	case jsontree.KindString:
		return r.palette.String
	case jsontree.KindNumber:
		return r.palette.Number
	case jsontree.KindBoolean:
		return r.palette.Boolean
	case jsontree.KindNull:
		return r.palette.Null
	case jsontree.KindArray, jsontree.KindObject:
		return r.palette.Punctuation
	}
	return ""
}

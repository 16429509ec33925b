package ui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/cnharrison/zirest/internal/format"
	"github.com/cnharrison/zirest/internal/jsontree"
)

// treeRef is stored as a tree node's reference. Children are attached to the
// widget the first time the node is expanded.
type treeRef struct {
	node     *jsontree.Node
	attached bool
}

// newTreeNode creates a collapsed widget node for n
func newTreeNode(n *jsontree.Node, palette format.Palette) *tview.TreeNode {
	text := jsontree.Text(n)
	if !n.IsLeaf() {
		text += " (" + strconv.Itoa(n.Len()) + ")"
	}

	node := tview.NewTreeNode(text).
		SetReference(&treeRef{node: n}).
		SetSelectable(true).
		SetColor(tcell.GetColor(kindColor(n.Kind(), palette))).
		SetExpanded(false)
	return node
}

func kindColor(kind jsontree.Kind, palette format.Palette) string {
	switch kind {
	case jsontree.KindString:
		return palette.String
	case jsontree.KindNumber:
		return palette.Number
	case jsontree.KindBoolean:
		return palette.Boolean
	case jsontree.KindNull:
		return palette.Null
	}
	return palette.Key
}

// expandTreeNode attaches the children of node's value, once
func expandTreeNode(node *tview.TreeNode, palette format.Palette) {
	ref, ok := node.GetReference().(*treeRef)
	if !ok || ref.attached || ref.node.IsLeaf() {
		return
	}
	for _, child := range jsontree.Children(ref.node) {
		node.AddChild(newTreeNode(child, palette))
	}
	ref.attached = true
}

// toggleTreeNode expands or collapses a container node on selection
func (app *Application) toggleTreeNode(node *tview.TreeNode) {
	ref, ok := node.GetReference().(*treeRef)
	if !ok || ref.node.IsLeaf() {
		return
	}
	if node.IsExpanded() {
		node.SetExpanded(false)
		return
	}
	expandTreeNode(node, app.formatter.Palette())
	node.SetExpanded(true)
}

// buildTree projects value into a widget tree whose root shows its first level
func buildTree(value any, palette format.Palette) *tview.TreeNode {
	root := newTreeNode(jsontree.Project(value), palette)
	expandTreeNode(root, palette)
	root.SetExpanded(true)
	return root
}

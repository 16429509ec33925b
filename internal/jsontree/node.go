// Package jsontree projects parsed JSON values into display nodes whose
// children are built only when first asked for.
package jsontree

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// Kind is the display class of a node's value.
type Kind int

const (
	KindNull Kind = iota
	KindArray
	KindObject
	KindString
	KindNumber
	KindBoolean
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	default:
		return "other"
	}
}

// IsContainer reports whether values of this kind can have children.
func (k Kind) IsContainer() bool {
	return k == KindArray || k == KindObject
}

// KindOf classifies v. The first matching rule wins: nil, array, object,
// string, number, boolean, then anything else.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case []any:
		return KindArray
	case *Object, map[string]any:
		return KindObject
	case string:
		return KindString
	case json.Number, float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return KindNumber
	case bool:
		return KindBoolean
	default:
		return KindOther
	}
}

// Node wraps one value of a parsed document. It holds a reference to the
// value, never a copy, and computes its children once on first request.
type Node struct {
	label string
	value any
	kind  Kind

	once     sync.Once
	children []*Node
}

// Project wraps a root value. The root has an empty label.
func Project(v any) *Node {
	return newNode("", v)
}

func newNode(label string, v any) *Node {
	return &Node{label: label, value: v, kind: KindOf(v)}
}

// Label is "[i]" for array members, the quoted key for object members and
// empty for the root.
func (n *Node) Label() string { return n.label }

// Value returns the wrapped value.
func (n *Node) Value() any { return n.value }

// Kind returns the node's kind, fixed at construction.
func (n *Node) Kind() Kind { return n.kind }

// IsLeaf reports whether the node can never have children.
func (n *Node) IsLeaf() bool { return !n.kind.IsContainer() }

// Len returns the number of direct children without building them.
func (n *Node) Len() int {
	switch v := n.value.(type) {
	case []any:
		return len(v)
	case *Object:
		return v.Len()
	case map[string]any:
		return len(v)
	}
	return 0
}

// Children returns the node's direct children in source order. The first call
// builds them; later calls return the same slice.
func (n *Node) Children() []*Node {
	n.once.Do(func() {
		n.children = expand(n.value)
	})
	return n.children
}

// Children is the free-function form of (*Node).Children.
func Children(n *Node) []*Node {
	return n.Children()
}

func expand(value any) []*Node {
	switch v := value.(type) {
	case []any:
		out := make([]*Node, len(v))
		for i, item := range v {
			out[i] = newNode("["+strconv.Itoa(i)+"]", item)
		}
		return out
	case *Object:
		members := v.Members()
		out := make([]*Node, len(members))
		for i, m := range members {
			out[i] = newNode(quoteKey(m.Key), m.Value)
		}
		return out
	case map[string]any:
		// Go maps are unordered, so keys are shown sorted.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]*Node, len(keys))
		for i, k := range keys {
			out[i] = newNode(quoteKey(k), v[k])
		}
		return out
	}
	return []*Node{}
}

func quoteKey(key string) string {
	return `"` + key + `"`
}

// Summary is the one-line text shown for a node: a glyph for containers and
// the literal for scalars.
func Summary(n *Node) string {
	switch n.kind {
	case KindArray:
		return "[ … ]"
	case KindObject:
		return "{ … }"
	case KindNull:
		return "null"
	case KindString:
		return strconv.Quote(n.value.(string))
	case KindNumber, KindBoolean:
		return fmt.Sprint(n.value)
	default:
		return fmt.Sprintf("%v", n.value)
	}
}

// Text is the label and summary joined the way tree rows display them.
func Text(n *Node) string {
	if n.label == "" {
		return Summary(n)
	}
	return n.label + ": " + Summary(n)
}

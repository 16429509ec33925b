package highlight

import (
	"log"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_json "github.com/tree-sitter/tree-sitter-json/bindings/go"
)

// HighlightStructural behaves like Highlight, except that a string is a Key
// only when it is the key of an object member in the parsed syntax tree.
// Strings that merely precede a colon elsewhere stay String. If the text
// cannot be parsed at all it falls back to the textual rule.
func HighlightStructural(text string) []Range {
	keys, ok := objectKeys([]byte(text))
	if !ok {
		return Highlight(text)
	}

	strs := stringRe.FindAllStringIndex(text, -1)
	return scan(text, strs, func(start, end int) bool {
		return keys[[2]int{start, end}]
	})
}

// objectKeys returns the byte spans of every pair key node.
func objectKeys(content []byte) (map[[2]int]bool, bool) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(tree_sitter.NewLanguage(tree_sitter_json.Language())); err != nil {
		log.Printf("highlight: cannot load JSON grammar: %v", err)
		return nil, false
	}

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, false
	}
	defer tree.Close()

	keys := make(map[[2]int]bool)
	stack := []*tree_sitter.Node{tree.RootNode()}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == nil {
			continue
		}

		if node.Kind() == "pair" {
			if key := node.ChildByFieldName("key"); key != nil {
				keys[[2]int{int(key.StartByte()), int(key.EndByte())}] = true
			}
		}

		for i := uint(0); i < node.NamedChildCount(); i++ {
			stack = append(stack, node.NamedChild(i))
		}
	}

	return keys, true
}

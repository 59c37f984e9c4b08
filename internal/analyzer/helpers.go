package analyzer

import sitter "github.com/smacker/go-tree-sitter"

// funcName extracts the name of a function definition node.
func funcName(node *sitter.Node, source []byte) string {
	nameNode := node.ChildByFieldName("name")
	if nameNode != nil {
		return nameNode.Content(source)
	}
	return "<anonymous>"
}

// startLine returns the 1-indexed source line of a node.
func startLine(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}

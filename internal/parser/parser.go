// Package parser wraps the tree-sitter Python grammar behind a small
// adapter: source text in, syntax tree or ParseError out.
package parser

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ParseError reports a file that could not be parsed. It is recoverable at
// the file level: callers skip the file and continue with the rest of the
// run.
type ParseError struct {
	Path string
	Line int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: syntax error", e.Path, e.Line)
}

// Parser converts Python source text into a syntax tree. A Parser is not
// safe for concurrent use; create one per goroutine.
type Parser struct {
	inner *sitter.Parser
}

func New() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Parser{inner: p}
}

// Parse returns the syntax tree for src, or a *ParseError when the tree
// contains error or missing nodes.
func (p *Parser) Parse(ctx context.Context, path string, src []byte) (*sitter.Tree, error) {
	tree, err := p.inner.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	root := tree.RootNode()
	if root.HasError() {
		return nil, &ParseError{Path: path, Line: firstErrorLine(root)}
	}
	return tree, nil
}

// firstErrorLine finds the 1-indexed line of the first error or missing node
// in a pre-order walk.
func firstErrorLine(node *sitter.Node) int {
	if node.Type() == "ERROR" || node.IsMissing() {
		return int(node.StartPoint().Row) + 1
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child.HasError() {
			return firstErrorLine(child)
		}
	}
	return int(node.StartPoint().Row) + 1
}

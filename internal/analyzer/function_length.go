package analyzer

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// maxFunctionLines is the largest function span (first line to last line,
// inclusive) that passes without a finding.
const maxFunctionLines = 50

// FunctionLength flags functions whose body span exceeds maxFunctionLines.
type FunctionLength struct{}

func (FunctionLength) ID() string         { return "MAINT_001" }
func (FunctionLength) Category() Category { return CategoryMaintainability }
func (FunctionLength) Severity() Severity { return SeverityMedium }
func (FunctionLength) Doc() string {
	return fmt.Sprintf("Function spans more than %d lines", maxFunctionLines)
}

func (r FunctionLength) Inspect(node *sitter.Node, rctx *Context) *Finding {
	if node.Type() != nodeFunctionDef {
		return nil
	}

	span := int(node.EndPoint().Row) - int(node.StartPoint().Row) + 1
	if span <= maxFunctionLines {
		return nil
	}

	msg := fmt.Sprintf("Function '%s' too long (%d lines)", funcName(node, rctx.Source), span)
	return report(r, rctx.Path, startLine(node), msg)
}

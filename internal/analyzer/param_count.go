package analyzer

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// maxParams is the largest parameter count that passes without a finding.
const maxParams = 5

// paramKinds are the node kinds inside a parameter list that each count as
// one parameter. Separators and annotations are not in the set.
var paramKinds = map[string]bool{
	"identifier":               true,
	"typed_parameter":          true,
	"default_parameter":        true,
	"typed_default_parameter":  true,
	"list_splat_pattern":       true,
	"dictionary_splat_pattern": true,
}

// ParamCount flags functions that declare more than maxParams parameters.
type ParamCount struct{}

func (ParamCount) ID() string         { return "MAINT_002" }
func (ParamCount) Category() Category { return CategoryMaintainability }
func (ParamCount) Severity() Severity { return SeverityMedium }
func (ParamCount) Doc() string {
	return fmt.Sprintf("Function declares more than %d parameters", maxParams)
}

func (r ParamCount) Inspect(node *sitter.Node, rctx *Context) *Finding {
	if node.Type() != nodeFunctionDef {
		return nil
	}
	params := node.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}

	count := 0
	for i := 0; i < int(params.NamedChildCount()); i++ {
		if paramKinds[params.NamedChild(i).Type()] {
			count++
		}
	}
	if count <= maxParams {
		return nil
	}

	msg := fmt.Sprintf("Function '%s' has too many parameters (%d)", funcName(node, rctx.Source), count)
	return report(r, rctx.Path, startLine(node), msg)
}

package analyzer

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// maxNestingDepth is the deepest lexical nesting that passes without a
// finding.
const maxNestingDepth = 4

// NestingDepth flags the block scope that crosses the nesting threshold.
// Only the crossing node (depth == maxNestingDepth+1) is reported; deeper
// descendants of an already-reported chain stay silent, so a single deep
// chain yields a single finding rather than one per level.
type NestingDepth struct{}

func (NestingDepth) ID() string         { return "SMELL_001" }
func (NestingDepth) Category() Category { return CategorySmell }
func (NestingDepth) Severity() Severity { return SeverityMedium }
func (NestingDepth) Doc() string {
	return fmt.Sprintf("Block nesting deeper than %d levels", maxNestingDepth)
}

func (r NestingDepth) Inspect(node *sitter.Node, rctx *Context) *Finding {
	if !scopeKinds[node.Type()] {
		return nil
	}
	if rctx.Depth != maxNestingDepth+1 {
		return nil
	}
	return report(r, rctx.Path, startLine(node), "Deep nesting detected")
}

package analyzer

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// deprecatedModules is the fixed deny-list of module names considered
// deprecated.
var deprecatedModules = map[string]bool{
	"imp":      true,
	"optparse": true,
}

// DeprecatedImport flags import statements that name a module on the
// deny-list. Both `import X` and `from X import ...` forms are covered; the
// finding carries the import statement's line.
type DeprecatedImport struct{}

func (DeprecatedImport) ID() string         { return "DEPR_001" }
func (DeprecatedImport) Category() Category { return CategoryDeprecated }
func (DeprecatedImport) Severity() Severity { return SeverityHigh }
func (DeprecatedImport) Doc() string        { return "Import of a deprecated module" }

func (r DeprecatedImport) Inspect(node *sitter.Node, rctx *Context) *Finding {
	switch node.Type() {
	case "import_statement":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			name := node.NamedChild(i)
			if name.Type() == "aliased_import" {
				name = name.ChildByFieldName("name")
			}
			if name == nil {
				continue
			}
			if mod := name.Content(rctx.Source); deprecatedModules[mod] {
				msg := fmt.Sprintf("Deprecated module '%s' used", mod)
				return report(r, rctx.Path, startLine(node), msg)
			}
		}
	case "import_from_statement":
		name := node.ChildByFieldName("module_name")
		if name == nil {
			return nil
		}
		if mod := name.Content(rctx.Source); deprecatedModules[mod] {
			msg := fmt.Sprintf("Deprecated module '%s' used", mod)
			return report(r, rctx.Path, startLine(node), msg)
		}
	}
	return nil
}

package analyzer

import (
	"log/slog"

	sitter "github.com/smacker/go-tree-sitter"
)

// nodeFunctionDef is the tree-sitter kind for a Python function definition.
const nodeFunctionDef = "function_definition"

// scopeKinds are the Python compound statements whose bodies introduce a new
// nested block scope for depth accounting.
var scopeKinds = map[string]bool{
	"if_statement":    true,
	"for_statement":   true,
	"while_statement": true,
	"try_statement":   true,
	"with_statement":  true,
	"match_statement": true,
	nodeFunctionDef:   true,
}

// Walker performs a single pre-order depth-first traversal of a parsed file,
// presenting every named node to every registered rule exactly once together
// with the traversal context at that point. File-scoped rules run once after
// the traversal finishes.
type Walker struct {
	registry *Registry
	logger   *slog.Logger
}

func NewWalker(registry *Registry, logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Walker{registry: registry, logger: logger}
}

// Walk traverses the tree rooted at root and appends findings to c in
// emission order.
func (w *Walker) Walk(root *sitter.Node, path string, src []byte, c *Collector) {
	rctx := Context{Path: path, Source: src}
	w.walk(root, rctx, c)

	for _, r := range w.registry.Rules() {
		fr, ok := r.(FileRule)
		if !ok {
			continue
		}
		if f := w.inspectFile(fr, path, src); f != nil {
			c.Add(*f)
		}
	}
}

func (w *Walker) walk(node *sitter.Node, rctx Context, c *Collector) {
	if scopeKinds[node.Type()] {
		rctx.Depth++
	}
	if node.Type() == nodeFunctionDef {
		rctx.Function = node
	}

	for _, r := range w.registry.Rules() {
		if f := w.inspect(r, node, &rctx); f != nil {
			c.Add(*f)
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		w.walk(node.NamedChild(i), rctx, c)
	}
}

// inspect runs a single rule against a single node. A panicking rule loses
// only this one inspection; the walk of the remaining tree continues so one
// rule's defect cannot suppress unrelated findings.
func (w *Walker) inspect(r Rule, node *sitter.Node, rctx *Context) (f *Finding) {
	defer func() {
		if rec := recover(); rec != nil {
			w.logger.Warn("rule panicked, skipping finding",
				"rule", r.ID(),
				"file", rctx.Path,
				"line", int(node.StartPoint().Row)+1,
				"panic", rec,
			)
			f = nil
		}
	}()
	return r.Inspect(node, rctx)
}

func (w *Walker) inspectFile(r FileRule, path string, src []byte) (f *Finding) {
	defer func() {
		if rec := recover(); rec != nil {
			w.logger.Warn("rule panicked, skipping finding",
				"rule", r.ID(),
				"file", path,
				"panic", rec,
			)
			f = nil
		}
	}()
	return r.InspectFile(path, src)
}

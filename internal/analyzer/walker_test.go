package analyzer

import (
	"reflect"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
)

// stubRule lets a test observe or control dispatch.
type stubRule struct {
	id      string
	inspect func(node *sitter.Node, rctx *Context) *Finding
}

func (s stubRule) ID() string         { return s.id }
func (s stubRule) Category() Category { return CategorySmell }
func (s stubRule) Severity() Severity { return SeverityLow }
func (s stubRule) Doc() string        { return "test stub" }
func (s stubRule) Inspect(node *sitter.Node, rctx *Context) *Finding {
	if s.inspect == nil {
		return nil
	}
	return s.inspect(node, rctx)
}

func TestRegistryDuplicateID(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(stubRule{id: "X_001"}); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := reg.Register(stubRule{id: "X_001"}); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestRegistryOrder(t *testing.T) {
	reg := NewRegistry()
	for _, id := range []string{"B_001", "A_001", "C_001"} {
		reg.MustRegister(stubRule{id: id})
	}
	var got []string
	for _, r := range reg.Rules() {
		got = append(got, r.ID())
	}
	want := []string{"B_001", "A_001", "C_001"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("registration order not preserved: got %v, want %v", got, want)
	}
}

// Every named node is presented to every rule exactly once.
func TestWalkerDispatchesEveryNamedNode(t *testing.T) {
	src := "def f(a):\n    if a:\n        return a\n"
	tree := parsePython(t, src)

	var named func(n *sitter.Node) int
	named = func(n *sitter.Node) int {
		total := 1
		for i := 0; i < int(n.NamedChildCount()); i++ {
			total += named(n.NamedChild(i))
		}
		return total
	}
	want := named(tree.RootNode())

	visits := 0
	reg := NewRegistry()
	reg.MustRegister(stubRule{id: "COUNT_001", inspect: func(*sitter.Node, *Context) *Finding {
		visits++
		return nil
	}})
	NewWalker(reg, nil).Walk(tree.RootNode(), "test.py", []byte(src), NewCollector())

	if visits != want {
		t.Errorf("expected %d inspections, got %d", want, visits)
	}
}

// The context carries the innermost enclosing function.
func TestWalkerTracksEnclosingFunction(t *testing.T) {
	src := "def outer():\n    def inner():\n        return 1\n"
	tree := parsePython(t, src)

	seen := map[string]bool{}
	reg := NewRegistry()
	reg.MustRegister(stubRule{id: "FN_001", inspect: func(node *sitter.Node, rctx *Context) *Finding {
		if node.Type() == "return_statement" {
			seen[funcName(rctx.Function, rctx.Source)] = true
		}
		return nil
	}})
	NewWalker(reg, nil).Walk(tree.RootNode(), "test.py", []byte(src), NewCollector())

	if !seen["inner"] || len(seen) != 1 {
		t.Errorf("expected return to be attributed to 'inner', got %v", seen)
	}
}

// A panicking rule loses only its own inspections; other rules still
// collect their findings.
func TestWalkerIsolatesPanickingRule(t *testing.T) {
	src := "import imp\n"
	reg := NewRegistry()
	reg.MustRegister(stubRule{id: "BAD_001", inspect: func(*sitter.Node, *Context) *Finding {
		panic("boom")
	}})
	reg.MustRegister(DeprecatedImport{})

	tree := parsePython(t, src)
	c := NewCollector()
	NewWalker(reg, nil).Walk(tree.RootNode(), "test.py", []byte(src), c)

	if got := findingsFor(c.Findings(), "DEPR_001"); len(got) != 1 {
		t.Errorf("expected the healthy rule to still fire, got %v", c.Findings())
	}
}

// Two walks over the same tree produce byte-identical findings.
func TestWalkDeterministic(t *testing.T) {
	src := `import imp

def f(a, b, c, d, e, g):
    if a:
        for x in b:
            while c:
                if d:
                    with open(e) as h:
                        pass
`
	first := runRules(t, src, DefaultRegistry().Rules()...)
	second := runRules(t, src, DefaultRegistry().Rules()...)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("walks differ:\n%v\n%v", first, second)
	}
	if len(first) == 0 {
		t.Fatal("expected findings from the fixture")
	}
}

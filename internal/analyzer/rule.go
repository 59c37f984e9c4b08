package analyzer

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Rule is a single-purpose detector. Inspect is called once for every named
// node in traversal order and returns at most one finding for that node.
// Rules must not mutate the node or retain the context.
type Rule interface {
	// ID is the unique rule identifier (e.g. "MAINT_001").
	ID() string
	Category() Category
	Severity() Severity
	// Doc is a one-line description used for rule listings and report
	// descriptors.
	Doc() string
	Inspect(node *sitter.Node, rctx *Context) *Finding
}

// FileRule is an optional extension for rules that fire once per file after
// the walk completes, from the raw source text rather than a node.
type FileRule interface {
	Rule
	InspectFile(path string, src []byte) *Finding
}

// Registry is an ordered, open collection of rules. Registration order is
// preserved and determines dispatch order at each node. The registry is
// read-only after startup and safe to share across concurrent walks.
type Registry struct {
	rules []Rule
	byID  map[string]Rule
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Rule)}
}

// Register appends a rule. Rule IDs must be unique.
func (r *Registry) Register(rule Rule) error {
	if _, dup := r.byID[rule.ID()]; dup {
		return fmt.Errorf("rule %q already registered", rule.ID())
	}
	r.rules = append(r.rules, rule)
	r.byID[rule.ID()] = rule
	return nil
}

// MustRegister is Register for startup wiring, where a duplicate ID is a
// programming error.
func (r *Registry) MustRegister(rule Rule) {
	if err := r.Register(rule); err != nil {
		panic(err)
	}
}

// Rules returns the registered rules in registration order.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Get retrieves a rule by ID.
func (r *Registry) Get(id string) (Rule, bool) {
	rule, ok := r.byID[id]
	return rule, ok
}

func (r *Registry) Len() int { return len(r.rules) }

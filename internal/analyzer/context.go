package analyzer

import sitter "github.com/smacker/go-tree-sitter"

// Context is the traversal state handed to rules at each visited node. The
// walker copies it per descent, so a rule sees the state exactly as it was
// when the node was reached and mutations never leak across subtrees.
type Context struct {
	// Path is the file being walked.
	Path string
	// Source is the raw file text; node contents are resolved against it.
	Source []byte
	// Depth is the number of lexically enclosing block scopes at this node,
	// counting the node itself when it introduces one. Module level is 0.
	// It is a running count across the whole file, never reset per function.
	Depth int
	// Function is the innermost enclosing function definition, or nil at
	// module level.
	Function *sitter.Node
}

package analyzer

import (
	"bytes"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// maxFileLines is the largest physical line count that passes without a
// finding. Blank and comment lines count: the rule measures file size, not
// logical code size.
const maxFileLines = 300

// FileSize flags files whose total physical line count exceeds maxFileLines.
// It fires once per file after the walk completes and always reports line 1.
type FileSize struct{}

func (FileSize) ID() string         { return "ORG_001" }
func (FileSize) Category() Category { return CategoryOrganization }
func (FileSize) Severity() Severity { return SeverityMedium }
func (FileSize) Doc() string {
	return fmt.Sprintf("File longer than %d lines", maxFileLines)
}

func (FileSize) Inspect(node *sitter.Node, rctx *Context) *Finding {
	return nil
}

func (r FileSize) InspectFile(path string, src []byte) *Finding {
	n := countLines(src)
	if n <= maxFileLines {
		return nil
	}
	return report(r, path, 1, fmt.Sprintf("File too large (%d lines)", n))
}

// countLines returns the number of physical lines in src. A trailing newline
// does not start an extra line.
func countLines(src []byte) int {
	if len(src) == 0 {
		return 0
	}
	n := bytes.Count(src, []byte("\n"))
	if src[len(src)-1] != '\n' {
		n++
	}
	return n
}

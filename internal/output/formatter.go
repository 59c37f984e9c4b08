// Package output renders analysis reports in the supported output formats
// (JSON, SARIF, Markdown, pretty terminal).
package output

import (
	"fmt"

	"github.com/pyvet/pyvet/internal/analyzer"
)

// AnalysisOutput is everything a formatter may draw on: the report itself
// plus the rule set that produced it.
type AnalysisOutput struct {
	Report      *analyzer.Report
	Rules       []analyzer.Rule
	ToolVersion string
}

// Formatter renders an AnalysisOutput into a byte slice in a specific format.
type Formatter interface {
	Format(result *AnalysisOutput) ([]byte, error)
}

// ResolveFormat determines the output format to use. If flagValue is
// non-empty, it is returned directly. Otherwise, "pretty" is returned for TTY
// output and "json" for non-TTY (piped) output.
func ResolveFormat(flagValue string, stdoutIsTTY bool) string {
	if flagValue != "" {
		return flagValue
	}
	if stdoutIsTTY {
		return "pretty"
	}
	return "json"
}

// NewFormatter returns a Formatter for the given format name.
// Supported formats: "json", "sarif", "markdown", "pretty".
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "json":
		return &JSONFormatter{}, nil
	case "sarif":
		return &SARIFFormatter{}, nil
	case "markdown":
		return &MarkdownFormatter{}, nil
	case "pretty":
		return &PrettyFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %q (supported: json, sarif, markdown, pretty)", format)
	}
}

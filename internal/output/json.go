package output

import (
	"encoding/json"
	"fmt"

	"github.com/pyvet/pyvet/internal/analyzer"
)

// JSONFormatter renders the findings as an indented JSON array. This is the
// canonical report format: one object per finding, in detection order, with
// an empty array when nothing was found.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(result *AnalysisOutput) ([]byte, error) {
	if result == nil || result.Report == nil {
		return nil, fmt.Errorf("json formatter: report is required")
	}
	findings := result.Report.Findings
	if findings == nil {
		findings = []analyzer.Finding{}
	}
	data, err := json.MarshalIndent(findings, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json formatter: %w", err)
	}
	return append(data, '\n'), nil
}

package output

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pyvet/pyvet/internal/sarif"
)

// SARIFFormatter renders the report as a SARIF 2.1.0 JSON document enriched
// with GitHub Code Scanning properties (security-severity and partial
// fingerprints) and invocation metadata.
type SARIFFormatter struct{}

func (f *SARIFFormatter) Format(result *AnalysisOutput) ([]byte, error) {
	if result == nil || result.Report == nil {
		return nil, fmt.Errorf("sarif formatter: report is required")
	}

	log := sarif.Assemble(result.Report.Findings, result.Rules, "pyvet", result.ToolVersion)
	for i := range log.Runs {
		enrichRun(&log.Runs[i])
	}

	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("sarif formatter: %w", err)
	}
	return append(data, '\n'), nil
}

func enrichRun(run *sarif.Run) {
	run.Tool.Driver.InformationURI = "https://github.com/pyvet/pyvet"

	wd, _ := os.Getwd()
	run.Invocations = []sarif.Invocation{{
		WorkingDirectory:    sarif.ArtifactLocation{URI: wd},
		ExecutionSuccessful: true,
	}}

	for j := range run.Results {
		enrichResult(&run.Results[j])
	}
}

// enrichResult adds a partial fingerprint and a security-severity score to a
// single SARIF result.
func enrichResult(r *sarif.Result) {
	if r.PartialFingerprints == nil {
		r.PartialFingerprints = make(map[string]string)
	}
	if r.Properties == nil {
		r.Properties = make(map[string]any)
	}

	uri := ""
	startLine := 0
	if len(r.Locations) > 0 {
		loc := r.Locations[0]
		uri = loc.PhysicalLocation.ArtifactLocation.URI
		startLine = loc.PhysicalLocation.Region.StartLine
	}

	fingerprintInput := fmt.Sprintf("%s|%s|%d|%s", r.RuleID, uri, startLine, r.Message.Text)
	hash := sha256.Sum256([]byte(fingerprintInput))
	r.PartialFingerprints["primaryLocationLineHash"] = fmt.Sprintf("%x", hash[:16])

	r.Properties["security-severity"] = securitySeverity(r.Level)
}

// securitySeverity maps SARIF levels to GitHub Code Scanning severity scores.
func securitySeverity(level string) float64 {
	switch level {
	case "error":
		return 8.0
	case "warning":
		return 5.0
	default:
		return 2.0
	}
}

package sarif

import (
	"github.com/pyvet/pyvet/internal/analyzer"
)

// levelFor maps finding severities onto SARIF result levels.
func levelFor(s analyzer.Severity) string {
	switch s {
	case analyzer.SeverityHigh:
		return "error"
	case analyzer.SeverityMedium:
		return "warning"
	case analyzer.SeverityLow:
		return "note"
	default:
		return "none"
	}
}

// Assemble converts an analysis report into a single-run SARIF log. Rule
// descriptors come from the registry in registration order; results keep the
// report's finding order.
func Assemble(findings []analyzer.Finding, rules []analyzer.Rule, toolName, toolVersion string) *Log {
	log := NewLog(toolName, toolVersion)
	run := &log.Runs[0]

	for _, r := range rules {
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, ReportingDescriptor{
			ID:               r.ID(),
			ShortDescription: Message{Text: r.Doc()},
			DefaultConfig:    &ReportingConfiguration{Level: levelFor(r.Severity())},
			Properties: map[string]any{
				"category": string(r.Category()),
			},
		})
	}

	for _, f := range findings {
		run.Results = append(run.Results, Result{
			RuleID:  f.RuleID,
			Level:   levelFor(f.Severity),
			Message: Message{Text: f.Message},
			Locations: []Location{{
				PhysicalLocation: PhysicalLocation{
					ArtifactLocation: ArtifactLocation{URI: f.File},
					Region:           Region{StartLine: f.Line},
				},
			}},
			Properties: map[string]any{
				"category": string(f.Category),
			},
		})
	}

	return log
}

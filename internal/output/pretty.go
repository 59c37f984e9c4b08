package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pyvet/pyvet/internal/analyzer"
)

// PrettyFormatter renders the report as colored, human-readable terminal
// output grouped by file, for interactive use.
type PrettyFormatter struct{}

var (
	prettyFileStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	prettyRuleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	prettySummaryStyle = lipgloss.NewStyle().Bold(true)
	prettySkipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)

	prettySeverityStyles = map[analyzer.Severity]lipgloss.Style{
		analyzer.SeverityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		analyzer.SeverityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		analyzer.SeverityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	}
)

func (f *PrettyFormatter) Format(result *AnalysisOutput) ([]byte, error) {
	if result == nil || result.Report == nil {
		return nil, fmt.Errorf("pretty formatter: report is required")
	}

	rep := result.Report
	var b strings.Builder

	byFile := make(map[string][]analyzer.Finding)
	var fileOrder []string
	for _, fd := range rep.Findings {
		if _, seen := byFile[fd.File]; !seen {
			fileOrder = append(fileOrder, fd.File)
		}
		byFile[fd.File] = append(byFile[fd.File], fd)
	}

	for _, path := range fileOrder {
		b.WriteString(prettyFileStyle.Render(path))
		b.WriteString("\n")
		for _, fd := range byFile[path] {
			sev := prettySeverityStyles[fd.Severity].Render(fmt.Sprintf("%-6s", fd.Severity))
			b.WriteString(fmt.Sprintf("  %4d  %s %s  %s\n",
				fd.Line, sev, prettyRuleStyle.Render(fd.RuleID), fd.Message))
		}
		b.WriteString("\n")
	}

	for _, s := range rep.Skipped {
		b.WriteString(prettySkipStyle.Render(fmt.Sprintf("skipped %s (syntax error near line %d)", s.Path, s.Line)))
		b.WriteString("\n")
	}
	if len(rep.Skipped) > 0 {
		b.WriteString("\n")
	}

	summary := fmt.Sprintf("%d finding(s) across %d file(s)", len(rep.Findings), rep.Analyzed)
	if len(rep.Findings) == 0 {
		summary = fmt.Sprintf("No findings in %d file(s)", rep.Analyzed)
	}
	b.WriteString(prettySummaryStyle.Render(summary))
	b.WriteString("\n")

	return []byte(b.String()), nil
}

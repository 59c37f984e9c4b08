package output

import (
	"fmt"
	"strings"

	"github.com/pyvet/pyvet/internal/analyzer"
)

// MarkdownFormatter renders the report as GitHub-Flavored Markdown suitable
// for PR comments. Uses collapsible <details> sections for findings and
// severity emojis for quick visual scanning.
type MarkdownFormatter struct{}

func severityEmoji(s analyzer.Severity) string {
	switch s {
	case analyzer.SeverityHigh:
		return ":red_circle:"
	case analyzer.SeverityMedium:
		return ":warning:"
	case analyzer.SeverityLow:
		return ":information_source:"
	default:
		return ":grey_question:"
	}
}

// Format produces GFM Markdown output grouped by file, preserving the
// report's finding order within each file.
func (f *MarkdownFormatter) Format(result *AnalysisOutput) ([]byte, error) {
	if result == nil || result.Report == nil {
		return nil, fmt.Errorf("markdown formatter: report is required")
	}

	rep := result.Report
	var b strings.Builder

	severityCounts := make(map[analyzer.Severity]int)
	byFile := make(map[string][]analyzer.Finding)
	var fileOrder []string
	for _, fd := range rep.Findings {
		severityCounts[fd.Severity]++
		if _, seen := byFile[fd.File]; !seen {
			fileOrder = append(fileOrder, fd.File)
		}
		byFile[fd.File] = append(byFile[fd.File], fd)
	}

	b.WriteString("## pyvet Analysis Summary\n\n")
	b.WriteString(fmt.Sprintf("**Findings:** %d | **Files analyzed:** %d | **Files skipped:** %d\n",
		len(rep.Findings), rep.Analyzed, len(rep.Skipped)))

	if len(rep.Findings) == 0 {
		b.WriteString("\nNo findings detected.\n")
	} else {
		b.WriteString("\n### Findings by Severity\n")
		b.WriteString("| Severity | Count |\n")
		b.WriteString("|----------|-------|\n")
		for _, sev := range []analyzer.Severity{analyzer.SeverityHigh, analyzer.SeverityMedium, analyzer.SeverityLow} {
			if count := severityCounts[sev]; count > 0 {
				b.WriteString(fmt.Sprintf("| %s | %d |\n", sev, count))
			}
		}

		b.WriteString("\n### Findings\n\n")
		for _, path := range fileOrder {
			findings := byFile[path]
			b.WriteString("<details>\n")
			b.WriteString(fmt.Sprintf("<summary><code>%s</code> — %d finding(s)</summary>\n\n", path, len(findings)))
			b.WriteString("| Line | Rule | Severity | Message |\n")
			b.WriteString("|------|------|----------|---------|\n")
			for _, fd := range findings {
				b.WriteString(fmt.Sprintf("| %d | %s | %s %s | %s |\n",
					fd.Line, fd.RuleID, severityEmoji(fd.Severity), fd.Severity, truncate(fd.Message, 80)))
			}
			b.WriteString("\n</details>\n\n")
		}
	}

	if len(rep.Skipped) > 0 {
		b.WriteString("### Skipped Files\n\n")
		for _, s := range rep.Skipped {
			b.WriteString(fmt.Sprintf("- `%s` (syntax error near line %d)\n", s.Path, s.Line))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n")
	b.WriteString("*Generated by [pyvet](https://github.com/pyvet/pyvet)*\n")

	return []byte(b.String()), nil
}

// truncate shortens a string to maxLen characters, appending "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

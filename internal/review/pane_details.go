package review

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/pyvet/pyvet/internal/analyzer"
)

var (
	detailsPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Padding(1)

	detailsHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("170"))

	severityHighStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Bold(true)

	severityMediumStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214")).
				Bold(true)

	severityLowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("75"))

	confirmedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)

	dismissedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Bold(true)
)

func severityStyle(s analyzer.Severity) lipgloss.Style {
	switch s {
	case analyzer.SeverityHigh:
		return severityHighStyle
	case analyzer.SeverityMedium:
		return severityMediumStyle
	default:
		return severityLowStyle
	}
}

// renderDetailsPane renders the current finding's details with markdown
// formatting.
func (m Model) renderDetailsPane(width, height int) string {
	var b strings.Builder

	b.WriteString(detailsHeaderStyle.Render("Details"))
	b.WriteString("\n\n")

	filtered := m.filteredFindings()
	if len(filtered) == 0 {
		b.WriteString("No findings to display")
	} else if m.currentFinding >= len(filtered) {
		b.WriteString("Invalid finding index")
	} else {
		finding := filtered[m.currentFinding]

		b.WriteString(fmt.Sprintf("**Rule:** %s  ", finding.RuleID))
		b.WriteString(severityStyle(finding.Severity).Render(string(finding.Severity)))
		b.WriteString("\n\n")

		b.WriteString(fmt.Sprintf("**Category:** %s\n\n", finding.Category))

		switch m.triaged[m.findingID(m.currentFinding)] {
		case "confirmed":
			b.WriteString(confirmedStyle.Render("✓ Confirmed"))
			b.WriteString("\n\n")
		case "dismissed":
			b.WriteString(dismissedStyle.Render("✗ Dismissed"))
			b.WriteString("\n\n")
		}

		if finding.Message != "" {
			b.WriteString("**Message:**\n")
			b.WriteString(finding.Message)
			b.WriteString("\n\n")
		}

		b.WriteString("**Location:**\n")
		b.WriteString(fmt.Sprintf("%s:%d", finding.File, finding.Line))

		if comment := m.comments[m.findingID(m.currentFinding)]; comment != "" {
			b.WriteString("\n\n**Comment:**\n")
			b.WriteString(comment)
		}
	}

	content := b.String()
	rendered, err := renderMarkdown(content, width-4)
	if err != nil {
		rendered = content
	}

	paneStyle := detailsPaneStyle
	if m.activePane == PaneDetails {
		paneStyle = detailsPaneStyle.BorderForeground(lipgloss.Color("170"))
	}

	return paneStyle.
		Width(width - 2).
		Height(height - 2).
		Render(rendered)
}

// renderMarkdown renders markdown text using glamour.
func renderMarkdown(text string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	out, err := r.Render(text)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(out), nil
}

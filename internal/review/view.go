package review

import (
	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	paneWidth := m.width / 3
	paneHeight := m.height - 2

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderFilesPane(paneWidth, paneHeight),
		m.renderCodePane(paneWidth, paneHeight),
		m.renderDetailsPane(m.width-2*paneWidth, paneHeight),
	)

	statusLine := helpStyle.Render("n/p finding · c confirm · d dismiss · i comment · h/m/a filter · tab pane · q quit")
	if m.commenting {
		statusLine = "Comment: " + m.commentInput.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, panes, statusLine)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

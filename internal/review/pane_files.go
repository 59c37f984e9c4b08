package review

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	filePaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1)

	fileItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedFileStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")).
				Bold(true).
				PaddingLeft(1)

	fileCountStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// renderFilesPane renders the file list with per-file finding counts.
func (m Model) renderFilesPane(width, height int) string {
	var b strings.Builder

	files := m.fileList()

	b.WriteString(lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("170")).
		Render("Files"))
	b.WriteString("\n\n")

	grouped := m.filteredFiles()
	for i, file := range files {
		count := len(grouped[file])
		indicator := "  "
		style := fileItemStyle

		if i == m.currentFile {
			indicator = "▸ "
			style = selectedFileStyle
		}

		line := fmt.Sprintf("%s%s %s",
			indicator,
			file,
			fileCountStyle.Render(fmt.Sprintf("(%d)", count)))

		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	paneStyle := filePaneStyle
	if m.activePane == PaneFiles {
		paneStyle = filePaneStyle.BorderForeground(lipgloss.Color("170"))
	}

	return paneStyle.
		Width(width - 2).
		Height(height - 2).
		Render(b.String())
}

// fileList returns the files with findings under the current filter, sorted.
func (m *Model) fileList() []string {
	grouped := m.filteredFiles()
	files := make([]string, 0, len(grouped))
	for file := range grouped {
		files = append(files, file)
	}
	sort.Strings(files)
	return files
}

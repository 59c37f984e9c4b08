package review

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	codePaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1)

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(4).
			Align(lipgloss.Right)

	highlightedLineStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("236"))

	codeHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))
)

// contextLines is how many lines to show around the finding.
const contextLines = 5

// renderCodePane renders the source excerpt around the current finding with
// syntax highlighting.
func (m Model) renderCodePane(width, height int) string {
	var b strings.Builder

	b.WriteString(codeHeaderStyle.Render("Code"))
	b.WriteString("\n\n")

	filtered := m.filteredFindings()
	if len(filtered) == 0 {
		b.WriteString("No findings to display")
	} else if m.currentFinding >= len(filtered) {
		b.WriteString("Invalid finding index")
	} else {
		finding := filtered[m.currentFinding]

		fileInfo := fmt.Sprintf("%s:%d", filepath.Base(finding.File), finding.Line)
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render(fileInfo))
		b.WriteString("\n\n")

		b.WriteString(m.readCodeWithContext(finding.File, finding.Line))
	}

	paneStyle := codePaneStyle
	if m.activePane == PaneCode {
		paneStyle = codePaneStyle.BorderForeground(lipgloss.Color("170"))
	}

	return paneStyle.
		Width(width - 2).
		Height(height - 2).
		Render(b.String())
}

// readCodeWithContext reads a file and returns highlighted lines around the
// target line.
func (m *Model) readCodeWithContext(filePath string, targetLine int) string {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Sprintf("Error reading file: %v", err)
	}
	defer file.Close()

	lexer := lexers.Match(filePath)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Sprintf("Error scanning file: %v", err)
	}

	startLine := targetLine - contextLines
	if startLine < 1 {
		startLine = 1
	}
	endLine := targetLine + contextLines
	if endLine > len(lines) {
		endLine = len(lines)
	}

	var b strings.Builder
	for i := startLine; i <= endLine; i++ {
		lineNum := lineNumberStyle.Render(fmt.Sprintf("%d", i))
		lineContent := ""

		if i <= len(lines) {
			highlighted, err := highlightLine(lines[i-1], lexer)
			if err != nil {
				lineContent = lines[i-1]
			} else {
				lineContent = highlighted
			}
		}

		if i == targetLine {
			lineContent = highlightedLineStyle.Render(lineContent)
			lineNum = highlightedLineStyle.Render(lineNum)
		}

		b.WriteString(fmt.Sprintf("%s │ %s\n", lineNum, lineContent))
	}

	return b.String()
}

// highlightLine applies syntax highlighting to a single line of code.
func highlightLine(line string, lexer chroma.Lexer) (string, error) {
	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	formatter := formatters.TTY16m
	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	if err := formatter.Format(&b, style, iterator); err != nil {
		return "", err
	}

	return strings.TrimSuffix(b.String(), "\n"), nil
}

package review

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.commenting {
			switch msg.String() {
			case "enter":
				if id := m.findingID(m.currentFinding); id != "" {
					m.comments[id] = m.commentInput.Value()
				}
				m.commenting = false
				m.commentInput.Blur()
				return m, nil
			case "esc":
				m.commenting = false
				m.commentInput.Blur()
				return m, nil
			default:
				var cmd tea.Cmd
				m.commentInput, cmd = m.commentInput.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "q", "ctrl+c":
			if err := m.saveState(); err != nil {
				slog.Warn("failed to save review state", "err", err)
			}
			return m, tea.Quit

		case "n": // next finding
			filtered := m.filteredFindings()
			if len(filtered) > 0 {
				m.currentFinding = (m.currentFinding + 1) % len(filtered)
			}

		case "p": // previous finding
			filtered := m.filteredFindings()
			if len(filtered) > 0 {
				m.currentFinding--
				if m.currentFinding < 0 {
					m.currentFinding = len(filtered) - 1
				}
			}

		case "c": // confirm finding
			if id := m.findingID(m.currentFinding); id != "" {
				m.triaged[id] = "confirmed"
			}

		case "d": // dismiss finding
			if id := m.findingID(m.currentFinding); id != "" {
				m.triaged[id] = "dismissed"
			}

		case "i": // annotate finding
			if id := m.findingID(m.currentFinding); id != "" {
				m.commenting = true
				m.commentInput.SetValue(m.comments[id])
				m.commentInput.Focus()
				return m, textinput.Blink
			}

		case "tab":
			m.activePane = (m.activePane + 1) % 3

		case "h": // filter: HIGH only
			m.filter = FilterHigh
			m.currentFinding = 0

		case "m": // filter: MEDIUM and up
			m.filter = FilterMediumUp
			m.currentFinding = 0

		case "a": // filter: all
			m.filter = FilterAll
			m.currentFinding = 0
		}
	}

	return m, nil
}

// findingID identifies a finding within the current filtered view.
func (m *Model) findingID(idx int) string {
	filtered := m.filteredFindings()
	if idx < 0 || idx >= len(filtered) {
		return ""
	}
	f := filtered[idx]
	return fmt.Sprintf("%s:%s:%d", f.RuleID, f.File, f.Line)
}

// saveState persists the triage decisions under the user's state dir.
func (m *Model) saveState() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting home dir: %w", err)
	}

	stateDir := filepath.Join(homeDir, ".pyvet", "review-state")
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}

	id := m.runID
	if id == "" {
		id = "review-session"
	}
	return SaveState(m, id, filepath.Join(stateDir, id+".json"))
}

package review

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestUpdateNextPrevFinding(t *testing.T) {
	m := *NewModel("run-1", testFindings())

	next, _ := m.Update(keyMsg("n"))
	m = next.(Model)
	if m.currentFinding != 1 {
		t.Errorf("expected finding 1 after 'n', got %d", m.currentFinding)
	}

	prev, _ := m.Update(keyMsg("p"))
	m = prev.(Model)
	if m.currentFinding != 0 {
		t.Errorf("expected finding 0 after 'p', got %d", m.currentFinding)
	}

	// Wraps around backwards.
	prev, _ = m.Update(keyMsg("p"))
	m = prev.(Model)
	if m.currentFinding != 2 {
		t.Errorf("expected wrap to last finding, got %d", m.currentFinding)
	}
}

func TestUpdateTriage(t *testing.T) {
	m := *NewModel("run-1", testFindings())

	updated, _ := m.Update(keyMsg("c"))
	m = updated.(Model)
	if m.triaged["DEPR_001:a.py:1"] != "confirmed" {
		t.Errorf("expected first finding confirmed, got %v", m.triaged)
	}

	updated, _ = m.Update(keyMsg("d"))
	m = updated.(Model)
	if m.triaged["DEPR_001:a.py:1"] != "dismissed" {
		t.Errorf("expected dismissal to replace confirmation, got %v", m.triaged)
	}
}

func TestUpdateFilterResetsPosition(t *testing.T) {
	m := *NewModel("run-1", testFindings())
	m.currentFinding = 2

	updated, _ := m.Update(keyMsg("h"))
	m = updated.(Model)
	if m.filter != FilterHigh || m.currentFinding != 0 {
		t.Errorf("expected HIGH filter with reset position, got filter=%d idx=%d", m.filter, m.currentFinding)
	}
}

func TestUpdatePaneCycle(t *testing.T) {
	m := *NewModel("run-1", testFindings())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if m.activePane != PaneCode {
		t.Errorf("expected code pane, got %d", m.activePane)
	}
}

func TestUpdateWindowSize(t *testing.T) {
	m := *NewModel("run-1", testFindings())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)
	if m.width != 120 || m.height != 40 {
		t.Errorf("expected size to be stored, got %dx%d", m.width, m.height)
	}
}

func TestUpdateCommentFlow(t *testing.T) {
	m := *NewModel("run-1", testFindings())

	// 'i' opens the comment input; keys now feed the input, not the triage
	// bindings.
	updated, _ := m.Update(keyMsg("i"))
	m = updated.(Model)
	if !m.commenting {
		t.Fatal("expected comment mode after 'i'")
	}

	for _, r := range "needs fix" {
		updated, _ = m.Update(keyMsg(string(r)))
		m = updated.(Model)
	}
	if len(m.triaged) != 0 {
		t.Errorf("typing in comment mode must not triage, got %v", m.triaged)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if m.commenting {
		t.Error("expected comment mode to end on enter")
	}
	if m.comments["DEPR_001:a.py:1"] != "needs fix" {
		t.Errorf("comment not saved, got %v", m.comments)
	}
}

func TestUpdateCommentCancel(t *testing.T) {
	m := *NewModel("run-1", testFindings())
	m.comments["DEPR_001:a.py:1"] = "keep me"

	updated, _ := m.Update(keyMsg("i"))
	m = updated.(Model)
	updated, _ = m.Update(keyMsg("x"))
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	if m.commenting {
		t.Error("expected comment mode to end on esc")
	}
	if m.comments["DEPR_001:a.py:1"] != "keep me" {
		t.Errorf("esc must not overwrite the comment, got %v", m.comments)
	}
}

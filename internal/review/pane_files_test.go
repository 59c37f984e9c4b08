package review

import (
	"strings"
	"testing"
)

func TestRenderFilesPane(t *testing.T) {
	m := *NewModel("run-1", testFindings())
	out := m.renderFilesPane(40, 20)

	if !strings.Contains(out, "a.py") || !strings.Contains(out, "b.py") {
		t.Errorf("expected both files in pane:\n%s", out)
	}
	if !strings.Contains(out, "(2)") {
		t.Errorf("expected finding count for a.py:\n%s", out)
	}
}

func TestRenderCodePaneMissingFile(t *testing.T) {
	m := *NewModel("run-1", testFindings())
	out := m.renderCodePane(60, 20)

	// The fixture paths do not exist on disk; the pane must degrade, not
	// panic.
	if !strings.Contains(out, "Error reading file") {
		t.Errorf("expected read error message:\n%s", out)
	}
}

func TestRenderDetailsPane(t *testing.T) {
	m := *NewModel("run-1", testFindings())
	out := m.renderDetailsPane(60, 20)

	if !strings.Contains(out, "DEPR_001") {
		t.Errorf("expected rule ID in details pane:\n%s", out)
	}
}

func TestRenderPanesEmptyModel(t *testing.T) {
	m := *NewModel("run-1", nil)

	for _, out := range []string{
		m.renderFilesPane(40, 20),
		m.renderCodePane(40, 20),
		m.renderDetailsPane(40, 20),
	} {
		if out == "" {
			t.Error("expected non-empty pane output for empty model")
		}
	}
}

package review

import (
	"testing"

	"github.com/pyvet/pyvet/internal/analyzer"
)

func testFindings() []analyzer.Finding {
	return []analyzer.Finding{
		{File: "a.py", RuleID: "DEPR_001", Category: analyzer.CategoryDeprecated, Severity: analyzer.SeverityHigh, Message: "Deprecated module 'imp' used", Line: 1},
		{File: "a.py", RuleID: "MAINT_001", Category: analyzer.CategoryMaintainability, Severity: analyzer.SeverityMedium, Message: "Function 'f' too long (60 lines)", Line: 10},
		{File: "b.py", RuleID: "SMELL_001", Category: analyzer.CategorySmell, Severity: analyzer.SeverityMedium, Message: "Deep nesting detected", Line: 22},
	}
}

func TestNewModel(t *testing.T) {
	m := NewModel("run-1", testFindings())

	if len(m.findings) != 3 {
		t.Errorf("expected 3 findings, got %d", len(m.findings))
	}
	if len(m.files) != 2 {
		t.Errorf("expected 2 files, got %d", len(m.files))
	}
	if len(m.files["a.py"]) != 2 {
		t.Errorf("expected 2 findings for a.py, got %d", len(m.files["a.py"]))
	}
	if m.activePane != PaneFiles {
		t.Errorf("expected files pane to start active")
	}
	if m.filter != FilterAll {
		t.Errorf("expected no filter initially")
	}
}

func TestNewModelEmpty(t *testing.T) {
	m := NewModel("run-2", nil)
	if len(m.findings) != 0 || len(m.files) != 0 {
		t.Errorf("expected an empty model, got %+v", m)
	}
}

func TestFileList(t *testing.T) {
	m := NewModel("run-1", testFindings())
	files := m.fileList()
	if len(files) != 2 || files[0] != "a.py" || files[1] != "b.py" {
		t.Errorf("expected sorted file list, got %v", files)
	}
}

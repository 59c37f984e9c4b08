// Package review is the interactive terminal UI for walking through a
// report's findings file by file.
package review

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/pyvet/pyvet/internal/analyzer"
)

// Pane represents which pane is currently active
type Pane int

const (
	PaneFiles Pane = iota
	PaneCode
	PaneDetails
)

// Filter represents the severity filter
type Filter int

const (
	FilterAll Filter = iota
	FilterHigh
	FilterMediumUp
)

// Model is the bubbletea model for the review TUI
type Model struct {
	runID    string
	findings []analyzer.Finding
	files    map[string][]analyzer.Finding

	currentFile    int
	currentFinding int
	activePane     Pane
	filter         Filter

	triaged  map[string]string // finding ID -> "confirmed" or "dismissed"
	comments map[string]string

	commenting   bool
	commentInput textinput.Model

	width  int
	height int
}

// NewModel creates a review model over a report's findings.
func NewModel(runID string, findings []analyzer.Finding) *Model {
	m := &Model{
		runID:      runID,
		findings:   findings,
		files:      make(map[string][]analyzer.Finding),
		activePane: PaneFiles,
		filter:     FilterAll,
		triaged:    make(map[string]string),
		comments:   make(map[string]string),
	}

	for _, f := range findings {
		m.files[f.File] = append(m.files[f.File], f)
	}

	ti := textinput.New()
	ti.Placeholder = "comment"
	ti.CharLimit = 200
	m.commentInput = ti

	return m
}

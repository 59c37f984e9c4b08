// Package store persists analysis runs: a filesystem store for report
// artifacts and a SQLite history for querying past runs.
package store

import (
	"context"
	"time"

	"github.com/pyvet/pyvet/internal/analyzer"
)

// RunMeta summarizes one stored analysis run.
type RunMeta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Target    string    `json:"target"`
	Analyzed  int       `json:"analyzed"`
	Skipped   []string  `json:"skipped,omitempty"`
	Findings  int       `json:"findings"`
}

// Verdict is a gate decision over a stored run.
type Verdict struct {
	Decision         string             `json:"decision"`
	Reason           string             `json:"reason"`
	RelevantFindings []analyzer.Finding `json:"relevant_findings,omitempty"`
	Metadata         map[string]any     `json:"metadata,omitempty"`
}

// Store is the artifact store for analysis runs. WriteRun assigns and
// returns the run ID; all other operations address runs by that ID.
type Store interface {
	WriteRun(ctx context.Context, target string, rep *analyzer.Report) (string, error)
	ReadFindings(ctx context.Context, id string) ([]analyzer.Finding, error)
	ReadMeta(ctx context.Context, id string) (*RunMeta, error)
	WriteVerdict(ctx context.Context, id string, verdict *Verdict) error
	ReadVerdict(ctx context.Context, id string) (*Verdict, error)
	List(ctx context.Context) ([]string, error)
}

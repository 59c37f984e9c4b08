package review

import (
	"encoding/json"
	"os"
	"time"
)

// State is the persisted triage state for one run.
type State struct {
	RunID      string                 `json:"run_id"`
	ReviewedAt string                 `json:"reviewed_at"`
	Reviewer   string                 `json:"reviewer"`
	Findings   map[string]TriageEntry `json:"findings"`
}

// TriageEntry is the saved decision for a single finding.
type TriageEntry struct {
	Status  string `json:"status"` // "confirmed" or "dismissed"
	Comment string `json:"comment"`
}

// SaveState writes the model's triage decisions to a JSON file.
func SaveState(model *Model, runID string, filePath string) error {
	state := State{
		RunID:      runID,
		ReviewedAt: time.Now().UTC().Format(time.RFC3339),
		Reviewer:   reviewerName(),
		Findings:   make(map[string]TriageEntry),
	}

	for findingID, status := range model.triaged {
		state.Findings[findingID] = TriageEntry{
			Status:  status,
			Comment: model.comments[findingID],
		}
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filePath, data, 0600)
}

// LoadState loads triage state from a JSON file.
func LoadState(filePath string) (*State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}

	return &state, nil
}

func reviewerName() string {
	return os.Getenv("USER") + "@localhost"
}

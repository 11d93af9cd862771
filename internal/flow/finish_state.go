package flow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FinishState records which steps of a multi-step finish have completed, so
// an interrupted finish can resume deterministically instead of inferring
// progress from engine state alone.
type FinishState struct {
	Branch        string   `json:"branch"`
	Category      string   `json:"category"`
	MergedTargets []string `json:"mergedTargets,omitempty"`
	Tagged        bool     `json:"tagged,omitempty"`
}

// finishStatePath returns the marker file location under .git
func finishStatePath(repoRoot string) string {
	return filepath.Join(repoRoot, ".git", "gflow", "finish.json")
}

// LoadFinishState reads the finish-progress marker. A missing marker returns
// nil with no error.
func LoadFinishState(repoRoot string) (*FinishState, error) {
	data, err := os.ReadFile(finishStatePath(repoRoot))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read finish state: %w", err)
	}

	var state FinishState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse finish state: %w", err)
	}
	return &state, nil
}

// Save writes the marker atomically enough for a single-process workflow.
func (s *FinishState) Save(repoRoot string) error {
	path := finishStatePath(repoRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal finish state: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// ClearFinishState removes the marker. Clearing an absent marker is not an
// error.
func ClearFinishState(repoRoot string) error {
	err := os.Remove(finishStatePath(repoRoot))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear finish state: %w", err)
	}
	return nil
}

// HasMerged reports whether the given target already received its merge.
func (s *FinishState) HasMerged(target string) bool {
	for _, merged := range s.MergedTargets {
		if merged == target {
			return true
		}
	}
	return false
}

// MarkMerged records a completed merge target.
func (s *FinishState) MarkMerged(target string) {
	if !s.HasMerged(target) {
		s.MergedTargets = append(s.MergedTargets, target)
	}
}

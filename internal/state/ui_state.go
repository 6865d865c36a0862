package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jothom/inquiry/internal/logger"
)

const fileName = "ui-state.json"

// UIState holds UI preferences that carry across wizard runs.
type UIState struct {
	Picker PickerState `json:"picker"`
}

// PickerState remembers where the attachment picker was last browsing.
type PickerState struct {
	Dir string `json:"dir,omitempty"`
}

// DefaultUIState returns the state used when nothing has been saved.
func DefaultUIState() *UIState {
	return &UIState{}
}

// Load reads the UI state from <dataDir>/ui-state.json.
// Returns default state if the file doesn't exist or on error.
func Load(dataDir string) *UIState {
	path := filepath.Join(dataDir, fileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultUIState()
	}
	if err != nil {
		logger.Warn("Failed to read UI state file: %v", err)
		return DefaultUIState()
	}

	var state UIState
	if err := json.Unmarshal(data, &state); err != nil {
		logger.Warn("Failed to parse UI state JSON: %v", err)
		return DefaultUIState()
	}

	// A remembered directory that has since gone away is dropped.
	if state.Picker.Dir != "" {
		if info, err := os.Stat(state.Picker.Dir); err != nil || !info.IsDir() {
			state.Picker.Dir = ""
		}
	}
	return &state
}

// Save writes the UI state to <dataDir>/ui-state.json.
// Creates the data directory if it doesn't exist.
func Save(dataDir string, state *UIState) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dataDir, fileName)

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling UI state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing UI state file: %w", err)
	}

	logger.Debug("UI state saved to %s", path)
	return nil
}

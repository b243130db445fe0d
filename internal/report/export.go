package report

import (
	"encoding/json"
	"fmt"
	"os"

	"securiwatch/internal/types"
)

// WriteJSON saves a collected batch to path as an indented JSON array so
// the structured records can be inspected or fed to other tooling
func WriteJSON(path string, events []types.SecurityEvent) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open export file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(events); err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}

	return nil
}

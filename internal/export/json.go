// Package export writes archived history to files for use outside the app.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/fitlog/internal/store"
)

type jsonExport struct {
	ExportedAt string             `json:"exported_at"`
	Days       int                `json:"days"`
	History    []store.DayRecords `json:"history"`
}

// ToJSON writes the day range as pretty-printed JSON.
func ToJSON(days []store.DayRecords, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Days:       len(days),
		History:    days,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

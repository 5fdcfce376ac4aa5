// Package backup implements the export/import collaborator: the whole
// aggregate serialized to one JSON document, delivered as a downloadable
// backup file and accepted back after a minimal shape check.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"techfab-billing/internal/core"
)

// ErrInvalidFormat rejects an import payload missing the required
// top-level keys. The current state stays untouched.
var ErrInvalidFormat = errors.New("invalid backup file format")

// Export serializes the aggregate. Round-trip contract:
// Import(Export(state)) reproduces state field for field.
func Export(state core.AppState) ([]byte, error) {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return data, nil
}

// Import parses a backup payload. The payload must at minimum carry
// "documents", a "customers" array and "settings" before it is accepted;
// anything else is rejected as ErrInvalidFormat without touching state.
func Import(data []byte) (core.AppState, error) {
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(data, &shape); err != nil {
		return core.AppState{}, ErrInvalidFormat
	}
	if _, ok := shape["documents"]; !ok {
		return core.AppState{}, ErrInvalidFormat
	}
	if _, ok := shape["settings"]; !ok {
		return core.AppState{}, ErrInvalidFormat
	}
	customersRaw, ok := shape["customers"]
	if !ok {
		return core.AppState{}, ErrInvalidFormat
	}
	var customers []json.RawMessage
	if err := json.Unmarshal(customersRaw, &customers); err != nil {
		return core.AppState{}, ErrInvalidFormat
	}

	var state core.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return core.AppState{}, ErrInvalidFormat
	}
	state.Normalize()
	return state, nil
}

// FileName returns the conventional backup file name for the given day,
// e.g. "techfab_backup_2025-03-01.json".
func FileName(now time.Time) string {
	return "techfab_backup_" + now.Format("2006-01-02") + ".json"
}

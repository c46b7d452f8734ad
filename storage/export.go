package storage

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/Drifter-Supremo/calorie-hound/models"
)

// ErrBadFormat rejects an import document missing any required
// top-level key (version, userSettings, mealLogs).
var ErrBadFormat = errors.New("invalid snapshot format")

// ImportResult reports the outcome of an import to the caller, which owns
// all user messaging.
type ImportResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Exporter serializes and restores the full persisted state. Producing a
// downloadable artifact from the snapshot is the caller's concern.
type Exporter struct {
	store    *Store
	settings *SettingsStore
	logs     *MealLogStore
}

func NewExporter(store *Store, settings *SettingsStore, logs *MealLogStore) *Exporter {
	return &Exporter{store: store, settings: settings, logs: logs}
}

// ExportSnapshot captures settings and the full meal history.
func (e *Exporter) ExportSnapshot() models.Snapshot {
	current := e.settings.Load()
	return models.Snapshot{
		Version:      models.SnapshotVersion,
		ExportDate:   time.Now().Format(time.RFC3339),
		UserSettings: &current,
		MealLogs:     e.logs.LoadAll(),
	}
}

// ImportSnapshot validates the document and replaces both stored
// documents wholesale in a single transaction. It either applies the
// whole snapshot or nothing; there is no merge and no partial import.
// The confirmation gate happens before this call.
func (e *Exporter) ImportSnapshot(doc models.Snapshot) (ImportResult, error) {
	if doc.Version == "" || doc.UserSettings == nil || doc.MealLogs == nil {
		return ImportResult{Success: false, Message: "invalid data format"}, ErrBadFormat
	}

	logs := doc.MealLogs
	sortByDateDesc(logs)
	for i := range logs {
		logs[i].RecomputeTotal()
	}

	rawSettings, err := json.Marshal(doc.UserSettings)
	if err != nil {
		return ImportResult{Success: false, Message: "failed to import data: " + err.Error()}, err
	}
	rawLogs, err := json.Marshal(logs)
	if err != nil {
		return ImportResult{Success: false, Message: "failed to import data: " + err.Error()}, err
	}
	if err := e.store.replaceDocuments(rawSettings, rawLogs); err != nil {
		return ImportResult{Success: false, Message: "failed to import data: " + err.Error()}, err
	}
	return ImportResult{Success: true, Message: "Data imported successfully"}, nil
}

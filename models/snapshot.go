package models

// SnapshotVersion is the export document format version.
const SnapshotVersion = "1.0"

// Snapshot is the full exportable/importable representation of settings
// plus meal history. Imports require every top-level key to be present.
type Snapshot struct {
	Version      string    `json:"version"`
	ExportDate   string    `json:"exportDate"`
	UserSettings *Settings `json:"userSettings"`
	MealLogs     []DayLog  `json:"mealLogs"`
}

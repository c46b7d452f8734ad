package storage

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/Drifter-Supremo/calorie-hound/models"
)

// SettingsStore persists the singleton user settings document.
// Its methods never return errors: reads fall back to defaults and
// failed writes surface as a nil return, so callers have nothing to catch.
type SettingsStore struct {
	store *Store

	// mu serializes Save's load-merge-write cycle so concurrent patches
	// of different fields cannot overwrite each other.
	mu sync.Mutex
}

func NewSettingsStore(s *Store) *SettingsStore {
	return &SettingsStore{store: s}
}

// Load returns the stored settings, or the defaults when nothing is
// stored or the document does not parse.
func (ss *SettingsStore) Load() models.Settings {
	raw := ss.store.getDocument(keyUserSettings)
	if raw == nil {
		return models.DefaultSettings()
	}
	var s models.Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		slog.Error("settings document unreadable, using defaults", "error", err)
		return models.DefaultSettings()
	}
	return s
}

// Save merges the patch over the current settings, stamps UpdatedAt and
// persists. Returns the merged settings, or nil if the write failed.
func (ss *SettingsStore) Save(patch models.SettingsPatch) *models.Settings {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	merged := ss.Load().Apply(patch)
	raw, err := json.Marshal(merged)
	if err != nil {
		slog.Error("settings marshal failed", "error", err)
		return nil
	}
	if err := ss.store.putDocument(keyUserSettings, raw); err != nil {
		slog.Error("settings write failed", "error", err)
		return nil
	}
	return &merged
}

// Replace overwrites the settings document wholesale. Used by import.
func (ss *SettingsStore) Replace(s models.Settings) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return ss.store.putDocument(keyUserSettings, raw)
}

// IsSetupComplete reports whether the user has configured a calorie
// target and an API key. Body-metric fields are legacy and do not count.
func (ss *SettingsStore) IsSetupComplete() bool {
	s := ss.Load()
	return s.DailyCalorieTarget > 0 && strings.TrimSpace(s.GeminiAPIKey) != ""
}

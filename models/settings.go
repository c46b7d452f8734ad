package models

import "time"

// Settings is the single per-user configuration document.
// Weight fields are in pounds, timeline in months; they are legacy/optional —
// setup completeness is judged on the calorie target and API key only.
type Settings struct {
	DailyCalorieTarget int     `json:"dailyCalorieTarget"`
	GeminiAPIKey       string  `json:"geminiApiKey"`
	CurrentWeight      float64 `json:"currentWeight,omitempty"`
	GoalWeight         float64 `json:"goalWeight,omitempty"`
	Timeline           int     `json:"timeline,omitempty"`
	CreatedAt          int64   `json:"createdAt"`
	UpdatedAt          int64   `json:"updatedAt"`
}

// SettingsPatch carries a partial settings update; nil fields are left as-is.
type SettingsPatch struct {
	DailyCalorieTarget *int     `json:"dailyCalorieTarget"`
	GeminiAPIKey       *string  `json:"geminiApiKey"`
	CurrentWeight      *float64 `json:"currentWeight"`
	GoalWeight         *float64 `json:"goalWeight"`
	Timeline           *int     `json:"timeline"`
}

// DefaultSettings returns the settings used before the user has saved anything.
func DefaultSettings() Settings {
	now := time.Now().UnixMilli()
	return Settings{
		DailyCalorieTarget: 2000,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Apply merges the non-nil patch fields over s and stamps UpdatedAt.
func (s Settings) Apply(p SettingsPatch) Settings {
	if p.DailyCalorieTarget != nil {
		s.DailyCalorieTarget = *p.DailyCalorieTarget
	}
	if p.GeminiAPIKey != nil {
		s.GeminiAPIKey = *p.GeminiAPIKey
	}
	if p.CurrentWeight != nil {
		s.CurrentWeight = *p.CurrentWeight
	}
	if p.GoalWeight != nil {
		s.GoalWeight = *p.GoalWeight
	}
	if p.Timeline != nil {
		s.Timeline = *p.Timeline
	}
	s.UpdatedAt = time.Now().UnixMilli()
	return s
}

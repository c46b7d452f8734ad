package models

// Confidence tiers attached to a calorie estimate.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// ValidConfidence reports whether v is one of the accepted tiers.
func ValidConfidence(v string) bool {
	return v == ConfidenceHigh || v == ConfidenceMedium || v == ConfidenceLow
}

// Meal is one logged meal. The ID is assigned by the store and is unique
// within a session.
type Meal struct {
	ID          string `json:"id"`
	Timestamp   int64  `json:"timestamp"`
	Description string `json:"description"`
	Calories    int    `json:"calories"`
	Confidence  string `json:"confidence"`
	Portions    string `json:"portions"`
	UpdatedAt   int64  `json:"updatedAt,omitempty"`
}

// MealPatch carries a partial meal update; nil fields are left as-is.
// In practice only the description is edited after the fact.
type MealPatch struct {
	Description *string `json:"description"`
	Calories    *int    `json:"calories"`
	Portions    *string `json:"portions"`
}

// DayLog aggregates all meals recorded for one calendar date.
// TotalCalories is derived: it is recomputed from Meals on every mutation
// and never trusted from input.
type DayLog struct {
	Date          string `json:"date"`
	Meals         []Meal `json:"meals"`
	TotalCalories int    `json:"totalCalories"`
}

// NewDayLog returns an empty log for the given YYYY-MM-DD date key.
func NewDayLog(date string) DayLog {
	return DayLog{Date: date, Meals: []Meal{}}
}

// RecomputeTotal re-derives TotalCalories from the contained meals.
func (l *DayLog) RecomputeTotal() {
	total := 0
	for _, m := range l.Meals {
		total += m.Calories
	}
	l.TotalCalories = total
}

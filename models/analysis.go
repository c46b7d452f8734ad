package models

// AnalysisResult is the transient outcome of one vision analysis request.
// It is never persisted directly; it becomes a Meal only when the user
// confirms the save. Error is set when the pipeline degraded to the
// fallback estimate instead of failing outright.
type AnalysisResult struct {
	Description      string `json:"description"`
	Calories         int    `json:"calories"`
	Confidence       string `json:"confidence"`
	Portions         string `json:"portions"`
	Timestamp        int64  `json:"timestamp"`
	ProcessingTimeMs int64  `json:"processingTimeMs"`
	Error            string `json:"error,omitempty"`
}

package services

import (
	"errors"
	"fmt"
)

// Typed failures raised inside the analysis pipeline. They propagate up to
// AnalysisService.Analyze, which converts them into a degraded result
// instead of surfacing them to the meal-saving flow.
var (
	ErrNoAPIKey         = errors.New("API key not configured. Please set it in Settings.")
	ErrTimeout          = errors.New("Request timed out. Please try again.")
	ErrRateLimited      = errors.New("API rate limit exceeded. Please try again later.")
	ErrAuth             = errors.New("API key invalid or quota exceeded.")
	ErrModelNotFound    = errors.New("model not found or unavailable")
	ErrEmptyReply       = errors.New("no response text from API")
	ErrAnalysisInFlight = errors.New("analysis already in progress")
)

// HTTPError is a non-success response that does not map to one of the
// specific error kinds above.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("API request failed: %d %s", e.StatusCode, e.Status)
}

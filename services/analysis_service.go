package services

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Drifter-Supremo/calorie-hound/models"
	"github.com/Drifter-Supremo/calorie-hound/storage"
)

// DefaultAnalysisTimeout bounds the whole network call; hitting it aborts
// the in-flight request.
const DefaultAnalysisTimeout = 10 * time.Second

// AnalysisService orchestrates one analysis: compress, encode, call the
// vision endpoint, parse. Inner stages raise the typed errors from this
// package; Analyze alone converts any of them into a degraded-but-valid
// result so the caller always has something renderable. That asymmetry is
// the intended contract, not an oversight.
type AnalysisService struct {
	gemini   *GeminiService
	images   *ImageService
	settings *storage.SettingsStore
	timeout  time.Duration

	inFlight atomic.Bool
}

func NewAnalysisService(gemini *GeminiService, images *ImageService, settings *storage.SettingsStore, timeout time.Duration) *AnalysisService {
	if timeout <= 0 {
		timeout = DefaultAnalysisTimeout
	}
	return &AnalysisService{
		gemini:   gemini,
		images:   images,
		settings: settings,
		timeout:  timeout,
	}
}

// Analyze runs the pipeline on a raw input image. One analysis runs at a
// time: a call while another is pending is rejected with
// ErrAnalysisInFlight — a guard rejection, not a pipeline failure, so it
// is the only error this method returns. Pipeline failures never escape;
// they come back inside the result with the fallback estimate filled in.
func (as *AnalysisService) Analyze(imageData []byte) (models.AnalysisResult, error) {
	if !as.inFlight.CompareAndSwap(false, true) {
		return models.AnalysisResult{}, ErrAnalysisInFlight
	}
	defer as.inFlight.Store(false)

	start := time.Now()
	result, err := as.runPipeline(imageData)
	if err != nil {
		slog.Warn("analysis degraded to fallback estimate", "error", err)
		return fallbackResult(err, start), nil
	}

	result.Timestamp = start.UnixMilli()
	result.ProcessingTimeMs = time.Since(start).Milliseconds()
	return result, nil
}

func (as *AnalysisService) runPipeline(imageData []byte) (models.AnalysisResult, error) {
	apiKey := as.settings.Load().GeminiAPIKey
	if strings.TrimSpace(apiKey) == "" {
		return models.AnalysisResult{}, ErrNoAPIKey
	}

	compressed, err := as.images.Compress(imageData)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), as.timeout)
	defer cancel()

	text, err := as.gemini.AnalyzeImage(ctx, apiKey, as.images.ToBase64(compressed))
	if err != nil {
		return models.AnalysisResult{}, err
	}
	return ParseEstimate(text)
}

// TestConnection probes the endpoint with the stored credential.
func (as *AnalysisService) TestConnection() bool {
	apiKey := as.settings.Load().GeminiAPIKey
	if strings.TrimSpace(apiKey) == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), as.timeout)
	defer cancel()
	return as.gemini.TestConnection(ctx, apiKey)
}

// fallbackResult is the degraded estimate returned when any stage of the
// pipeline fails. The values are deliberately conservative and renderable.
func fallbackResult(err error, start time.Time) models.AnalysisResult {
	return models.AnalysisResult{
		Description:      "Food item (analysis failed)",
		Calories:         300,
		Confidence:       models.ConfidenceLow,
		Portions:         "Standard serving",
		Error:            err.Error(),
		Timestamp:        start.UnixMilli(),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}
}

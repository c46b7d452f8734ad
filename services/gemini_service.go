package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultEndpoint is the vision model endpoint used unless overridden.
const DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash-lite:generateContent"

// caloriePrompt asks for the four-field structured reply ParseEstimate
// expects. Changing the field names here breaks the parser contract.
const caloriePrompt = `Analyze this meal photo and provide a calorie estimate. Please respond in exactly this format:

FOOD: [Brief description of the food items you see]
CALORIES: [Total calorie estimate as a number only]
CONFIDENCE: [high/medium/low]
PORTIONS: [Brief note about portion sizes observed]

Instructions:
- Assume standard serving sizes unless portions look obviously large/small
- Be specific about what food items you can identify
- Consider typical restaurant/home portions
- Only estimate calories for food items, ignore drinks unless specifically asked
- If multiple items, provide total combined calories`

type GeminiRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
	SafetySettings   []SafetySetting   `json:"safetySettings,omitempty"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inline_data,omitempty"`
}

type InlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

type SafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type GeminiResponse struct {
	Candidates []Candidate `json:"candidates"`
	Error      *APIError   `json:"error,omitempty"`
}

type Candidate struct {
	Content Content `json:"content"`
}

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// GeminiService sends analysis requests to the remote vision endpoint and
// classifies failures. The credential is passed per call as a query
// parameter, never stored on the service.
type GeminiService struct {
	endpoint string
	client   *http.Client
}

func NewGeminiService(endpoint string) *GeminiService {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &GeminiService{
		endpoint: endpoint,
		client:   &http.Client{},
	}
}

// AnalyzeImage sends the compressed, base64-encoded JPEG with the fixed
// calorie prompt and returns the model's raw reply text. Generation
// parameters are pinned low-randomness so repeated analyses of the same
// photo stay consistent.
func (gs *GeminiService) AnalyzeImage(ctx context.Context, apiKey, imageBase64 string) (string, error) {
	body := GeminiRequest{
		Contents: []Content{{
			Role: "user",
			Parts: []Part{
				{Text: caloriePrompt},
				{InlineData: &InlineData{MimeType: "image/jpeg", Data: imageBase64}},
			},
		}},
		GenerationConfig: &GenerationConfig{
			Temperature:     0.1,
			MaxOutputTokens: 1000,
			TopP:            0.8,
			TopK:            10,
		},
		SafetySettings: []SafetySetting{
			{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_ONLY_HIGH"},
			{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_ONLY_HIGH"},
		},
	}
	return gs.generate(ctx, apiKey, body)
}

// TestConnection sends a minimal text-only probe and reports reachability.
// Every failure mode collapses to false.
func (gs *GeminiService) TestConnection(ctx context.Context, apiKey string) bool {
	body := GeminiRequest{
		Contents: []Content{{
			Parts: []Part{{Text: `Hello, can you respond with just "OK"?`}},
		}},
	}
	_, err := gs.generate(ctx, apiKey, body)
	return err == nil
}

func (gs *GeminiService) generate(ctx context.Context, apiKey string, body GeminiRequest) (string, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", gs.endpoint, apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := gs.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		switch resp.StatusCode {
		case http.StatusTooManyRequests:
			return "", ErrRateLimited
		case http.StatusForbidden:
			return "", ErrAuth
		case http.StatusNotFound:
			return "", ErrModelNotFound
		default:
			return "", &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		// The deadline can also fire mid-body, after Do has returned.
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("error reading response: %w", err)
	}
	var response GeminiResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %w", err)
	}

	// An error object inside an otherwise-200 reply still fails.
	if response.Error != nil {
		msg := response.Error.Message
		if msg == "" {
			msg = "API returned an error"
		}
		return "", errors.New(msg)
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyReply
	}
	return response.Candidates[0].Content.Parts[0].Text, nil
}

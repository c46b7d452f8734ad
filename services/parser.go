package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Drifter-Supremo/calorie-hound/models"
)

var (
	firstIntRe     = regexp.MustCompile(`\d+`)
	calorieWordRe  = regexp.MustCompile(`(?i)(\d+)\s*calories?`)
	bareIntWordRe  = regexp.MustCompile(`\b(\d+)\b`)
	fallbackMaxLen = 100
)

// ParseEstimate extracts a structured meal estimate from the model's raw
// reply text. The expected shape is four prefixed lines (FOOD:, CALORIES:,
// CONFIDENCE:, PORTIONS:) in any order; when the model ignores the format
// the parser degrades to heuristics over the raw text instead of failing.
// It errors only when there is no text to work with at all.
func ParseEstimate(text string) (models.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return models.AnalysisResult{}, ErrEmptyReply
	}

	result := models.AnalysisResult{Confidence: models.ConfidenceLow}

	// Prefixes are case-sensitive; the last occurrence of a repeated
	// prefix wins.
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "FOOD:"):
			result.Description = strings.TrimSpace(strings.TrimPrefix(line, "FOOD:"))
		case strings.HasPrefix(line, "CALORIES:"):
			rest := strings.TrimSpace(strings.TrimPrefix(line, "CALORIES:"))
			if m := firstIntRe.FindString(rest); m != "" {
				result.Calories, _ = strconv.Atoi(m)
			} else {
				result.Calories = 0
			}
		case strings.HasPrefix(line, "CONFIDENCE:"):
			conf := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "CONFIDENCE:")))
			if models.ValidConfidence(conf) {
				result.Confidence = conf
			}
		case strings.HasPrefix(line, "PORTIONS:"):
			result.Portions = strings.TrimSpace(strings.TrimPrefix(line, "PORTIONS:"))
		}
	}

	// Fallback when the structured format was not followed: truncate the
	// raw text into a description and hunt for a plausible calorie figure.
	if result.Description == "" {
		runes := []rune(text)
		if len(runes) > fallbackMaxLen {
			result.Description = string(runes[:fallbackMaxLen]) + "..."
		} else {
			result.Description = text
		}

		match := calorieWordRe.FindStringSubmatch(text)
		if match == nil {
			match = bareIntWordRe.FindStringSubmatch(text)
		}
		if match != nil {
			if calories, err := strconv.Atoi(match[1]); err == nil && calories > 10 && calories < 5000 {
				result.Calories = calories
			}
		}
	}

	if result.Description == "" {
		result.Description = "Food item (description unavailable)"
	}
	if result.Calories < 1 {
		result.Calories = 300
		result.Confidence = models.ConfidenceLow
	}

	return result, nil
}

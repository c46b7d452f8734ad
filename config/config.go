package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration, read from the environment with
// sensible local-first defaults.
type Config struct {
	Addr            string
	DataPath        string
	GeminiEndpoint  string
	AnalysisTimeout time.Duration
	Environment     string
}

// Load reads .env (if present) and the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	return &Config{
		Addr:            getEnv("ADDR", ":8080"),
		DataPath:        getEnv("DATA_PATH", "data/caloriehound.db"),
		GeminiEndpoint:  getEnv("GEMINI_ENDPOINT", ""),
		AnalysisTimeout: time.Duration(getIntEnv("ANALYSIS_TIMEOUT_MS", 10000)) * time.Millisecond,
		Environment:     getEnv("ENVIRONMENT", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

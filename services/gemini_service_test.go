package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func geminiReply(text string) string {
	resp := GeminiResponse{
		Candidates: []Candidate{{Content: Content{Parts: []Part{{Text: text}}}}},
	}
	raw, _ := json.Marshal(resp)
	return string(raw)
}

func TestGenerate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("credential missing from query, got %q", r.URL.RawQuery)
		}
		var req GeminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		_, _ = w.Write([]byte(geminiReply("FOOD: Pizza")))
	}))
	defer srv.Close()

	gs := NewGeminiService(srv.URL)
	text, err := gs.AnalyzeImage(context.Background(), "test-key", "aW1n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "FOOD: Pizza" {
		t.Fatalf("unexpected reply text %q", text)
	}
}

func TestGenerate_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"auth rejected", http.StatusForbidden, ErrAuth},
		{"model missing", http.StatusNotFound, ErrModelNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			gs := NewGeminiService(srv.URL)
			_, err := gs.AnalyzeImage(context.Background(), "k", "aW1n")
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestGenerate_GenericHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	gs := NewGeminiService(srv.URL)
	_, err := gs.AnalyzeImage(context.Background(), "k", "aW1n")
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", httpErr.StatusCode)
	}
}

func TestGenerate_ErrorInsideOKBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"inline failure","status":"INVALID_ARGUMENT"}}`))
	}))
	defer srv.Close()

	gs := NewGeminiService(srv.URL)
	_, err := gs.AnalyzeImage(context.Background(), "k", "aW1n")
	if err == nil || err.Error() != "inline failure" {
		t.Fatalf("expected embedded error message, got %v", err)
	}
}

func TestGenerate_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	gs := NewGeminiService(srv.URL)
	_, err := gs.AnalyzeImage(context.Background(), "k", "aW1n")
	if !errors.Is(err, ErrEmptyReply) {
		t.Fatalf("expected ErrEmptyReply, got %v", err)
	}
}

func TestGenerate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	gs := NewGeminiService(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := gs.AnalyzeImage(ctx, "k", "aW1n")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestGenerate_TimeoutDuringBody(t *testing.T) {
	// Headers arrive in time; the body stalls past the deadline.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"candidates"`))
		w.(http.Flusher).Flush()
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	gs := NewGeminiService(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := gs.AnalyzeImage(ctx, "k", "aW1n")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestTestConnection(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(geminiReply("OK")))
		}))
		defer srv.Close()

		gs := NewGeminiService(srv.URL)
		if !gs.TestConnection(context.Background(), "k") {
			t.Fatal("expected true for reachable endpoint")
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		gs := NewGeminiService(srv.URL)
		if gs.TestConnection(context.Background(), "k") {
			t.Fatal("expected false for rejected probe")
		}
	})
}

package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/collabdays/peoplefinder/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterPipelineMetrics()
	os.Exit(m.Run())
}

// chatCompletionResponse mirrors the Azure OpenAI chat completion response.
type chatCompletionResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func completionResponse(content string) chatCompletionResponse {
	resp := chatCompletionResponse{
		ID:     "chatcmpl-test",
		Object: "chat.completion",
		Model:  "gpt-4o-mini",
	}
	resp.Choices = append(resp.Choices, struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	}{
		Message: struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		}{Role: "assistant", Content: content},
		FinishReason: "stop",
	})
	return resp
}

func TestCompleter_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/deployments/extractor-dep/chat/completions") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("api-version") != "2024-02-15-preview" {
			t.Errorf("unexpected api-version: %s", r.URL.Query().Get("api-version"))
		}
		if r.Header.Get("Api-Key") != "test-key" {
			t.Errorf("unexpected api key header: %s", r.Header.Get("Api-Key"))
		}

		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
			MaxTokens int `json:"max_tokens"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("unexpected message pair: %+v", req.Messages)
		}
		if req.MaxTokens != 256 {
			t.Errorf("expected max_tokens=256, got %d", req.MaxTokens)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionResponse(`{"skills":["Leadership"]}`))
	}))
	defer server.Close()

	c := NewCompleter(&Config{
		Endpoint:   server.URL,
		APIKey:     "test-key",
		Deployment: "extractor-dep",
		APIVersion: "2024-02-15-preview",
		MaxTokens:  256,
		Logger:     zap.NewNop(),
	})

	got, err := c.Complete(context.Background(), "system prompt", "user query")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != `{"skills":["Leadership"]}` {
		t.Errorf("unexpected content: %q", got)
	}
}

func TestCompleter_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
	}))
	defer server.Close()

	c := NewCompleter(&Config{
		Endpoint:   server.URL,
		APIKey:     "test-key",
		Deployment: "extractor-dep",
		MaxTokens:  256,
		Logger:     zap.NewNop(),
	})

	_, err := c.Complete(context.Background(), "system", "user")
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
	if !strings.Contains(err.Error(), "rate limit exceeded") {
		t.Errorf("expected error to carry API message, got: %v", err)
	}
}

func TestCompleter_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletionResponse{ID: "chatcmpl-empty", Object: "chat.completion"})
	}))
	defer server.Close()

	c := NewCompleter(&Config{
		Endpoint:   server.URL,
		APIKey:     "test-key",
		Deployment: "extractor-dep",
		MaxTokens:  256,
		Logger:     zap.NewNop(),
	})

	_, err := c.Complete(context.Background(), "system", "user")
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}

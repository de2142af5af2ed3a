package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/collabdays/peoplefinder/internal/domain"
	"github.com/collabdays/peoplefinder/internal/metrics"
)

// Completer is a chat-completion provider using the Azure OpenAI API shape
// (endpoint + api key + deployment + api version).
type Completer struct {
	client     *openai.Client
	deployment string
	maxTokens  int
	logger     *zap.Logger
}

// Config holds the extraction provider settings.
type Config struct {
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
	MaxTokens  int
	Logger     *zap.Logger
}

// NewCompleter creates an Azure OpenAI chat-completion provider.
func NewCompleter(cfg *Config) *Completer {
	clientCfg := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	if cfg.APIVersion != "" {
		clientCfg.APIVersion = cfg.APIVersion
	}
	deployment := cfg.Deployment
	clientCfg.AzureModelMapperFunc = func(string) string { return deployment }

	return &Completer{
		client:     openai.NewClientWithConfig(clientCfg),
		deployment: deployment,
		maxTokens:  cfg.MaxTokens,
		logger:     cfg.Logger,
	}
}

// Complete sends a system+user message pair and returns the raw completion
// text. Temperature is pinned to zero for deterministic extraction.
func (c *Completer) Complete(ctx context.Context, system, user string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.deployment,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		// A literal 0 is dropped by omitempty and the API falls back to its
		// default; the smallest non-zero float is the documented way to pin 0.
		Temperature: math.SmallestNonzeroFloat32,
		MaxTokens:   c.maxTokens,
	}

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.ExtractionRequestsTotal.WithLabelValues("error").Inc()
		return "", parseAPIError(err)
	}

	if len(resp.Choices) == 0 {
		metrics.ExtractionRequestsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrExtractionProviderError)
	}

	metrics.ExtractionRequestsTotal.WithLabelValues("success").Inc()
	metrics.ExtractionRequestDuration.Observe(duration.Seconds())

	return resp.Choices[0].Message.Content, nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrExtractionProviderError.
func parseAPIError(err error) error {
	wrap := domain.ErrExtractionProviderError

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractMessage(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("extraction API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("extraction API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("extraction API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("extraction request failed: %w", wrap)
}

// extractMessage pulls the nested error message out of an Azure error body.
func extractMessage(body []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return ""
}

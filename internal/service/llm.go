package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/pageza/vegandiet/backend/internal/metrics"
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 2000
	defaultCallTimeout = 8 * time.Second
	maxResponseBytes   = 1 << 20
)

// FailureKind classifies why a meal could not be generated from a completion
type FailureKind string

const (
	FailureTimeout   FailureKind = "timeout"
	FailureTransport FailureKind = "transport"
	FailureStatus    FailureKind = "status"
	FailureEmpty     FailureKind = "empty"
	FailureMalformed FailureKind = "malformed"
	FailureUnknown   FailureKind = "unknown"
)

// CompletionError is returned by LLMClient.Complete
type CompletionError struct {
	Kind       FailureKind
	StatusCode int
	Err        error
}

func (e *CompletionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("completion %s (status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("completion %s: %v", e.Kind, e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

// FailureKindOf returns the failure kind carried by err
func FailureKindOf(err error) FailureKind {
	var ce *CompletionError
	switch {
	case errors.As(err, &ce):
		return ce.Kind
	case errors.Is(err, ErrMalformedCompletion):
		return FailureMalformed
	case errors.Is(err, context.DeadlineExceeded):
		return FailureTimeout
	default:
		return FailureUnknown
	}
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a request to the chat completion API
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Stream      bool      `json:"stream"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type LLMConfig struct {
	APIURL  string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// LLMClient calls an OpenAI-compatible chat completion endpoint
type LLMClient struct {
	cfg     LLMConfig
	http    *http.Client
	metrics *metrics.Collector
}

// NewLLMClient creates a client. A nil httpClient uses a fresh http.Client;
// the per-call timeout is applied through the request context.
func NewLLMClient(cfg LLMConfig, httpClient *http.Client, m *metrics.Collector) *LLMClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultCallTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &LLMClient{cfg: cfg, http: httpClient, metrics: m}
}

// Complete sends one chat completion request and returns the first choice's
// content. It does not retry.
func (c *LLMClient) Complete(ctx context.Context, prompt Prompt) (string, error) {
	start := time.Now()
	content, err := c.complete(ctx, prompt)
	outcome := "ok"
	if err != nil {
		outcome = string(FailureKindOf(err))
	}
	c.metrics.Completion(outcome, time.Since(start))
	return content, err
}

func (c *LLMClient) complete(ctx context.Context, prompt Prompt) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(Request{
		Model: c.cfg.Model,
		Messages: []Message{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
		Stream:      false,
	})
	if err != nil {
		return "", &CompletionError{Kind: FailureTransport, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", &CompletionError{Kind: FailureTransport, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &CompletionError{
			Kind:       FailureStatus,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("API request failed: %s", strings.TrimSpace(string(snippet))),
		}
	}

	var result completionResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&result); err != nil {
		if ctx.Err() != nil {
			return "", classifyTransportError(ctx, err)
		}
		return "", &CompletionError{Kind: FailureEmpty, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if len(result.Choices) == 0 {
		return "", &CompletionError{Kind: FailureEmpty, Err: errors.New("no choices in API response")}
	}
	content := strings.TrimSpace(result.Choices[0].Message.Content)
	if content == "" {
		return "", &CompletionError{Kind: FailureEmpty, Err: errors.New("empty completion content")}
	}
	return content, nil
}

func classifyTransportError(ctx context.Context, err error) error {
	var netErr net.Error
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return &CompletionError{Kind: FailureTimeout, Err: err}
	}
	return &CompletionError{Kind: FailureTransport, Err: err}
}

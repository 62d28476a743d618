package model

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

const maxResponseBytes = 1 << 20

// ErrEmptyCompletion means the endpoint answered but the message was empty.
var ErrEmptyCompletion = errors.New("completion returned no content")

type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
	// Referer and Title identify the app to OpenRouter-style gateways.
	Referer string
	Title   string
}

type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
	referer    string
	title      string
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		referer:    cfg.Referer,
		title:      cfg.Title,
	}
}

// ModelInferenceError covers every way a completion call can fail:
// transport errors, timeouts, non-2xx answers and malformed envelopes.
type ModelInferenceError struct {
	StatusCode int
	Msg        string
	Err        error
}

func (e *ModelInferenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ModelInferenceError) Unwrap() error {
	return e.Err
}

func IsModelInferenceError(err error) bool {
	var target *ModelInferenceError
	return errors.As(err, &target)
}

type CompletionRequest struct {
	Model       string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends req as a single user message and returns the content of
// the first choice. No retries are attempted.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       req.Model,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		httpReq.Header.Set("X-Title", c.title)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &ModelInferenceError{Msg: "completion request failed", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &ModelInferenceError{StatusCode: resp.StatusCode, Msg: "read completion response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ModelInferenceError{
			StatusCode: resp.StatusCode,
			Msg:        fmt.Sprintf("completion endpoint returned status %d", resp.StatusCode),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf")), &parsed); err != nil {
		return "", &ModelInferenceError{StatusCode: resp.StatusCode, Msg: "decode completion response", Err: err}
	}
	if parsed.Error != nil {
		return "", &ModelInferenceError{StatusCode: resp.StatusCode, Msg: "completion error: " + parsed.Error.Message}
	}
	if len(parsed.Choices) == 0 {
		return "", &ModelInferenceError{StatusCode: resp.StatusCode, Msg: "completion returned no choices"}
	}

	content := parsed.Choices[0].Message.Content
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}

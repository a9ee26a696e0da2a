package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Abm32/Neuroshift/internal"
	"github.com/Abm32/Neuroshift/internal/config"
)

// Completer is the text-completion capability the generator consumes.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client talks to an OpenAI-compatible chat-completion endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	maxRetries int
	logger     internal.Logger
}

func NewClient(cfg *config.Config, logger internal.Logger) (*Client, error) {
	if cfg.AIAPIKey == "" {
		return nil, errors.New("ai: missing AI_API_KEY")
	}
	return &Client{
		baseURL:    cfg.AIBaseURL,
		apiKey:     cfg.AIAPIKey,
		model:      cfg.AIModel,
		httpClient: &http.Client{Timeout: cfg.AITimeout},
		maxRetries: cfg.AIMaxRetries,
		logger:     logger,
	}, nil
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type httpError struct {
	StatusCode int
	Body       string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("ai: http %d: %s", e.StatusCode, e.Body)
}

func retryable(err error) bool {
	var he *httpError
	if errors.As(err, &he) {
		return he.StatusCode == http.StatusTooManyRequests || he.StatusCode >= 500
	}
	// Transport-level failures are worth one more try.
	return true
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	req := chatCompletionRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}

	backoff := time.Second
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		var resp chatCompletionResponse
		err := c.doOnce(ctx, &req, &resp)
		if err == nil {
			if len(resp.Choices) == 0 {
				return "", errors.New("ai: empty completion response")
			}
			return resp.Choices[0].Message.Content, nil
		}

		lastErr = err
		if !retryable(err) || attempt == c.maxRetries {
			break
		}
		c.logger.Warnf("ai: completion retrying (attempt %d/%d): %v", attempt+1, c.maxRetries, err)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return "", lastErr
}

func (c *Client) doOnce(ctx context.Context, body, out interface{}) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &httpError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return json.Unmarshal(raw, out)
}

var _ Completer = (*Client)(nil)

// Package textgen calls an OpenAI-compatible chat-completions endpoint.
package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	giftapp "github.com/wishwell/wishwell/internal/application/gift"
	"github.com/wishwell/wishwell/internal/config"
	"github.com/wishwell/wishwell/pkg/errors"
)

const completionsPath = "/chat/completions"

// Client implements gift.TextGenerator over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	temp       float64
	maxTokens  int
}

// NewClient builds a client from config.  The HTTP timeout bounds each
// completion call in addition to any context deadline.
func NewClient(cfg config.TextGenConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		temp:       cfg.Temperature,
		maxTokens:  cfg.MaxTokens,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends one user prompt and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.temp,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeSerialization, "encode completion request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeTextGenFailed, "build completion request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeTextGenFailed, "call completion endpoint")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", errors.New(errors.ErrCodeTextGenBusy, "completion endpoint rate limited")
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.Newf(errors.ErrCodeTextGenFailed, "completion endpoint returned %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeTextGenFailed, "read completion response")
	}
	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeSerialization, "decode completion response")
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New(errors.ErrCodeTextGenFailed, "completion response carried no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

var _ giftapp.TextGenerator = (*Client)(nil)

// String identifies the client in logs without leaking the API key.
func (c *Client) String() string {
	return fmt.Sprintf("textgen{model=%s, base=%s}", c.model, c.baseURL)
}

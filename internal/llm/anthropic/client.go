// Package anthropic adapts the Anthropic Messages API.
package anthropic

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/promptseerr/promptseerr/internal/apperr"
	"github.com/promptseerr/promptseerr/internal/llm"
)

// Defaults applied when Settings leave BaseURL or Model empty.
const (
	DefaultBaseURL = "https://api.anthropic.com"
	DefaultModel   = "claude-sonnet-4-20250514"
	APIVersion     = "2023-06-01"

	maxTokens = 5000
)

// Client calls POST {base}/v1/messages.
type Client struct {
	settings   llm.Settings
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

func New(s llm.Settings, opts ...Option) *Client {
	if strings.TrimSpace(s.BaseURL) == "" {
		s.BaseURL = DefaultBaseURL
	}
	if strings.TrimSpace(s.Model) == "" {
		s.Model = DefaultModel
	}
	s.BaseURL = strings.TrimRight(s.BaseURL, "/")

	c := &Client{settings: s, httpClient: llm.NewHTTPClient(s)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the provider name used in errors and health output.
func (c *Client) Name() string { return "anthropic" }

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string    `json:"model"`
	System      string    `json:"system,omitempty"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Messages    []message `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Call concatenates every text block of the reply.
func (c *Client) Call(ctx context.Context, req llm.Request) (llm.Response, error) {
	messages := make([]message, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, message{Role: string(m.Role), Content: m.Content})
	}

	headers := map[string]string{
		"x-api-key":         c.settings.APIKey,
		"anthropic-version": APIVersion,
	}
	body := messagesRequest{
		Model:       c.settings.Model,
		System:      req.System,
		MaxTokens:   maxTokens,
		Temperature: c.settings.Temperature,
		Messages:    messages,
	}

	var out messagesResponse
	if err := llm.PostJSON(ctx, c.httpClient, c.settings.BaseURL+"/v1/messages", headers, body, &out); err != nil {
		return llm.Response{}, apperr.NewLLMCallError(c.Name(), err)
	}

	var sb strings.Builder
	for _, block := range out.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return llm.Response{}, apperr.NewLLMCallError(c.Name(), errors.New("response contained no text"))
	}
	return llm.Response{Text: text}, nil
}

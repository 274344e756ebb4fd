// Package openai adapts OpenAI-compatible chat-completion endpoints, used for
// both OpenAI and LiteLLM proxies.
package openai

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
	DefaultBaseURL        = "https://api.openai.com/v1"
	DefaultLiteLLMBaseURL = "http://localhost:4000"
	DefaultModel          = "gpt-4o-mini"
)

// Client calls POST {base}/chat/completions.
type Client struct {
	name       string
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

// WithName sets the provider name reported in errors. Defaults to "openai".
func WithName(name string) Option {
	return func(cl *Client) {
		if name != "" {
			cl.name = name
		}
	}
}

// New builds a client. Empty base URL and model fall back to OpenAI defaults.
func New(s llm.Settings, opts ...Option) *Client {
	if strings.TrimSpace(s.BaseURL) == "" {
		s.BaseURL = DefaultBaseURL
	}
	if strings.TrimSpace(s.Model) == "" {
		s.Model = DefaultModel
	}
	s.BaseURL = strings.TrimRight(s.BaseURL, "/")

	c := &Client{name: "openai", settings: s, httpClient: llm.NewHTTPClient(s)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the provider name.
func (c *Client) Name() string { return c.name }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Call sends the system prompt as the leading system message.
func (c *Client) Call(ctx context.Context, req llm.Request) (llm.Response, error) {
	messages := make([]chatMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	for _, m := range req.Messages {
		messages = append(messages, chatMessage{Role: string(m.Role), Content: m.Content})
	}

	headers := map[string]string{}
	if c.settings.APIKey != "" {
		headers["Authorization"] = "Bearer " + c.settings.APIKey
	}

	var out chatResponse
	body := chatRequest{Model: c.settings.Model, Messages: messages, Temperature: c.settings.Temperature}
	if err := llm.PostJSON(ctx, c.httpClient, c.settings.BaseURL+"/chat/completions", headers, body, &out); err != nil {
		return llm.Response{}, apperr.NewLLMCallError(c.name, err)
	}
	if len(out.Choices) == 0 {
		return llm.Response{}, apperr.NewLLMCallError(c.name, errors.New("response contained no choices"))
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return llm.Response{}, apperr.NewLLMCallError(c.name, errors.New("empty response content"))
	}
	return llm.Response{Text: text}, nil
}

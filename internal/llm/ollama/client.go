// Package ollama adapts a local Ollama server's chat endpoint.
package ollama

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
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3.2"
)

// Client calls POST {base}/api/chat with streaming disabled.
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
func (c *Client) Name() string { return "ollama" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  struct {
		Temperature float64 `json:"temperature"`
	} `json:"options"`
}

type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

func (c *Client) Call(ctx context.Context, req llm.Request) (llm.Response, error) {
	body := chatRequest{Model: c.settings.Model}
	body.Options.Temperature = c.settings.Temperature
	if req.System != "" {
		body.Messages = append(body.Messages, chatMessage{Role: "system", Content: req.System})
	}
	for _, m := range req.Messages {
		body.Messages = append(body.Messages, chatMessage{Role: string(m.Role), Content: m.Content})
	}

	var out chatResponse
	if err := llm.PostJSON(ctx, c.httpClient, c.settings.BaseURL+"/api/chat", nil, body, &out); err != nil {
		return llm.Response{}, apperr.NewLLMCallError(c.Name(), err)
	}
	text := strings.TrimSpace(out.Message.Content)
	if text == "" {
		return llm.Response{}, apperr.NewLLMCallError(c.Name(), errors.New("empty response content"))
	}
	return llm.Response{Text: text}, nil
}

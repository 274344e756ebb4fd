// Package gemini adapts Google's Gemini API through the genai SDK.
package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/promptseerr/promptseerr/internal/apperr"
	"github.com/promptseerr/promptseerr/internal/llm"
)

// DefaultModel is used when Settings leave Model empty.
const DefaultModel = "gemini-2.5-flash"

// Client wraps a genai client bound to one model.
type Client struct {
	settings llm.Settings
	models   *genai.Models
	config   *genai.GenerateContentConfig
}

// Option customizes the underlying genai client configuration.
type Option func(*genai.ClientConfig)

// WithHTTPClient overrides the HTTP client used by the SDK.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *genai.ClientConfig) {
		if c != nil {
			cfg.HTTPClient = c
		}
	}
}

// New creates the SDK client. A non-empty BaseURL overrides the Gemini endpoint.
func New(ctx context.Context, s llm.Settings, opts ...Option) (*Client, error) {
	if strings.TrimSpace(s.Model) == "" {
		s.Model = DefaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:     s.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: llm.NewHTTPClient(s),
	}
	if s.BaseURL != "" {
		cc.HTTPOptions.BaseURL = strings.TrimRight(s.BaseURL, "/") + "/"
	}
	for _, opt := range opts {
		opt(cc)
	}

	gc, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, apperr.NewLLMCallError("gemini", err)
	}

	return &Client{
		settings: s,
		models:   gc.Models,
		config: &genai.GenerateContentConfig{
			Temperature: genai.Ptr[float32](float32(s.Temperature)),
		},
	}, nil
}

// Name returns the provider name used in errors and health output.
func (c *Client) Name() string { return "gemini" }

// Call maps assistant turns to the "model" role and joins every text part of
// every candidate.
func (c *Client) Call(ctx context.Context, req llm.Request) (llm.Response, error) {
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := "user"
		if m.Role == llm.RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{Role: role, Parts: []*genai.Part{{Text: m.Content}}})
	}

	cfg := *c.config
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}

	resp, err := c.models.GenerateContent(ctx, c.settings.Model, contents, &cfg)
	if err != nil {
		return llm.Response{}, apperr.NewLLMCallError(c.Name(), err)
	}

	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			sb.WriteString(part.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return llm.Response{}, apperr.NewLLMCallError(c.Name(), errors.New("response contained no text"))
	}
	return llm.Response{Text: text}, nil
}

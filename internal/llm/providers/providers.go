// Package providers selects the language-model adapter named by configuration.
package providers

import (
	"context"
	"fmt"

	"github.com/promptseerr/promptseerr/internal/config"
	"github.com/promptseerr/promptseerr/internal/llm"
	"github.com/promptseerr/promptseerr/internal/llm/anthropic"
	"github.com/promptseerr/promptseerr/internal/llm/gemini"
	"github.com/promptseerr/promptseerr/internal/llm/ollama"
	"github.com/promptseerr/promptseerr/internal/llm/openai"
)

// New builds the gateway for cfg.Provider. It is called once at startup.
func New(ctx context.Context, cfg config.LLMConfig) (llm.Gateway, error) {
	s := llm.Settings{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		Timeout:     cfg.Timeout,
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openai.New(s), nil
	case config.ProviderLiteLLM:
		if s.BaseURL == "" {
			s.BaseURL = openai.DefaultLiteLLMBaseURL
		}
		return openai.New(s, openai.WithName(config.ProviderLiteLLM)), nil
	case config.ProviderAnthropic:
		return anthropic.New(s), nil
	case config.ProviderGemini:
		client, err := gemini.New(ctx, s)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderOllama:
		return ollama.New(s), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %q", cfg.Provider)
	}
}

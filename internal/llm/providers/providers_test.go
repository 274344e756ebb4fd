package providers

import (
	"context"
	"testing"

	"github.com/promptseerr/promptseerr/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		provider string
		wantName string
		wantErr  bool
	}{
		{config.ProviderOpenAI, "openai", false},
		{config.ProviderLiteLLM, "litellm", false},
		{config.ProviderAnthropic, "anthropic", false},
		{config.ProviderGemini, "gemini", false},
		{config.ProviderOllama, "ollama", false},
		{"mistral", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			gw, err := New(context.Background(), config.LLMConfig{Provider: tt.provider, APIKey: "key"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if gw.Name() != tt.wantName {
				t.Errorf("New() name = %q, want %q", gw.Name(), tt.wantName)
			}
		})
	}
}

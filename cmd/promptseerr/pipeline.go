package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/promptseerr/promptseerr/internal/agent"
	"github.com/promptseerr/promptseerr/internal/catalog"
	"github.com/promptseerr/promptseerr/internal/config"
	"github.com/promptseerr/promptseerr/internal/fulfillment"
	"github.com/promptseerr/promptseerr/internal/intent"
	"github.com/promptseerr/promptseerr/internal/llm"
	"github.com/promptseerr/promptseerr/internal/llm/providers"
	"github.com/promptseerr/promptseerr/internal/overseerr"
	"github.com/promptseerr/promptseerr/internal/selector"
)

// buildAgent wires the gateway and the Overseerr client into an agent.
func buildAgent(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*agent.Agent, llm.Gateway, error) {
	gateway, err := providers.New(ctx, cfg.LLM)
	if err != nil {
		return nil, nil, fmt.Errorf("init llm provider: %w", err)
	}
	return assembleAgent(gateway, overseerr.NewClient(cfg.Overseerr, log), log), gateway, nil
}

func assembleAgent(gateway llm.Gateway, backend *overseerr.Client, log zerolog.Logger) *agent.Agent {
	return agent.New(
		intent.NewExtractor(gateway, log),
		catalog.NewService(backend, log),
		selector.New(gateway, log),
		fulfillment.NewClient(backend, log),
		log,
	)
}

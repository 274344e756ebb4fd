package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptseerr/promptseerr/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigValidateCommand(ctx))

	return configCmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Key", "Value"}, configRows(cfg)))
			return nil
		},
	}
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration valid")
			return nil
		},
	}
}

func configRows(cfg *config.Config) [][]string {
	return [][]string{
		{"server.address", cfg.Server.Address()},
		{"server.cors_origins", strings.Join(cfg.Server.CORSOrigins, ", ")},
		{"server.body_limit", cfg.Server.BodyLimit},
		{"server.rate_limit", fmt.Sprintf("%d/min, burst %d", cfg.Server.RateLimit.RequestsPerMinute, cfg.Server.RateLimit.Burst)},
		{"llm.provider", cfg.LLM.Provider},
		{"llm.model", valueOr(cfg.LLM.Model, "(provider default)")},
		{"llm.base_url", valueOr(cfg.LLM.BaseURL, "(provider default)")},
		{"llm.api_key", mask(cfg.LLM.APIKey)},
		{"llm.temperature", strconv.FormatFloat(cfg.LLM.Temperature, 'f', -1, 64)},
		{"llm.timeout", cfg.LLM.Timeout.String()},
		{"overseerr.url", cfg.Overseerr.URL},
		{"overseerr.api_key", mask(cfg.Overseerr.APIKey)},
		{"overseerr.timeout", cfg.Overseerr.Timeout.String()},
		{"logging.level", cfg.Logging.Level},
		{"logging.format", cfg.Logging.Format},
		{"logging.path", valueOr(cfg.Logging.Path, "(console only)")},
	}
}

func mask(secret string) string {
	secret = strings.TrimSpace(secret)
	switch {
	case secret == "":
		return "(not set)"
	case len(secret) <= 4:
		return "****"
	default:
		return "****" + secret[len(secret)-4:]
	}
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

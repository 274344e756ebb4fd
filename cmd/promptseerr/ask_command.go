package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptseerr/promptseerr/internal/apperr"
)

func newAskCommand(ctx *commandContext) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "ask <prompt>",
		Short: "Run a single request and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.TrimSpace(strings.Join(args, " "))
			if prompt == "" {
				return errors.New("prompt is required")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logCfg := cfg.Logging
			logOut := io.Discard
			if verbose {
				logOut = cmd.ErrOrStderr()
			} else {
				logCfg.Path = ""
			}
			log := newLogger(logCfg, logOut)
			defer log.Close()

			a, _, err := buildAgent(cmd.Context(), cfg, log.Logger)
			if err != nil {
				return err
			}

			message, err := a.HandleMediaRequest(cmd.Context(), prompt)
			if err != nil {
				log.Error().Err(err).Msg("request failed")
				_, desc := apperr.Describe(err)
				return errors.New(desc)
			}
			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Write pipeline logs to stderr")
	return cmd
}

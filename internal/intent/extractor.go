// Package intent turns one line of free text into a structured media request.
package intent

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/promptseerr/promptseerr/internal/apperr"
	"github.com/promptseerr/promptseerr/internal/llm"
	"github.com/promptseerr/promptseerr/internal/media"
)

// extraction is the wire shape the model must produce.
type extraction struct {
	Title     string                 `json:"title" validate:"required"`
	MediaType string                 `json:"mediaType" validate:"required,oneof=movie tv"`
	Seasons   *media.SeasonsSelector `json:"seasons"`
	Quality   *string                `json:"quality"`
}

// Extractor calls the gateway with a fixed prompt and validates the reply.
type Extractor struct {
	gateway  llm.Gateway
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewExtractor creates an extractor.
func NewExtractor(gateway llm.Gateway, logger zerolog.Logger) *Extractor {
	return &Extractor{
		gateway:  gateway,
		validate: llm.NewValidator(),
		logger:   logger.With().Str("component", "intent").Logger(),
	}
}

// Extract returns the structured request for text. It never retries.
func (e *Extractor) Extract(ctx context.Context, text string) (media.Request, error) {
	resp, err := e.gateway.Call(ctx, llm.Request{
		System:   SystemPrompt,
		Messages: []llm.Message{llm.UserMessage(text)},
	})
	if err != nil {
		if apperr.KindOf(err) == "" {
			err = apperr.NewLLMCallError(e.gateway.Name(), err)
		}
		return media.Request{}, err
	}

	e.logger.Debug().Str("response", resp.Text).Msg("Extraction response")
	return e.parse(resp.Text)
}

func (e *Extractor) parse(text string) (media.Request, error) {
	var out extraction
	if err := llm.DecodeJSON(text, &out); err != nil {
		return media.Request{}, apperr.NewIntentParseError("model reply is not a request object", err)
	}

	out.Title = strings.TrimSpace(out.Title)
	out.MediaType = strings.TrimSpace(out.MediaType)
	if err := e.validate.Struct(out); err != nil {
		return media.Request{}, apperr.NewIntentParseError(llm.ValidationMessage(err), err)
	}

	req := media.Request{
		Title:     out.Title,
		MediaType: media.MediaType(out.MediaType),
		Seasons:   out.Seasons,
	}
	if req.Seasons != nil && req.Seasons.IsList() && len(req.Seasons.Numbers()) == 0 {
		req.Seasons = nil
	}
	if out.Quality != nil {
		req.Quality = strings.TrimSpace(*out.Quality)
	}

	e.logger.Debug().
		Str("title", req.Title).
		Str("mediaType", req.MediaType.String()).
		Stringer("seasons", req.Seasons).
		Str("quality", req.Quality).
		Msg("Intent extracted")

	return req, nil
}

// Package selector asks the model to pick a candidate and a quality profile.
package selector

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/promptseerr/promptseerr/internal/apperr"
	"github.com/promptseerr/promptseerr/internal/llm"
	"github.com/promptseerr/promptseerr/internal/media"
)

// SystemPrompt instructs the model to return an index and an optional profile.
const SystemPrompt = `You're an assistant that selects the best media and media profile from a list of search results according to the user's request.

Analyze the search results and return the best media index from the list (zero-based) and the profile id.
Use a profile id only when the user asked for a specific quality or language; otherwise return null.

Examples:
- "I want to watch Breaking Bad season 1" → { "index": 4, "profile": null }
- "I need the movie Shrek" → { "index": 2, "profile": null }
- "Let's watch the departed in 4K" → { "index": 1, "profile": 4 }

Return ONLY the JSON without any markdown formatting.`

// Simplified is the candidate view shown to the model. It carries no backend
// identifiers.
type Simplified struct {
	Title      string          `json:"title"`
	Year       int             `json:"year"`
	MediaType  media.MediaType `json:"mediaType"`
	Popularity float64         `json:"popularity"`
}

type reply struct {
	Index   *int `json:"index" validate:"required,min=0"`
	Profile *int `json:"profile" validate:"omitempty,gt=0"`
}

// Selector obtains a Selection from the gateway.
type Selector struct {
	gateway  llm.Gateway
	validate *validator.Validate
	logger   zerolog.Logger
}

// New creates a selector.
func New(gateway llm.Gateway, logger zerolog.Logger) *Selector {
	return &Selector{
		gateway:  gateway,
		validate: llm.NewValidator(),
		logger:   logger.With().Str("component", "selector").Logger(),
	}
}

// Simplify strips candidates down to what the model may see.
func Simplify(candidates []media.Candidate) []Simplified {
	out := make([]Simplified, len(candidates))
	for i, c := range candidates {
		out[i] = Simplified{Title: c.Title, Year: c.Year, MediaType: c.MediaType, Popularity: c.Popularity}
	}
	return out
}

// Pick returns the model's choice. The index is not bounds-checked here.
func (s *Selector) Pick(ctx context.Context, text string, candidates []media.Candidate, profiles []media.Profile) (media.Selection, error) {
	content, err := userContent(text, candidates, profiles)
	if err != nil {
		return media.Selection{}, err
	}

	resp, err := s.gateway.Call(ctx, llm.Request{
		System:   SystemPrompt,
		Messages: []llm.Message{llm.UserMessage(content)},
	})
	if err != nil {
		if apperr.KindOf(err) == "" {
			err = apperr.NewLLMCallError(s.gateway.Name(), err)
		}
		return media.Selection{}, err
	}
	s.logger.Debug().Str("response", resp.Text).Msg("Selection response")

	var out reply
	if err := llm.DecodeJSON(resp.Text, &out); err != nil {
		return media.Selection{}, apperr.NewInvalidSelectionError("model reply is not a selection object", err)
	}
	if err := s.validate.Struct(out); err != nil {
		return media.Selection{}, apperr.NewInvalidSelectionError(llm.ValidationMessage(err), err)
	}

	sel := media.Selection{Index: *out.Index, Profile: out.Profile}
	s.logger.Debug().Int("index", sel.Index).Interface("profile", sel.Profile).Msg("Candidate selected")
	return sel, nil
}

func userContent(text string, candidates []media.Candidate, profiles []media.Profile) (string, error) {
	if profiles == nil {
		profiles = []media.Profile{}
	}
	// Profiles are sent whole, including cutoff and item quality names.
	profilesJSON, err := json.Marshal(profiles)
	if err != nil {
		return "", fmt.Errorf("encode profiles: %w", err)
	}
	resultsJSON, err := json.Marshal(Simplify(candidates))
	if err != nil {
		return "", fmt.Errorf("encode candidates: %w", err)
	}
	return fmt.Sprintf("User request: %s\nProfiles: %s\nSearch results: %s", text, profilesJSON, resultsJSON), nil
}

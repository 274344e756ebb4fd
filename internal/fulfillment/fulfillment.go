// Package fulfillment submits create-request calls to the backend.
package fulfillment

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/promptseerr/promptseerr/internal/apperr"
	"github.com/promptseerr/promptseerr/internal/media"
	"github.com/promptseerr/promptseerr/internal/overseerr"
)

// Backend creates requests.
type Backend interface {
	CreateRequest(ctx context.Context, payload overseerr.RequestPayload) (*overseerr.RequestRecord, error)
}

// Order is everything needed to request one title.
type Order struct {
	Candidate media.Candidate
	// Profile is nil when the backend default applies.
	Profile *int
	// Seasons is nil when no season list is sent. Only the "all" keyword and
	// explicit lists are meaningful here.
	Seasons *media.SeasonsSelector
}

// Client builds payloads and submits them.
type Client struct {
	backend Backend
	logger  zerolog.Logger
}

// NewClient creates a fulfillment client.
func NewClient(backend Backend, logger zerolog.Logger) *Client {
	return &Client{
		backend: backend,
		logger:  logger.With().Str("component", "fulfillment").Logger(),
	}
}

// BuildPayload translates an order into the backend request body. Movies
// never carry seasons. Series carry a TVDB id, falling back to the media id
// when none is known.
func BuildPayload(o Order) overseerr.RequestPayload {
	c := o.Candidate
	p := overseerr.RequestPayload{
		MediaType: c.MediaType.String(),
		MediaID:   c.ID,
	}
	if o.Profile != nil {
		p.ProfileID = *o.Profile
	}
	if !c.IsSeries() {
		return p
	}

	p.TVDBID = c.TVDBID
	if p.TVDBID == 0 {
		p.TVDBID = c.ID
	}
	switch {
	case o.Seasons == nil:
	case o.Seasons.IsAll():
		p.Seasons = string(media.KeywordAll)
	case o.Seasons.IsList():
		p.Seasons = o.Seasons.Numbers()
	}
	return p
}

// Submit sends the order. A success response without a body is an
// invalid backend response.
func (c *Client) Submit(ctx context.Context, o Order) (*overseerr.RequestRecord, error) {
	payload := BuildPayload(o)
	c.logger.Debug().Interface("payload", payload).Msg("Submitting request")

	record, err := c.backend.CreateRequest(ctx, payload)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperr.NewInvalidBackendResponseError("overseerr", "create request returned an empty body")
	}

	c.logger.Info().
		Int("requestId", record.ID).
		Str("title", o.Candidate.Title).
		Str("mediaType", payload.MediaType).
		Msg("Request submitted")

	return record, nil
}

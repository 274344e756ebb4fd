// Package agent runs one media request from free text to a fulfillment call.
//
// The workflow is linear:
//
//	ExtractIntent → SearchAndLoadProfiles → SelectCandidate → EnrichSelected
//	→ ResolveNeededSeasons → CheckAvailability → SubmitFulfillment
//
// CheckAvailability may end the workflow early with a message and no
// fulfillment call. Every failure carries an apperr kind for the caller to
// translate.
package agent

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"

	"github.com/promptseerr/promptseerr/internal/apperr"
	"github.com/promptseerr/promptseerr/internal/fulfillment"
	"github.com/promptseerr/promptseerr/internal/media"
	"github.com/promptseerr/promptseerr/internal/overseerr"
	"github.com/promptseerr/promptseerr/internal/seasons"
)

// IntentExtractor turns text into a request.
type IntentExtractor interface {
	Extract(ctx context.Context, text string) (media.Request, error)
}

// Catalog searches and enriches candidates.
type Catalog interface {
	Search(ctx context.Context, title string, mediaType media.MediaType) ([]media.Candidate, error)
	GetProfiles(ctx context.Context, mediaType media.MediaType) ([]media.Profile, error)
	Enrich(ctx context.Context, c media.Candidate) media.Candidate
}

// CandidateSelector picks a candidate and profile.
type CandidateSelector interface {
	Pick(ctx context.Context, text string, candidates []media.Candidate, profiles []media.Profile) (media.Selection, error)
}

// Fulfiller submits requests.
type Fulfiller interface {
	Submit(ctx context.Context, o fulfillment.Order) (*overseerr.RequestRecord, error)
}

// Agent wires the pipeline stages together.
type Agent struct {
	intent      IntentExtractor
	catalog     Catalog
	selector    CandidateSelector
	fulfillment Fulfiller
	logger      zerolog.Logger
}

// New creates an agent.
func New(intent IntentExtractor, catalog Catalog, selector CandidateSelector, fulfiller Fulfiller, logger zerolog.Logger) *Agent {
	return &Agent{
		intent:      intent,
		catalog:     catalog,
		selector:    selector,
		fulfillment: fulfiller,
		logger:      logger.With().Str("component", "agent").Logger(),
	}
}

// HandleMediaRequest returns the user-facing message for prompt.
// Downstream calls are detached from ctx cancellation so a client
// disconnect does not abort work already in flight; their own transport
// timeouts still apply.
func (a *Agent) HandleMediaRequest(ctx context.Context, prompt string) (string, error) {
	ctx = context.WithoutCancel(ctx)

	a.logger.Debug().Str("state", "ExtractIntent").Str("prompt", prompt).Msg("Handling media request")
	req, err := a.intent.Extract(ctx, prompt)
	if err != nil {
		return "", err
	}

	a.logger.Debug().Str("state", "SearchAndLoadProfiles").Str("title", req.Title).Str("mediaType", req.MediaType.String()).Msg("Searching catalog")
	candidates, profiles, err := a.searchAndLoadProfiles(ctx, req)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		a.logger.Info().Str("title", req.Title).Msg("No matching candidates")
		return notFoundMessage(req), nil
	}

	a.logger.Debug().Str("state", "SelectCandidate").Int("candidates", len(candidates)).Int("profiles", len(profiles)).Msg("Selecting candidate")
	sel, err := a.selector.Pick(ctx, prompt, candidates, profiles)
	if err != nil {
		return "", err
	}
	if sel.Index < 0 || sel.Index >= len(candidates) {
		return "", apperr.NewInvalidSelectionError(
			fmt.Sprintf("index %d is outside the %d candidates", sel.Index, len(candidates)), nil)
	}

	a.logger.Debug().Str("state", "EnrichSelected").Int("index", sel.Index).Msg("Enriching selection")
	selected := a.catalog.Enrich(ctx, candidates[sel.Index])

	a.logger.Debug().Str("state", "ResolveNeededSeasons").Stringer("seasons", req.Seasons).Msg("Resolving seasons")
	plan := a.resolveSeasons(selected, req)

	a.logger.Debug().Str("state", "CheckAvailability").Msg("Checking availability")
	if msg, done := checkAvailability(selected, plan); done {
		a.logger.Info().Str("title", selected.Title).Msg("Request already satisfied")
		return msg, nil
	}

	a.logger.Debug().Str("state", "SubmitFulfillment").Msg("Submitting request")
	if _, err := a.fulfillment.Submit(ctx, fulfillment.Order{
		Candidate: selected,
		Profile:   sel.Profile,
		Seasons:   plan.submit,
	}); err != nil {
		return "", err
	}

	a.logger.Info().
		Str("title", selected.Title).
		Str("mediaType", selected.MediaType.String()).
		Ints("seasons", plan.queued).
		Msg("Media requested")

	return successMessage(selected, req, plan.queued), nil
}

// searchAndLoadProfiles runs both lookups concurrently and waits for both.
// The first failure cancels the other branch and is returned.
func (a *Agent) searchAndLoadProfiles(ctx context.Context, req media.Request) ([]media.Candidate, []media.Profile, error) {
	var (
		candidates []media.Candidate
		profiles   []media.Profile
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		var err error
		candidates, err = a.catalog.Search(ctx, req.Title, req.MediaType)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		profiles, err = a.catalog.GetProfiles(ctx, req.MediaType)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, nil, err
	}
	return candidates, profiles, nil
}

// seasonPlan is the outcome of season resolution for one candidate.
type seasonPlan struct {
	// checked is true when a resolved list exists and an empty one means
	// the request is already satisfied.
	checked bool
	// submit is the selector sent to fulfillment, nil for none.
	submit *media.SeasonsSelector
	// queued lists the concrete season numbers for the success message.
	queued []int
}

func (a *Agent) resolveSeasons(c media.Candidate, req media.Request) seasonPlan {
	if !c.IsSeries() || req.Seasons == nil {
		return seasonPlan{}
	}
	if req.Seasons.IsAll() {
		return seasonPlan{submit: req.Seasons}
	}

	needed := seasons.New(c.Seasons).DetermineNeeded(req.Seasons)
	if needed.Unknown {
		a.logger.Warn().
			Str("title", c.Title).
			Int("id", c.ID).
			Stringer("seasons", req.Seasons).
			Msg("Season list unknown to the backend, skipping availability check")
		switch {
		case req.Seasons.IsList():
			return seasonPlan{submit: req.Seasons, queued: req.Seasons.Numbers()}
		case req.Seasons.Keyword() == media.KeywordFirst, req.Seasons.Keyword() == media.KeywordNext:
			// Nothing is held, so both resolve to the first season.
			return seasonPlan{submit: media.SelectSeasons(1), queued: []int{1}}
		}
		return seasonPlan{}
	}

	plan := seasonPlan{checked: true, queued: needed.Seasons}
	if len(needed.Seasons) > 0 {
		plan.submit = media.SelectSeasons(needed.Seasons...)
	}
	return plan
}

func checkAvailability(c media.Candidate, plan seasonPlan) (string, bool) {
	if !c.IsSeries() && c.Status == media.StatusAvailable {
		return alreadyAvailableMessage(c.Title), true
	}
	if c.IsSeries() && plan.checked && len(plan.queued) == 0 {
		return seasonsSatisfiedMessage(c.Title), true
	}
	return "", false
}

// Package catalog turns backend search and detail responses into candidates.
package catalog

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/promptseerr/promptseerr/internal/apperr"
	"github.com/promptseerr/promptseerr/internal/media"
	"github.com/promptseerr/promptseerr/internal/overseerr"
)

// Backend is the subset of the Overseerr API used by the catalog.
type Backend interface {
	Search(ctx context.Context, query string) ([]overseerr.SearchResult, error)
	GetServiceSettings(ctx context.Context, kind overseerr.ServiceKind) (overseerr.ServiceSettingsList, error)
	GetServiceProfiles(ctx context.Context, kind overseerr.ServiceKind, serviceID int) ([]overseerr.QualityProfile, error)
	GetSeriesDetails(ctx context.Context, id int) (*overseerr.TVDetails, error)
}

// Service searches, ranks, and enriches candidates.
type Service struct {
	backend Backend
	logger  zerolog.Logger
}

// NewService creates a catalog service.
func NewService(backend Backend, logger zerolog.Logger) *Service {
	return &Service{
		backend: backend,
		logger:  logger.With().Str("component", "catalog").Logger(),
	}
}

// Search returns results of the requested type ordered by descending
// popularity. Ties keep backend order. No match is an empty list.
func (s *Service) Search(ctx context.Context, title string, mediaType media.MediaType) ([]media.Candidate, error) {
	results, err := s.backend.Search(ctx, title)
	if err != nil {
		return nil, err
	}

	candidates := make([]media.Candidate, 0, len(results))
	for _, r := range results {
		if r.MediaType != string(mediaType) {
			continue
		}
		candidates = append(candidates, toCandidate(r))
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Popularity > candidates[j].Popularity
	})

	s.logger.Debug().
		Str("title", title).
		Str("mediaType", mediaType.String()).
		Int("results", len(results)).
		Int("candidates", len(candidates)).
		Msg("Search completed")

	return candidates, nil
}

// GetProfiles loads the quality profiles of the service that acquires
// mediaType. An unconfigured service yields an empty list.
func (s *Service) GetProfiles(ctx context.Context, mediaType media.MediaType) ([]media.Profile, error) {
	kind := ServiceFor(mediaType)

	list, err := s.backend.GetServiceSettings(ctx, kind)
	if err != nil {
		if isNotFound(err) {
			return []media.Profile{}, nil
		}
		return nil, err
	}

	svc, ok := list.Preferred()
	if !ok {
		s.logger.Debug().Str("service", string(kind)).Msg("No service instance configured")
		return []media.Profile{}, nil
	}

	raw, err := s.backend.GetServiceProfiles(ctx, kind, svc.ID)
	if err != nil {
		if isNotFound(err) {
			return []media.Profile{}, nil
		}
		return nil, err
	}

	profiles := make([]media.Profile, 0, len(raw))
	for _, p := range raw {
		profiles = append(profiles, toProfile(p))
	}
	return profiles, nil
}

// Enrich fills the season list of a series that has none. Failures are
// logged and the candidate is returned unchanged.
func (s *Service) Enrich(ctx context.Context, c media.Candidate) media.Candidate {
	if !c.IsSeries() || c.HasSeasons() {
		return c
	}

	details, err := s.backend.GetSeriesDetails(ctx, c.ID)
	if err != nil {
		s.logger.Warn().Err(err).Int("id", c.ID).Str("title", c.Title).Msg("Failed to enrich series, continuing without seasons")
		return c
	}

	enriched := c
	enriched.Seasons = seasonsFromDetails(details)
	if enriched.TVDBID == 0 {
		enriched.TVDBID = details.ExternalIDs.TVDBID
	}
	if details.MediaInfo != nil {
		if enriched.TVDBID == 0 {
			enriched.TVDBID = details.MediaInfo.TVDBID
		}
		if enriched.Status == "" {
			enriched.Status = MapStatus(details.MediaInfo.Status)
		}
	}

	s.logger.Debug().Int("id", c.ID).Int("seasons", len(enriched.Seasons)).Msg("Series enriched")
	return enriched
}

// ServiceFor returns the acquisition service kind for a media type.
func ServiceFor(mediaType media.MediaType) overseerr.ServiceKind {
	if mediaType == media.MediaTypeTV {
		return overseerr.ServiceSonarr
	}
	return overseerr.ServiceRadarr
}

// MapStatus converts backend status codes 1..5 to the domain enum.
// Any other code maps to the absent status.
func MapStatus(code overseerr.MediaStatus) media.Status {
	switch code {
	case overseerr.StatusUnknown:
		return media.StatusUnknown
	case overseerr.StatusPending:
		return media.StatusPending
	case overseerr.StatusProcessing:
		return media.StatusProcessing
	case overseerr.StatusPartiallyAvailable:
		return media.StatusPartiallyAvailable
	case overseerr.StatusAvailable:
		return media.StatusAvailable
	default:
		return ""
	}
}

func toCandidate(r overseerr.SearchResult) media.Candidate {
	c := media.Candidate{
		ID:         r.ID,
		Title:      r.Title,
		Year:       yearOf(r.ReleaseDate),
		MediaType:  media.MediaType(r.MediaType),
		Popularity: r.Popularity,
	}
	if c.Title == "" {
		c.Title = r.Name
	}
	if c.Year == 0 {
		c.Year = yearOf(r.FirstAirDate)
	}
	if info := r.MediaInfo; info != nil {
		c.TVDBID = info.TVDBID
		c.Status = MapStatus(info.Status)
		// Specials (season 0) are dropped; an all-specials list stays nil so
		// enrichment still runs.
		for _, season := range info.Seasons {
			if season.SeasonNumber <= 0 {
				continue
			}
			c.Seasons = append(c.Seasons, media.Season{Number: season.SeasonNumber, Status: MapStatus(season.Status)})
		}
	}
	return c
}

// seasonsFromDetails keeps the details' season order, drops specials, and
// takes each season's status from mediaInfo.
func seasonsFromDetails(d *overseerr.TVDetails) []media.Season {
	statuses := map[int]overseerr.MediaStatus{}
	if d.MediaInfo != nil {
		for _, s := range d.MediaInfo.Seasons {
			statuses[s.SeasonNumber] = s.Status
		}
	}

	out := make([]media.Season, 0, len(d.Seasons))
	for _, s := range d.Seasons {
		if s.SeasonNumber <= 0 {
			continue
		}
		out = append(out, media.Season{Number: s.SeasonNumber, Status: MapStatus(statuses[s.SeasonNumber])})
	}
	return out
}

func toProfile(p overseerr.QualityProfile) media.Profile {
	items := make([]media.ProfileItem, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, media.ProfileItem{
			Quality: media.QualityRef{ID: it.Quality.ID, Name: it.Quality.Name},
			Allowed: it.Allowed,
		})
	}
	return media.Profile{ID: p.ID, Name: p.Name, Cutoff: p.Cutoff, Items: items}
}

func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

func isNotFound(err error) bool {
	var e *apperr.Error
	return errors.As(err, &e) && e.Kind == apperr.KindExternalService && e.StatusCode == http.StatusNotFound
}

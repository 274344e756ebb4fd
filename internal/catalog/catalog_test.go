package catalog

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/promptseerr/promptseerr/internal/apperr"
	"github.com/promptseerr/promptseerr/internal/media"
	"github.com/promptseerr/promptseerr/internal/overseerr"
)

type fakeBackend struct {
	results     []overseerr.SearchResult
	searchErr   error
	settings    overseerr.ServiceSettingsList
	settingsErr error
	profiles    map[int][]overseerr.QualityProfile
	profilesErr error
	details     *overseerr.TVDetails
	detailsErr  error

	settingsKind overseerr.ServiceKind
	detailCalls  int
}

func (f *fakeBackend) Search(ctx context.Context, query string) ([]overseerr.SearchResult, error) {
	return f.results, f.searchErr
}

func (f *fakeBackend) GetServiceSettings(ctx context.Context, kind overseerr.ServiceKind) (overseerr.ServiceSettingsList, error) {
	f.settingsKind = kind
	return f.settings, f.settingsErr
}

func (f *fakeBackend) GetServiceProfiles(ctx context.Context, kind overseerr.ServiceKind, id int) ([]overseerr.QualityProfile, error) {
	return f.profiles[id], f.profilesErr
}

func (f *fakeBackend) GetSeriesDetails(ctx context.Context, id int) (*overseerr.TVDetails, error) {
	f.detailCalls++
	return f.details, f.detailsErr
}

func TestService_SearchFiltersAndSortsStable(t *testing.T) {
	backend := &fakeBackend{results: []overseerr.SearchResult{
		{ID: 1, MediaType: "movie", Title: "Dune", ReleaseDate: "2021-09-15", Popularity: 50},
		{ID: 2, MediaType: "tv", Name: "Dune: Prophecy", FirstAirDate: "2024-11-17", Popularity: 90},
		{ID: 3, MediaType: "movie", Title: "Dune", ReleaseDate: "1984-12-14", Popularity: 80},
		{ID: 4, MediaType: "person", Name: "Frank Herbert", Popularity: 99},
		{ID: 5, MediaType: "movie", Title: "Dune: Part Two", ReleaseDate: "2024-02-27", Popularity: 50,
			MediaInfo: &overseerr.MediaInfo{Status: overseerr.StatusAvailable}},
	}}

	got, err := NewService(backend, zerolog.Nop()).Search(context.Background(), "Dune", media.MediaTypeMovie)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	var ids []int
	for _, c := range got {
		if c.MediaType != media.MediaTypeMovie {
			t.Errorf("Search() returned %s candidate %d", c.MediaType, c.ID)
		}
		ids = append(ids, c.ID)
	}
	if want := []int{3, 1, 5}; !reflect.DeepEqual(ids, want) {
		t.Errorf("Search() order = %v, want %v", ids, want)
	}
	if got[0].Year != 1984 {
		t.Errorf("Year = %d, want 1984", got[0].Year)
	}
	if got[2].Status != media.StatusAvailable {
		t.Errorf("Status = %q, want available", got[2].Status)
	}
	if got[1].Status != "" {
		t.Errorf("Status without mediaInfo = %q, want absent", got[1].Status)
	}
}

func TestService_SearchMapsSeries(t *testing.T) {
	backend := &fakeBackend{results: []overseerr.SearchResult{
		{ID: 1396, MediaType: "tv", Name: "Breaking Bad", FirstAirDate: "2008-01-20",
			MediaInfo: &overseerr.MediaInfo{TVDBID: 81189, Status: overseerr.StatusPartiallyAvailable,
				Seasons: []overseerr.SeasonInfo{{SeasonNumber: 2, Status: overseerr.StatusProcessing}, {SeasonNumber: 1, Status: overseerr.StatusAvailable}}}},
	}}

	got, err := NewService(backend, zerolog.Nop()).Search(context.Background(), "Breaking Bad", media.MediaTypeTV)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	want := media.Candidate{
		ID: 1396, TVDBID: 81189, Title: "Breaking Bad", Year: 2008, MediaType: media.MediaTypeTV,
		Status:  media.StatusPartiallyAvailable,
		Seasons: []media.Season{{Number: 2, Status: media.StatusProcessing}, {Number: 1, Status: media.StatusAvailable}},
	}
	if len(got) != 1 || !reflect.DeepEqual(got[0], want) {
		t.Errorf("Search() = %+v, want %+v", got, want)
	}
}

func TestService_SearchDropsSpecials(t *testing.T) {
	tests := []struct {
		name    string
		seasons []overseerr.SeasonInfo
		want    []media.Season
	}{
		{
			name: "specials first",
			seasons: []overseerr.SeasonInfo{
				{SeasonNumber: 0, Status: overseerr.StatusAvailable},
				{SeasonNumber: 1, Status: overseerr.StatusUnknown},
			},
			want: []media.Season{{Number: 1, Status: media.StatusUnknown}},
		},
		{
			name:    "only specials",
			seasons: []overseerr.SeasonInfo{{SeasonNumber: 0, Status: overseerr.StatusAvailable}},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{results: []overseerr.SearchResult{
				{ID: 1396, MediaType: "tv", Name: "Breaking Bad", MediaInfo: &overseerr.MediaInfo{Seasons: tt.seasons}},
			}}

			got, err := NewService(backend, zerolog.Nop()).Search(context.Background(), "Breaking Bad", media.MediaTypeTV)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("Search() returned %d candidates, want 1", len(got))
			}
			if !reflect.DeepEqual(got[0].Seasons, tt.want) {
				t.Errorf("Search() seasons = %+v, want %+v", got[0].Seasons, tt.want)
			}
		})
	}
}

func TestService_SearchNoMatchIsEmpty(t *testing.T) {
	got, err := NewService(&fakeBackend{}, zerolog.Nop()).Search(context.Background(), "zzz", media.MediaTypeTV)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Search() = %#v, want empty non-nil list", got)
	}
}

func TestService_SearchPropagatesError(t *testing.T) {
	backendErr := apperr.NewExternalServiceError("overseerr", http.StatusBadGateway, 0, errors.New("down"))
	_, err := NewService(&fakeBackend{searchErr: backendErr}, zerolog.Nop()).Search(context.Background(), "x", media.MediaTypeMovie)
	if !apperr.IsExternalService(err) {
		t.Errorf("Search() error = %v, want external service error", err)
	}
}

func TestMapStatus(t *testing.T) {
	tests := map[overseerr.MediaStatus]media.Status{
		0: "",
		1: media.StatusUnknown,
		2: media.StatusPending,
		3: media.StatusProcessing,
		4: media.StatusPartiallyAvailable,
		5: media.StatusAvailable,
		6: "",
	}
	for code, want := range tests {
		if got := MapStatus(code); got != want {
			t.Errorf("MapStatus(%d) = %q, want %q", code, got, want)
		}
	}
}

func TestService_GetProfiles(t *testing.T) {
	backend := &fakeBackend{
		settings: overseerr.ServiceSettingsList{{ID: 1, Is4K: true, IsDefault: true}, {ID: 2, IsDefault: true}},
		profiles: map[int][]overseerr.QualityProfile{
			2: {{ID: 6, Name: "HD-1080p", Cutoff: 7}},
		},
	}

	got, err := NewService(backend, zerolog.Nop()).GetProfiles(context.Background(), media.MediaTypeTV)
	if err != nil {
		t.Fatalf("GetProfiles() error = %v", err)
	}
	if backend.settingsKind != overseerr.ServiceSonarr {
		t.Errorf("service kind = %q, want sonarr", backend.settingsKind)
	}
	want := []media.Profile{{ID: 6, Name: "HD-1080p", Cutoff: 7, Items: []media.ProfileItem{}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetProfiles() = %+v, want %+v", got, want)
	}
}

func TestService_GetProfilesNotConfigured(t *testing.T) {
	tests := []struct {
		name    string
		backend *fakeBackend
	}{
		{"no instances", &fakeBackend{}},
		{"no profiles", &fakeBackend{settings: overseerr.ServiceSettingsList{{ID: 1}}}},
		{"settings not found", &fakeBackend{settingsErr: apperr.NewExternalServiceError("overseerr", http.StatusNotFound, 0, nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewService(tt.backend, zerolog.Nop()).GetProfiles(context.Background(), media.MediaTypeMovie)
			if err != nil {
				t.Fatalf("GetProfiles() error = %v", err)
			}
			if len(got) != 0 {
				t.Errorf("GetProfiles() = %+v, want empty", got)
			}
			if tt.backend.settingsKind != overseerr.ServiceRadarr {
				t.Errorf("service kind = %q, want radarr", tt.backend.settingsKind)
			}
		})
	}
}

func TestService_GetProfilesTransportError(t *testing.T) {
	backend := &fakeBackend{settingsErr: apperr.NewTimeoutError("overseerr", context.DeadlineExceeded)}
	if _, err := NewService(backend, zerolog.Nop()).GetProfiles(context.Background(), media.MediaTypeMovie); !apperr.IsTimeout(err) {
		t.Errorf("GetProfiles() error = %v, want timeout", err)
	}
}

func TestService_Enrich(t *testing.T) {
	backend := &fakeBackend{details: &overseerr.TVDetails{
		ID:          1668,
		ExternalIDs: overseerr.ExternalIDs{TVDBID: 79168},
		Seasons:     []overseerr.TVSeason{{SeasonNumber: 0}, {SeasonNumber: 1}, {SeasonNumber: 3}, {SeasonNumber: 2}},
		MediaInfo: &overseerr.MediaInfo{
			Status:  overseerr.StatusPartiallyAvailable,
			Seasons: []overseerr.SeasonInfo{{SeasonNumber: 1, Status: overseerr.StatusAvailable}},
		},
	}}
	in := media.Candidate{ID: 1668, Title: "Friends", MediaType: media.MediaTypeTV}

	got := NewService(backend, zerolog.Nop()).Enrich(context.Background(), in)

	wantSeasons := []media.Season{
		{Number: 1, Status: media.StatusAvailable},
		{Number: 3},
		{Number: 2},
	}
	if !reflect.DeepEqual(got.Seasons, wantSeasons) {
		t.Errorf("Enrich() seasons = %+v, want %+v", got.Seasons, wantSeasons)
	}
	if got.TVDBID != 79168 {
		t.Errorf("Enrich() TVDBID = %d, want 79168", got.TVDBID)
	}
	if got.Status != media.StatusPartiallyAvailable {
		t.Errorf("Enrich() status = %q", got.Status)
	}
	if in.Seasons != nil {
		t.Errorf("Enrich() mutated its input")
	}
}

func TestService_EnrichSkips(t *testing.T) {
	tests := []struct {
		name string
		in   media.Candidate
	}{
		{"movie", media.Candidate{ID: 1, MediaType: media.MediaTypeMovie}},
		{"series with seasons", media.Candidate{ID: 2, MediaType: media.MediaTypeTV, Seasons: []media.Season{{Number: 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{}
			got := NewService(backend, zerolog.Nop()).Enrich(context.Background(), tt.in)
			if backend.detailCalls != 0 {
				t.Errorf("Enrich() fetched details %d times", backend.detailCalls)
			}
			if !reflect.DeepEqual(got, tt.in) {
				t.Errorf("Enrich() = %+v, want %+v", got, tt.in)
			}
		})
	}
}

func TestService_EnrichFailureReturnsOriginal(t *testing.T) {
	backend := &fakeBackend{detailsErr: errors.New("boom")}
	in := media.Candidate{ID: 7, Title: "Lost", MediaType: media.MediaTypeTV, Seasons: []media.Season{}}

	got := NewService(backend, zerolog.Nop()).Enrich(context.Background(), in)
	if backend.detailCalls != 1 {
		t.Errorf("Enrich() detail calls = %d, want 1", backend.detailCalls)
	}
	if !reflect.DeepEqual(got, in) {
		t.Errorf("Enrich() = %+v, want original %+v", got, in)
	}
}

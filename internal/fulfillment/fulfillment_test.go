package fulfillment

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/promptseerr/promptseerr/internal/apperr"
	"github.com/promptseerr/promptseerr/internal/media"
	"github.com/promptseerr/promptseerr/internal/overseerr"
	"github.com/promptseerr/promptseerr/internal/testutil"
)

type fakeBackend struct {
	record   *overseerr.RequestRecord
	err      error
	payloads []overseerr.RequestPayload
}

func (f *fakeBackend) CreateRequest(ctx context.Context, p overseerr.RequestPayload) (*overseerr.RequestRecord, error) {
	f.payloads = append(f.payloads, p)
	return f.record, f.err
}

func TestBuildPayload(t *testing.T) {
	movie := media.Candidate{ID: 680, MediaType: media.MediaTypeMovie}
	series := media.Candidate{ID: 1668, TVDBID: 79168, MediaType: media.MediaTypeTV}

	tests := []struct {
		name  string
		order Order
		want  overseerr.RequestPayload
	}{
		{
			name:  "movie ignores seasons",
			order: Order{Candidate: movie, Seasons: media.SelectSeasons(1)},
			want:  overseerr.RequestPayload{MediaType: "movie", MediaID: 680},
		},
		{
			name:  "movie with profile",
			order: Order{Candidate: movie, Profile: testutil.IntPtr(4)},
			want:  overseerr.RequestPayload{MediaType: "movie", MediaID: 680, ProfileID: 4},
		},
		{
			name:  "series all",
			order: Order{Candidate: series, Seasons: media.AllSeasons()},
			want:  overseerr.RequestPayload{MediaType: "tv", MediaID: 1668, TVDBID: 79168, Seasons: "all"},
		},
		{
			name:  "series list",
			order: Order{Candidate: series, Seasons: media.SelectSeasons(2, 3)},
			want:  overseerr.RequestPayload{MediaType: "tv", MediaID: 1668, TVDBID: 79168, Seasons: []int{2, 3}},
		},
		{
			name:  "series without seasons",
			order: Order{Candidate: series},
			want:  overseerr.RequestPayload{MediaType: "tv", MediaID: 1668, TVDBID: 79168},
		},
		{
			name:  "series without tvdb id",
			order: Order{Candidate: media.Candidate{ID: 99, MediaType: media.MediaTypeTV}, Seasons: media.SelectSeasons(1)},
			want:  overseerr.RequestPayload{MediaType: "tv", MediaID: 99, TVDBID: 99, Seasons: []int{1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildPayload(tt.order); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildPayload() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClient_Submit(t *testing.T) {
	backend := &fakeBackend{record: &overseerr.RequestRecord{ID: 7}}
	record, err := NewClient(backend, testutil.NopLogger()).Submit(context.Background(), Order{
		Candidate: media.Candidate{ID: 680, Title: "The Departed", MediaType: media.MediaTypeMovie},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if record.ID != 7 || len(backend.payloads) != 1 {
		t.Errorf("Submit() = %+v, payloads = %d", record, len(backend.payloads))
	}
}

func TestClient_SubmitEmptyBody(t *testing.T) {
	_, err := NewClient(&fakeBackend{}, testutil.NopLogger()).Submit(context.Background(), Order{
		Candidate: media.Candidate{ID: 1, MediaType: media.MediaTypeMovie},
	})
	if !apperr.IsInvalidBackendResponse(err) {
		t.Errorf("Submit() error = %v, want invalid backend response", err)
	}
}

func TestClient_SubmitPropagatesBackendError(t *testing.T) {
	backendErr := apperr.NewExternalServiceError("overseerr", 500, 0, errors.New("boom"))
	_, err := NewClient(&fakeBackend{err: backendErr}, testutil.NopLogger()).Submit(context.Background(), Order{
		Candidate: media.Candidate{ID: 1, MediaType: media.MediaTypeMovie},
	})
	if !errors.Is(err, backendErr) {
		t.Errorf("Submit() error = %v, want %v", err, backendErr)
	}
}

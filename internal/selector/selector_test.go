package selector

import (
	"context"
	"strings"
	"testing"

	"github.com/promptseerr/promptseerr/internal/apperr"
	"github.com/promptseerr/promptseerr/internal/media"
	"github.com/promptseerr/promptseerr/internal/testutil"
)

var candidates = []media.Candidate{
	{ID: 680, TVDBID: 0, Title: "The Departed", Year: 2006, MediaType: media.MediaTypeMovie, Popularity: 40, Status: media.StatusAvailable},
	{ID: 1422, Title: "Infernal Affairs", Year: 2002, MediaType: media.MediaTypeMovie, Popularity: 12},
}

var profiles = []media.Profile{
	{ID: 4, Name: "Ultra-HD", Cutoff: 19, Items: []media.ProfileItem{{Quality: media.QualityRef{ID: 19, Name: "Bluray-2160p"}, Allowed: true}}},
}

func TestSelector_Pick(t *testing.T) {
	tests := []struct {
		name        string
		reply       string
		wantIndex   int
		wantProfile *int
	}{
		{"with profile", `{"index": 0, "profile": 4}`, 0, testutil.IntPtr(4)},
		{"null profile", `{"index": 1, "profile": null}`, 1, nil},
		{"missing profile", `{"index": 1}`, 1, nil},
		{"out of range index is not checked here", `{"index": 5, "profile": null}`, 5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := testutil.NewFakeGateway(tt.reply)
			got, err := New(gw, testutil.NopLogger()).Pick(context.Background(), "the departed in 4K", candidates, profiles)
			if err != nil {
				t.Fatalf("Pick() error = %v", err)
			}
			if got.Index != tt.wantIndex {
				t.Errorf("Pick() index = %d, want %d", got.Index, tt.wantIndex)
			}
			switch {
			case tt.wantProfile == nil && got.Profile != nil:
				t.Errorf("Pick() profile = %d, want nil", *got.Profile)
			case tt.wantProfile != nil && (got.Profile == nil || *got.Profile != *tt.wantProfile):
				t.Errorf("Pick() profile = %v, want %d", got.Profile, *tt.wantProfile)
			}
		})
	}
}

func TestSelector_PickSendsProfilesWithoutCandidateIdentifiers(t *testing.T) {
	gw := testutil.NewFakeGateway(`{"index":0,"profile":null}`)
	if _, err := New(gw, testutil.NopLogger()).Pick(context.Background(), "the departed", candidates, profiles); err != nil {
		t.Fatalf("Pick() error = %v", err)
	}

	content := gw.Requests()[0].Messages[0].Content
	for _, want := range []string{
		"User request: the departed",
		`Profiles: [{"id":4,"name":"Ultra-HD","cutoff":19,"items":[{"quality":{"id":19,"name":"Bluray-2160p"},"allowed":true}]}]`,
		`{"title":"The Departed","year":2006,"mediaType":"movie","popularity":40}`,
	} {
		if !strings.Contains(content, want) {
			t.Errorf("user content missing %q:\n%s", want, content)
		}
	}
	for _, leaked := range []string{"680", "1422", "available"} {
		if strings.Contains(content, leaked) {
			t.Errorf("user content leaks %q:\n%s", leaked, content)
		}
	}
}

func TestSelector_PickInvalidReplies(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"prose", "The first one."},
		{"missing index", `{"profile": 4}`},
		{"negative index", `{"index": -1, "profile": null}`},
		{"fractional index", `{"index": 1.5, "profile": null}`},
		{"zero profile", `{"index": 0, "profile": 0}`},
		{"negative profile", `{"index": 0, "profile": -3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := testutil.NewFakeGateway(tt.reply)
			_, err := New(gw, testutil.NopLogger()).Pick(context.Background(), "x", candidates, profiles)
			if !apperr.IsInvalidSelection(err) {
				t.Errorf("Pick() error = %v, want invalid selection", err)
			}
		})
	}
}

func TestSimplify(t *testing.T) {
	got := Simplify(candidates)
	if len(got) != 2 || got[1] != (Simplified{Title: "Infernal Affairs", Year: 2002, MediaType: media.MediaTypeMovie, Popularity: 12}) {
		t.Errorf("Simplify() = %+v", got)
	}
}

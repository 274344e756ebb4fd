// Package media holds the request-scoped domain model shared by the intent,
// catalog, selection, and fulfillment stages.
package media

// MediaType is the kind of title being requested.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// Valid reports whether t is one of the supported media types.
func (t MediaType) Valid() bool {
	return t == MediaTypeMovie || t == MediaTypeTV
}

func (t MediaType) String() string {
	return string(t)
}

// Status is the availability of a title or season on the backend.
// The zero value means the backend reported nothing.
type Status string

const (
	StatusUnknown            Status = "unknown"
	StatusPending            Status = "pending"
	StatusProcessing         Status = "processing"
	StatusPartiallyAvailable Status = "partially_available"
	StatusAvailable          Status = "available"
)

// Season is one entry of a series' season list.
type Season struct {
	Number int    `json:"seasonNumber"`
	Status Status `json:"status,omitempty"`
}

// Candidate is a search result considered as a match for a request.
type Candidate struct {
	ID         int       `json:"id"`
	TVDBID     int       `json:"tvdbId,omitempty"`
	Title      string    `json:"title"`
	Year       int       `json:"year"`
	MediaType  MediaType `json:"mediaType"`
	Popularity float64   `json:"popularity"`
	Status     Status    `json:"status,omitempty"`
	// Seasons is nil when the backend has not reported a season list.
	Seasons []Season `json:"seasons,omitempty"`
}

// IsSeries reports whether the candidate is a TV series.
func (c *Candidate) IsSeries() bool {
	return c.MediaType == MediaTypeTV
}

// HasSeasons reports whether a non-empty season list is known.
func (c *Candidate) HasSeasons() bool {
	return len(c.Seasons) > 0
}

// QualityRef identifies a single quality inside a profile.
type QualityRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProfileItem is a quality with its allowed flag.
type ProfileItem struct {
	Quality QualityRef `json:"quality"`
	Allowed bool       `json:"allowed"`
}

// Profile is a backend quality profile.
type Profile struct {
	ID     int           `json:"id"`
	Name   string        `json:"name"`
	Cutoff int           `json:"cutoff"`
	Items  []ProfileItem `json:"items"`
}

// Request is the structured intent extracted from free text.
type Request struct {
	Title     string           `json:"title"`
	MediaType MediaType        `json:"mediaType"`
	Seasons   *SeasonsSelector `json:"seasons,omitempty"`
	Quality   string           `json:"quality,omitempty"`
}

// HasSeasons reports whether a seasons selector was supplied.
func (r *Request) HasSeasons() bool {
	return r.Seasons != nil
}

// Selection is the model's pick from the candidate list.
type Selection struct {
	Index int `json:"index"`
	// Profile is nil when the backend default profile should apply.
	Profile *int `json:"profile"`
}

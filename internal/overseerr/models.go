package overseerr

import (
	"bytes"
	"encoding/json"
)

// MediaStatus is Overseerr's numeric availability code.
type MediaStatus int

const (
	StatusUnknown            MediaStatus = 1
	StatusPending            MediaStatus = 2
	StatusProcessing         MediaStatus = 3
	StatusPartiallyAvailable MediaStatus = 4
	StatusAvailable          MediaStatus = 5
)

// ServiceKind names a downstream acquisition service.
type ServiceKind string

const (
	ServiceRadarr ServiceKind = "radarr"
	ServiceSonarr ServiceKind = "sonarr"
)

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Page         int            `json:"page"`
	TotalPages   int            `json:"totalPages"`
	TotalResults int            `json:"totalResults"`
	Results      []SearchResult `json:"results"`
}

// SearchResult is one mixed-type search hit. Movies carry Title and
// ReleaseDate, series carry Name and FirstAirDate.
type SearchResult struct {
	ID           int        `json:"id"`
	MediaType    string     `json:"mediaType"`
	Title        string     `json:"title,omitempty"`
	Name         string     `json:"name,omitempty"`
	ReleaseDate  string     `json:"releaseDate,omitempty"`
	FirstAirDate string     `json:"firstAirDate,omitempty"`
	Popularity   float64    `json:"popularity"`
	MediaInfo    *MediaInfo `json:"mediaInfo,omitempty"`
}

// MediaInfo is Overseerr's local record of a title.
type MediaInfo struct {
	ID      int          `json:"id"`
	TMDBID  int          `json:"tmdbId"`
	TVDBID  int          `json:"tvdbId,omitempty"`
	Status  MediaStatus  `json:"status"`
	Seasons []SeasonInfo `json:"seasons,omitempty"`
}

// SeasonInfo is the per-season status inside MediaInfo.
type SeasonInfo struct {
	SeasonNumber int         `json:"seasonNumber"`
	Status       MediaStatus `json:"status,omitempty"`
}

// TVDetails is the body of GET /tv/{id}.
type TVDetails struct {
	ID           int         `json:"id"`
	Name         string      `json:"name"`
	FirstAirDate string      `json:"firstAirDate,omitempty"`
	Seasons      []TVSeason  `json:"seasons"`
	ExternalIDs  ExternalIDs `json:"externalIds"`
	MediaInfo    *MediaInfo  `json:"mediaInfo,omitempty"`
}

// TVSeason is one entry of the series season list.
type TVSeason struct {
	ID           int    `json:"id"`
	SeasonNumber int    `json:"seasonNumber"`
	Name         string `json:"name,omitempty"`
	AirDate      string `json:"airDate,omitempty"`
	EpisodeCount int    `json:"episodeCount"`
}

// ExternalIDs are cross-catalog identifiers.
type ExternalIDs struct {
	TVDBID int    `json:"tvdbId,omitempty"`
	IMDBID string `json:"imdbId,omitempty"`
}

// ServiceSettings describes one configured Radarr or Sonarr instance.
type ServiceSettings struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Is4K            bool   `json:"is4k"`
	IsDefault       bool   `json:"isDefault"`
	ActiveProfileID int    `json:"activeProfileId"`
	ActiveDirectory string `json:"activeDirectory"`
}

// ServiceSettingsList accepts either a single settings object or an array.
type ServiceSettingsList []ServiceSettings

func (l *ServiceSettingsList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var one ServiceSettings
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return err
		}
		*l = ServiceSettingsList{one}
		return nil
	}
	var many []ServiceSettings
	if err := json.Unmarshal(trimmed, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

// Preferred returns the default non-4K instance, else any default, else the first.
func (l ServiceSettingsList) Preferred() (ServiceSettings, bool) {
	if len(l) == 0 {
		return ServiceSettings{}, false
	}
	for _, s := range l {
		if s.IsDefault && !s.Is4K {
			return s, true
		}
	}
	for _, s := range l {
		if s.IsDefault {
			return s, true
		}
	}
	return l[0], true
}

// ServiceDetails is the body of GET /service/{kind}/{id}.
type ServiceDetails struct {
	Profiles        []QualityProfile `json:"profiles"`
	QualityProfiles []QualityProfile `json:"qualityProfiles"`
}

// AllProfiles returns whichever profile list the server populated.
func (d ServiceDetails) AllProfiles() []QualityProfile {
	if len(d.Profiles) > 0 {
		return d.Profiles
	}
	return d.QualityProfiles
}

// QualityProfile is a Radarr/Sonarr quality profile.
type QualityProfile struct {
	ID     int           `json:"id"`
	Name   string        `json:"name"`
	Cutoff int           `json:"cutoff,omitempty"`
	Items  []ProfileItem `json:"items,omitempty"`
}

// ProfileItem is one quality permitted or rejected by a profile.
type ProfileItem struct {
	Quality struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"quality"`
	Allowed bool `json:"allowed"`
}

// RequestPayload is the body of POST /request. Seasons is either the string
// "all" or a list of season numbers, and is omitted for movies.
type RequestPayload struct {
	MediaType string `json:"mediaType"`
	MediaID   int    `json:"mediaId"`
	TVDBID    int    `json:"tvdbId,omitempty"`
	ProfileID int    `json:"profileId,omitempty"`
	Seasons   any    `json:"seasons,omitempty"`
}

// RequestRecord is the created request returned by POST /request.
type RequestRecord struct {
	ID     int    `json:"id"`
	Status int    `json:"status"`
	Type   string `json:"type,omitempty"`
	Media  struct {
		ID        int         `json:"id"`
		MediaType string      `json:"mediaType"`
		TMDBID    int         `json:"tmdbId"`
		TVDBID    int         `json:"tvdbId,omitempty"`
		Status    MediaStatus `json:"status"`
	} `json:"media"`
}

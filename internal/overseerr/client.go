// Package overseerr is a client for the Overseerr/Jellyseerr v1 API.
package overseerr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/promptseerr/promptseerr/internal/apperr"
	"github.com/promptseerr/promptseerr/internal/config"
)

const (
	serviceName    = "overseerr"
	apiPrefix      = "/api/v1"
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 512
)

var errEmptyBody = errors.New("empty response body")

// Client is an Overseerr API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new Overseerr client.
func NewClient(cfg config.OverseerrConfig, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", serviceName).Logger(),
	}
}

// Name returns the service name used in errors.
func (c *Client) Name() string {
	return serviceName
}

// Search runs a mixed movie/tv search and returns the first result page.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	// Overseerr rejects '+' as a space in the query string.
	raw := "query=" + strings.ReplaceAll(url.QueryEscape(query), "+", "%20")

	var resp SearchResponse
	if err := c.doRequest(ctx, http.MethodGet, "/search", raw, nil, &resp); err != nil {
		return nil, c.requireBody(err, "search")
	}

	c.logger.Debug().
		Str("query", query).
		Int("results", len(resp.Results)).
		Msg("Search completed")

	return resp.Results, nil
}

// GetServiceSettings lists the configured instances of a service kind.
func (c *Client) GetServiceSettings(ctx context.Context, kind ServiceKind) (ServiceSettingsList, error) {
	var list ServiceSettingsList
	if err := c.doRequest(ctx, http.MethodGet, "/settings/"+string(kind), "", nil, &list); err != nil {
		if errors.Is(err, errEmptyBody) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

// GetServiceProfiles loads the quality profiles of one service instance.
func (c *Client) GetServiceProfiles(ctx context.Context, kind ServiceKind, serviceID int) ([]QualityProfile, error) {
	var details ServiceDetails
	path := fmt.Sprintf("/service/%s/%d", kind, serviceID)
	if err := c.doRequest(ctx, http.MethodGet, path, "", nil, &details); err != nil {
		if errors.Is(err, errEmptyBody) {
			return nil, nil
		}
		return nil, err
	}
	return details.AllProfiles(), nil
}

// GetSeriesDetails fetches a series with its season list.
func (c *Client) GetSeriesDetails(ctx context.Context, id int) (*TVDetails, error) {
	var details TVDetails
	if err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/tv/%d", id), "", nil, &details); err != nil {
		return nil, c.requireBody(err, "series details")
	}
	return &details, nil
}

// CreateRequest submits a media request. A nil record with a nil error means
// the server reported success without a body.
func (c *Client) CreateRequest(ctx context.Context, payload RequestPayload) (*RequestRecord, error) {
	var record RequestRecord
	if err := c.doRequest(ctx, http.MethodPost, "/request", "", payload, &record); err != nil {
		if errors.Is(err, errEmptyBody) {
			return nil, nil
		}
		return nil, err
	}

	c.logger.Debug().
		Int("requestId", record.ID).
		Str("mediaType", payload.MediaType).
		Int("mediaId", payload.MediaID).
		Msg("Request created")

	return &record, nil
}

func (c *Client) requireBody(err error, what string) error {
	if errors.Is(err, errEmptyBody) {
		return apperr.NewInvalidBackendResponseError(serviceName, what+" returned an empty body")
	}
	return err
}

// doRequest performs one API call and decodes a JSON body into result.
func (c *Client) doRequest(ctx context.Context, method, path, rawQuery string, body, result any) error {
	endpoint := c.baseURL + apiPrefix + path
	if rawQuery != "" {
		endpoint += "?" + rawQuery
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperr.FromTransport(serviceName, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.FromTransport(serviceName, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		retryAfter := apperr.ParseRetryAfter(resp.Header.Get("Retry-After"))
		c.logger.Warn().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("Overseerr request failed")
		return apperr.NewExternalServiceError(serviceName, resp.StatusCode, retryAfter,
			fmt.Errorf("%s %s: %s", method, path, snippet(data)))
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return errEmptyBody
	}
	if err := json.Unmarshal(trimmed, result); err != nil {
		return apperr.NewInvalidBackendResponseError(serviceName, fmt.Sprintf("%s %s: failed to decode response: %v", method, path, err))
	}
	return nil
}

func snippet(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptseerr/promptseerr/internal/apperr"
)

// scriptedOllama answers /api/chat with the given replies in order.
func scriptedOllama(t *testing.T, replies ...string) *httptest.Server {
	t.Helper()
	var mu sync.Mutex
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected llm path: %s", r.URL.Path)
		}
		mu.Lock()
		reply := replies[min(calls, len(replies)-1)]
		calls++
		mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]string{"role": "assistant", "content": reply},
			"done":    true,
		})
	}))
	t.Cleanup(server.Close)
	return server
}

type overseerrStub struct {
	searchStatus int
	mu           sync.Mutex
	requests     []map[string]any
}

func (o *overseerrStub) server(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/search":
			if o.searchStatus != 0 {
				w.WriteHeader(o.searchStatus)
				return
			}
			_, _ = w.Write([]byte(`{"results": [
				{"id": 603, "mediaType": "movie", "title": "The Matrix", "releaseDate": "1999-03-30", "popularity": 80}
			]}`))
		case "/api/v1/settings/radarr":
			_, _ = w.Write([]byte(`[]`))
		case "/api/v1/request":
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			o.mu.Lock()
			o.requests = append(o.requests, body)
			o.mu.Unlock()
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id": 9, "status": 1}`))
		default:
			t.Errorf("unexpected overseerr path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func setupEnv(t *testing.T, llmURL, overseerrURL string) {
	t.Helper()
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("LLM_BASE_URL", llmURL)
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("OVERSEERR_URL", overseerrURL)
	t.Setenv("OVERSEERR_API_KEY", "test-key")
	t.Setenv("LOG_PATH", "")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAskCommand_SubmitsMovie(t *testing.T) {
	llmServer := scriptedOllama(t,
		`{"title": "The Matrix", "mediaType": "movie"}`,
		`{"index": 0, "profile": null}`,
	)
	backend := &overseerrStub{}
	setupEnv(t, llmServer.URL, backend.server(t).URL)

	out, err := execute(t, "ask", "get", "me", "the", "matrix")
	require.NoError(t, err)
	assert.Contains(t, out, "Added The Matrix to your watchlist")

	require.Len(t, backend.requests, 1)
	assert.Equal(t, "movie", backend.requests[0]["mediaType"])
	assert.EqualValues(t, 603, backend.requests[0]["mediaId"])
}

func TestAskCommand_BackendFailure(t *testing.T) {
	llmServer := scriptedOllama(t, `{"title": "The Matrix", "mediaType": "movie"}`)
	backend := &overseerrStub{searchStatus: http.StatusInternalServerError}
	setupEnv(t, llmServer.URL, backend.server(t).URL)

	_, err := execute(t, "ask", "the matrix")
	require.Error(t, err)
	assert.Equal(t, apperr.MessageFailed, err.Error())
	assert.Empty(t, backend.requests)
}

func TestAskCommand_InvalidConfig(t *testing.T) {
	setupEnv(t, "http://localhost:11434", "")
	t.Setenv("OVERSEERR_API_KEY", "")

	_, err := execute(t, "ask", "the matrix")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "invalid config:"), err.Error())
	assert.Contains(t, err.Error(), "overseerr.api_key is required")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "promptseerr dev\n", out)
}

func TestConfigShowCommand_MasksSecrets(t *testing.T) {
	setupEnv(t, "http://localhost:11434", "http://overseerr.local:5055")
	t.Setenv("OVERSEERR_API_KEY", "super-secret-abcd")

	out, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "ollama")
	assert.Contains(t, out, "****abcd")
	assert.NotContains(t, out, "super-secret")
}

func TestConfigValidateCommand(t *testing.T) {
	setupEnv(t, "http://localhost:11434", "http://overseerr.local:5055")

	out, err := execute(t, "config", "validate")
	require.NoError(t, err)
	assert.Equal(t, "Configuration valid\n", out)
}

func TestMask(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "(not set)"},
		{"abc", "****"},
		{"0123456789", "****6789"},
	}
	for _, tt := range tests {
		if got := mask(tt.in); got != tt.want {
			t.Errorf("mask(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// Package testutil provides helpers shared by package tests.
package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/promptseerr/promptseerr/internal/llm"
)

// NewTestLogger creates a test logger that outputs to t.Log.
func NewTestLogger(t *testing.T) zerolog.Logger {
	t.Helper()
	return zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
}

// NopLogger returns a no-op logger for tests that don't need output.
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// IntPtr returns a pointer to an int.
func IntPtr(i int) *int {
	return &i
}

// FakeGateway replays scripted replies in order and records every request.
// Once the script is exhausted the last reply repeats.
type FakeGateway struct {
	mu       sync.Mutex
	replies  []string
	err      error
	requests []llm.Request
}

// NewFakeGateway returns a gateway that answers with replies in order.
func NewFakeGateway(replies ...string) *FakeGateway {
	return &FakeGateway{replies: replies}
}

// FailWith makes every subsequent call return err.
func (g *FakeGateway) FailWith(err error) *FakeGateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = err
	return g
}

func (g *FakeGateway) Name() string { return "fake" }

func (g *FakeGateway) Call(ctx context.Context, req llm.Request) (llm.Response, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := len(g.requests)
	g.requests = append(g.requests, req)
	if g.err != nil {
		return llm.Response{}, g.err
	}
	if len(g.replies) == 0 {
		return llm.Response{}, nil
	}
	if n >= len(g.replies) {
		n = len(g.replies) - 1
	}
	return llm.Response{Text: g.replies[n]}, nil
}

// Requests returns a copy of every request received.
func (g *FakeGateway) Requests() []llm.Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]llm.Request(nil), g.requests...)
}

// Calls returns the number of requests received.
func (g *FakeGateway) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.requests)
}

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, errors.New("boom") }

// staticTokens serves a fixed token.
type staticTokens string

func (s staticTokens) Token(context.Context) (string, error) { return string(s), nil }

// failingTokens simulates an unreadable token store.
type failingTokens struct{}

func (failingTokens) Token(context.Context) (string, error) { return "", errors.New("keychain locked") }

// memTokens records SetToken/ClearToken calls.
type memTokens struct {
	mu      sync.Mutex
	token   string
	setErr  error
	cleared int
}

func (m *memTokens) Token(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memTokens) SetToken(_ context.Context, tok string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.token = tok
	return nil
}

func (m *memTokens) ClearToken(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.cleared++
	return nil
}

func newRequester(t *testing.T, srv *httptest.Server, tokens interface {
	Token(context.Context) (string, error)
}) *Requester {
	t.Helper()
	return NewRequester(srv.URL, srv.Client(), tokens, zerolog.Nop())
}

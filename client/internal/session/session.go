// Package session holds the bearer token of the signed-in user.
//
// A Session is an explicit value handed to the HTTP façade and the cache;
// several sessions (e.g. two accounts in one process) can coexist as long
// as they use different stores or keys.
package session

import (
	"context"
	"fmt"

	"github.com/capydiary/capydiary/client/internal/kvstore"
)

// DefaultTokenKey is the storage key of the token unless configured otherwise.
const DefaultTokenKey = "access_token"

// TokenSource yields the current bearer token; "" means anonymous.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Session persists a single token value in a kvstore.Store.
type Session struct {
	store kvstore.Store
	key   string
}

// New binds a session to store under key (DefaultTokenKey when empty).
func New(store kvstore.Store, key string) *Session {
	if key == "" {
		key = DefaultTokenKey
	}
	return &Session{store: store, key: key}
}

// Key returns the storage key the token lives under.
func (s *Session) Key() string { return s.key }

// Token returns the stored token, or "" when none is set.
func (s *Session) Token(ctx context.Context) (string, error) {
	v, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if !ok {
		return "", nil
	}
	return string(v), nil
}

// SetToken overwrites the stored token. The value is not validated.
func (s *Session) SetToken(ctx context.Context, token string) error {
	if err := s.store.Set(ctx, s.key, []byte(token)); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// ClearToken removes the stored token. Clearing an empty session is a no-op.
func (s *Session) ClearToken(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Authenticated reports whether a non-empty token is stored.
func (s *Session) Authenticated(ctx context.Context) (bool, error) {
	tok, err := s.Token(ctx)
	if err != nil {
		return false, err
	}
	return tok != "", nil
}

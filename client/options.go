package client

// Functional options applied by New, in order. Later options win.

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/capydiary/capydiary/client/internal/kvstore"
)

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithHTTPTimeout bounds a single request, including reading the response.
// Prefer per-call context deadlines; this is a coarse safety net.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient replaces the underlying http.Client. Options that touch the
// transport or timeout should come after it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		c.http = hc
		return nil
	}
}

// WithDebugLogging dumps every request and response through the client
// logger when enabled. Dumps include the bearer token; do not enable in
// production.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			if _, already := c.http.Transport.(*debugTransport); !already {
				c.http.Transport = &debugTransport{base: c.http.Transport, log: &c.log}
			}
		}
		return nil
	}
}

// WithStore keeps the token, cache and preferences in st instead of the
// default SQLite file. The caller keeps ownership of st.
func WithStore(st kvstore.Store) Option {
	return func(c *Client) error {
		if st == nil {
			return fmt.Errorf("store cannot be nil")
		}
		c.store, c.ownsStore = st, false
		return nil
	}
}

// WithTokenKey stores the bearer token under key instead of "access_token".
func WithTokenKey(key string) Option {
	return func(c *Client) error {
		if key == "" {
			return fmt.Errorf("token key cannot be empty")
		}
		c.tokenKey = key
		return nil
	}
}

// WithClock replaces time.Now for cache day boundaries.
func WithClock(now func() time.Time) Option {
	return func(c *Client) error {
		if now == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		c.now = now
		return nil
	}
}

// WithLogger sets the logger used by the client and its internals.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.log = l
		return nil
	}
}

// WithWarmUpOnLogin preloads insights and the time capsule in the
// background after every successful Login.
func WithWarmUpOnLogin() Option {
	return func(c *Client) error {
		c.warmOnLogin = true
		return nil
	}
}

// WithExecutor runs warm-up jobs on e. The caller keeps ownership of e;
// Close does not stop it.
func WithExecutor(e Executor) Option {
	return func(c *Client) error {
		if e == nil {
			return fmt.Errorf("executor cannot be nil")
		}
		c.exec, c.ownsExec = e, false
		return nil
	}
}

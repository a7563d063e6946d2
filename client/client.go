package client

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/capydiary/capydiary/client/internal/api"
	"github.com/capydiary/capydiary/client/internal/daycache"
	"github.com/capydiary/capydiary/client/internal/kvstore"
	"github.com/capydiary/capydiary/client/internal/localstate"
	"github.com/capydiary/capydiary/client/internal/prefs"
	"github.com/capydiary/capydiary/client/internal/session"
	"github.com/capydiary/capydiary/client/internal/shardqueue"
	"github.com/capydiary/capydiary/internal/config"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to the CapyDiary backend on behalf of one signed-in user.
// It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger

	store     kvstore.Store
	ownsStore bool
	tokenKey  string
	now       func() time.Time

	exec        Executor
	ownsExec    bool
	warmOnLogin bool

	session *session.Session
	req     *api.Requester
	cache   *daycache.Cache
	prefs   *prefs.Prefs

	closedOnce uint32
}

// New constructs a Client for the backend at baseURL.
//
// Without WithStore the token, cache and preferences live in a SQLite file
// under the local data directory (see CAPYDIARY_HOME).
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}

	c := &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 30 * time.Second},
		log:      log.Logger,
		tokenKey: session.DefaultTokenKey,
		now:      time.Now,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.store == nil {
		path, err := localstate.DBPath()
		if err != nil {
			return nil, err
		}
		st, err := kvstore.OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		c.store, c.ownsStore = st, true
	}
	if c.exec == nil {
		c.exec, c.ownsExec = newDefaultExecutor(c.log), true
	}

	c.session = session.New(c.store, c.tokenKey)
	c.req = api.NewRequester(c.baseURL, c.http, c.session, c.log)
	c.cache = daycache.New(c.store, c.session, daycache.WithClock(c.now), daycache.WithLogger(c.log))
	c.prefs = prefs.New(c.store)
	return c, nil
}

// NewFromEnv builds a Client from CAPYDIARY_* settings. Explicit opts are
// applied after the environment-derived ones.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	base := []Option{WithHTTPTimeout(cfg.HTTPTimeout), WithTokenKey(cfg.TokenKey)}
	if cfg.Debug {
		base = append(base, WithDebugLogging(true))
	}
	return New(cfg.BaseURL(), append(base, opts...)...)
}

// BaseURL returns the backend URL every request is resolved against.
func (c *Client) BaseURL() string { return c.req.BaseURL() }

// Close stops the warm-up executor and releases the local store when the
// client created them. Ones passed in with WithExecutor or WithStore are left
// running. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.ownsExec {
		c.exec.Stop()
	}
	if c.ownsStore {
		return c.store.Close()
	}
	return nil
}

// newDefaultExecutor builds the warm-up executor from CAPYDIARY_WARMUP_*,
// falling back to built-in defaults when the environment is malformed.
func newDefaultExecutor(l zerolog.Logger) *shardqueue.Executor {
	cfg, err := shardqueue.LoadConfig()
	if err != nil {
		l.Warn().Err(err).Msg("invalid warm-up settings, using defaults")
		cfg = shardqueue.Config{}
	}
	cfg.Logger = l
	return shardqueue.New(cfg)
}

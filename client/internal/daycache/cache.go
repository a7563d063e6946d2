// Package daycache memoises backend payloads for the rest of the local day.
//
// Entries are keyed by resource, range, a token-derived identity and the
// calendar day, so a new day or a different account never reads a stale
// payload. Nothing expires and past days are not purged.
//
// Storage is an optimisation: every store failure is logged, counted and
// dropped, and the caller still gets the freshly fetched value.
package daycache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/capydiary/capydiary/client/internal/kvstore"
	"github.com/capydiary/capydiary/client/internal/session"
)

// FetchFunc loads a payload from the backend.
type FetchFunc func(ctx context.Context) (json.RawMessage, error)

// Cache is a read-through cache over a kvstore.Store. Safe for concurrent use.
type Cache struct {
	store  kvstore.Store
	tokens session.TokenSource
	now    func() time.Time
	log    zerolog.Logger
	group  singleflight.Group
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now. The returned time's location decides the day.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithLogger sets the logger for swallowed failures.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Cache) { c.log = l }
}

// New creates a Cache storing into store and scoping entries by the token
// tokens yields.
func New(store kvstore.Store, tokens session.TokenSource, opts ...Option) *Cache {
	c := &Cache{store: store, tokens: tokens, now: time.Now, log: zerolog.Nop()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// KeyFor returns today's key for resource and rng.
func (c *Cache) KeyFor(ctx context.Context, resource Resource, rng string) (Key, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return Key{}, err
	}
	return Key{
		Resource: resource,
		Range:    rng,
		Identity: IdentityFor(token),
		Day:      DayOf(c.now()),
	}, nil
}

// Get returns today's cached payload, fetching and storing it on a miss.
// Concurrent misses for the same key share a single fetch. Fetch errors
// propagate; storage errors do not.
func (c *Cache) Get(ctx context.Context, resource Resource, rng string, fetch FetchFunc) (json.RawMessage, error) {
	key, err := c.KeyFor(ctx, resource, rng)
	if err != nil {
		c.bestEffort("identity", err)
		lookupsTotal.WithLabelValues(string(resource), "bypass").Inc()
		return fetch(ctx)
	}
	if raw, ok := c.lookup(ctx, key); ok {
		lookupsTotal.WithLabelValues(string(resource), "hit").Inc()
		return raw, nil
	}
	lookupsTotal.WithLabelValues(string(resource), "miss").Inc()
	return c.fill(ctx, key, fetch)
}

// Preload populates today's entry when it is absent. All errors are dropped.
// Like Warm, it does nothing when the token cannot be read.
func (c *Cache) Preload(ctx context.Context, resource Resource, rng string, fetch FetchFunc) {
	if err := c.Warm(ctx, resource, rng, fetch); err != nil {
		c.log.Debug().Err(err).Str("resource", string(resource)).Str("range", rng).Msg("preload failed")
	}
}

// Warm is Preload that reports the fetch error. Storage errors are still
// dropped. When the token cannot be read there is no key to fill, so Warm
// skips the fetch and returns nil; Get instead fetches without caching
// because its caller needs the payload.
func (c *Cache) Warm(ctx context.Context, resource Resource, rng string, fetch FetchFunc) error {
	key, err := c.KeyFor(ctx, resource, rng)
	if err != nil {
		c.bestEffort("identity", err)
		return nil
	}
	if _, ok := c.lookup(ctx, key); ok {
		return nil
	}
	_, err = c.fill(ctx, key, fetch)
	return err
}

// Refresh fetches unconditionally and overwrites today's entry.
func (c *Cache) Refresh(ctx context.Context, resource Resource, rng string, fetch FetchFunc) (json.RawMessage, error) {
	raw, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	key, kerr := c.KeyFor(ctx, resource, rng)
	if kerr != nil {
		c.bestEffort("identity", kerr)
		return raw, nil
	}
	c.bestEffort("write", c.store.Set(ctx, key.String(), raw))
	return raw, nil
}

// Invalidate drops today's entry for resource and rng.
func (c *Cache) Invalidate(ctx context.Context, resource Resource, rng string) {
	key, err := c.KeyFor(ctx, resource, rng)
	if err != nil {
		c.bestEffort("identity", err)
		return
	}
	c.bestEffort("delete", c.store.Delete(ctx, key.String()))
}

// lookup reads key; a read failure or a non-JSON blob counts as a miss.
func (c *Cache) lookup(ctx context.Context, key Key) (json.RawMessage, bool) {
	b, ok, err := c.store.Get(ctx, key.String())
	if err != nil {
		c.bestEffort("read", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	if !json.Valid(b) {
		c.log.Debug().Str("key", key.String()).Msg("discarding undecodable cache entry")
		return nil, false
	}
	return json.RawMessage(b), true
}

// fill runs fetch once per key across concurrent callers and stores the
// result. The shared fetch does not inherit any one caller's cancellation;
// each caller stops waiting when its own ctx ends. The HTTP client timeout
// bounds the fetch itself.
func (c *Cache) fill(ctx context.Context, key Key, fetch FetchFunc) (json.RawMessage, error) {
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key.String(), func() (any, error) {
		raw, err := fetch(detached)
		if err != nil {
			return nil, err
		}
		c.bestEffort("write", c.store.Set(detached, key.String(), raw))
		return raw, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		shared := res.Val.(json.RawMessage)
		return append(json.RawMessage(nil), shared...), nil
	}
}

// bestEffort records a storage failure and drops it.
func (c *Cache) bestEffort(op string, err error) {
	if err == nil {
		return
	}
	errorsTotal.WithLabelValues(op).Inc()
	c.log.Debug().Err(err).Str("op", op).Msg("cache storage failure ignored")
}

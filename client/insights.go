package client

import (
	"context"
	"encoding/json"

	"golang.org/x/sync/errgroup"

	"github.com/capydiary/capydiary/client/internal/api"
	"github.com/capydiary/capydiary/client/internal/daycache"
	"github.com/capydiary/capydiary/client/internal/job"
	"github.com/capydiary/capydiary/client/internal/types"
)

// --------------------------------------------------------------------
// Insights and time capsule
//
// Both are computed server-side and stable for a calendar day, so the
// *Cached variants keep one copy per day and signed-in user.
// --------------------------------------------------------------------

func (c *Client) insightsFetch(r Range) daycache.FetchFunc {
	return func(ctx context.Context) (json.RawMessage, error) {
		return api.Insights(ctx, c.req, r)
	}
}

func (c *Client) timeCapsuleFetch(ctx context.Context) (json.RawMessage, error) {
	return api.TimeCapsule(ctx, c.req)
}

// Insights fetches the snapshot for r from the backend, bypassing the cache.
func (c *Client) Insights(ctx context.Context, r Range) (*InsightsSnapshot, error) {
	raw, err := api.Insights(ctx, c.req, r)
	if err != nil {
		return nil, err
	}
	return api.DecodeInsights(raw)
}

// InsightsCached returns today's snapshot for r, fetching it at most once a day.
func (c *Client) InsightsCached(ctx context.Context, r Range) (*InsightsSnapshot, error) {
	if err := types.ValidateRange(r); err != nil {
		return nil, err
	}
	raw, err := c.cache.Get(ctx, daycache.ResourceInsights, string(r), c.insightsFetch(r))
	if err != nil {
		return nil, err
	}
	return api.DecodeInsights(raw)
}

// PreloadInsights fills today's cache for r if it is empty. It never fails.
func (c *Client) PreloadInsights(ctx context.Context, r Range) {
	if types.ValidateRange(r) != nil {
		return
	}
	c.cache.Preload(ctx, daycache.ResourceInsights, string(r), c.insightsFetch(r))
}

// RefreshInsights refetches r and overwrites today's cache entry.
func (c *Client) RefreshInsights(ctx context.Context, r Range) (*InsightsSnapshot, error) {
	if err := types.ValidateRange(r); err != nil {
		return nil, err
	}
	raw, err := c.cache.Refresh(ctx, daycache.ResourceInsights, string(r), c.insightsFetch(r))
	if err != nil {
		return nil, err
	}
	return api.DecodeInsights(raw)
}

// InvalidateInsights drops today's cache entry for r without fetching.
func (c *Client) InvalidateInsights(ctx context.Context, r Range) {
	c.cache.Invalidate(ctx, daycache.ResourceInsights, string(r))
}

// TimeCapsule fetches today's resurfaced quote, bypassing the cache.
func (c *Client) TimeCapsule(ctx context.Context) (*TimeCapsule, error) {
	raw, err := c.timeCapsuleFetch(ctx)
	if err != nil {
		return nil, err
	}
	return api.DecodeTimeCapsule(raw)
}

// TimeCapsuleCached returns today's quote, fetching it at most once a day.
func (c *Client) TimeCapsuleCached(ctx context.Context) (*TimeCapsule, error) {
	raw, err := c.cache.Get(ctx, daycache.ResourceTimeCapsule, "", c.timeCapsuleFetch)
	if err != nil {
		return nil, err
	}
	return api.DecodeTimeCapsule(raw)
}

// PreloadTimeCapsule fills today's time capsule cache if empty. It never fails.
func (c *Client) PreloadTimeCapsule(ctx context.Context) {
	c.cache.Preload(ctx, daycache.ResourceTimeCapsule, "", c.timeCapsuleFetch)
}

// CacheKey returns today's cache key for insights of r, or for the time
// capsule when r is empty.
func (c *Client) CacheKey(ctx context.Context, r Range) (string, error) {
	res := daycache.ResourceInsights
	if r == "" {
		res = daycache.ResourceTimeCapsule
	}
	k, err := c.cache.KeyFor(ctx, res, string(r))
	if err != nil {
		return "", err
	}
	return k.String(), nil
}

// --------------------------------------------------------------------
// Warm-up
// --------------------------------------------------------------------

type warmUpTarget struct {
	key   string
	res   daycache.Resource
	rng   string
	fetch daycache.FetchFunc
}

func (c *Client) warmUpTargets() []warmUpTarget {
	out := make([]warmUpTarget, 0, 3)
	for _, r := range types.Ranges() {
		out = append(out, warmUpTarget{
			key:   string(daycache.ResourceInsights) + "/" + string(r),
			res:   daycache.ResourceInsights,
			rng:   string(r),
			fetch: c.insightsFetch(r),
		})
	}
	return append(out, warmUpTarget{
		key:   string(daycache.ResourceTimeCapsule),
		res:   daycache.ResourceTimeCapsule,
		fetch: c.timeCapsuleFetch,
	})
}

// WarmUp schedules background preloads of both insights ranges and the
// time capsule. Failures are logged and counted, never returned; recoverable
// fetch errors are retried by the executor.
func (c *Client) WarmUp(ctx context.Context) {
	for _, t := range c.warmUpTargets() {
		t := t
		j := job.New(t.key, func(ctx context.Context) error {
			return c.cache.Warm(ctx, t.res, t.rng, t.fetch)
		})
		if err := c.exec.Submit(ctx, t.key, j); err != nil {
			warmUpRejectedTotal.WithLabelValues(t.key).Inc()
			c.log.Debug().Err(err).Str("job", t.key).Msg("warm-up not scheduled")
			continue
		}
		warmUpSubmittedTotal.WithLabelValues(t.key).Inc()
	}
}

// AwaitWarmUp blocks until every warm-up job scheduled before the call has
// finished, successfully or not.
func (c *Client) AwaitWarmUp(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, t := range c.warmUpTargets() {
		key := t.key
		g.Go(func() error { return c.exec.Barrier(gctx, key) })
	}
	return g.Wait()
}

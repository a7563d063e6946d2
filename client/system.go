package client

import (
	"context"
	"encoding/json"

	"github.com/capydiary/capydiary/client/internal/api"
)

// Health probes the backend. It works without signing in.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	return api.Health(ctx, c.req)
}

// Stats returns the statistics window selected by p as raw JSON.
func (c *Client) Stats(ctx context.Context, p StatsParams) (json.RawMessage, error) {
	return api.Stats(ctx, c.req, p)
}

// WeekCalendar returns this week's paw markers.
func (c *Client) WeekCalendar(ctx context.Context) (*WeekCalendar, error) {
	return api.WeekCalendar(ctx, c.req)
}

// MonthCalendar returns the calendar grid for month (YYYY-MM) as raw JSON.
func (c *Client) MonthCalendar(ctx context.Context, month string) (json.RawMessage, error) {
	return api.MonthCalendar(ctx, c.req, month)
}

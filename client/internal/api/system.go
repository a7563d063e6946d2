package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/capydiary/capydiary/client/internal/types"
)

// Health probes the backend and its dependencies. No token is required.
func Health(ctx context.Context, d Doer) (*types.Health, error) {
	return call[types.Health](ctx, d, "health", http.MethodGet, "/health")
}

// Stats returns entry counts, the emotion split and the pleasure curve for
// the window that contains p.Date.
func Stats(ctx context.Context, d Doer, p types.StatsParams) (json.RawMessage, error) {
	if err := types.ValidateRange(p.Range); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("stats_range", string(p.Range))
	q.Set("date", p.Date)
	return callRaw(ctx, d, "stats", http.MethodGet, "/stats/?"+q.Encode())
}

// WeekCalendar returns the paw markers for the current Monday-based week.
func WeekCalendar(ctx context.Context, d Doer) (*types.WeekCalendar, error) {
	return call[types.WeekCalendar](ctx, d, "week calendar", http.MethodGet, "/journals/calendar/week")
}

// MonthCalendar returns the 6x7 grid for month (YYYY-MM).
func MonthCalendar(ctx context.Context, d Doer, month string) (json.RawMessage, error) {
	return callRaw(ctx, d, "month calendar", http.MethodGet, "/journals/calendar/month?month="+url.QueryEscape(month))
}

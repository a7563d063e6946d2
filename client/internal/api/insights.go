package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/capydiary/capydiary/client/internal/types"
)

// Insights fetches the aggregate snapshot for a range as raw JSON so it can
// be cached without a lossy round trip through Go types.
func Insights(ctx context.Context, d Doer, r types.Range) (json.RawMessage, error) {
	if err := types.ValidateRange(r); err != nil {
		return nil, err
	}
	return callRaw(ctx, d, "insights", http.MethodGet, "/insights/?range="+url.QueryEscape(string(r)))
}

// TimeCapsule fetches today's resurfaced quote as raw JSON.
func TimeCapsule(ctx context.Context, d Doer) (json.RawMessage, error) {
	return callRaw(ctx, d, "time capsule", http.MethodGet, "/time-capsule/")
}

// DecodeInsights unmarshals a snapshot payload.
func DecodeInsights(raw json.RawMessage) (*types.InsightsSnapshot, error) {
	var s types.InsightsSnapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode insights: %w", err)
	}
	return &s, nil
}

// DecodeTimeCapsule unmarshals a time capsule payload.
func DecodeTimeCapsule(raw json.RawMessage) (*types.TimeCapsule, error) {
	var tc types.TimeCapsule
	if err := json.Unmarshal(raw, &tc); err != nil {
		return nil, fmt.Errorf("decode time capsule: %w", err)
	}
	return &tc, nil
}

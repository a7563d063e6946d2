package api

import (
	"context"
	"encoding/json"
	"fmt"
)

// call sends one request and decodes a successful payload into T.
// Façade errors are returned unchanged so callers see the backend message.
func call[T any](ctx context.Context, d Doer, op, method, path string, opts ...RequestOption) (*T, error) {
	resp, err := d.Do(ctx, method, path, opts...)
	if err != nil {
		return nil, err
	}
	var out T
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return &out, nil
}

// callRaw sends one request and returns the payload bytes, which must be JSON.
func callRaw(ctx context.Context, d Doer, op, method, path string, opts ...RequestOption) (json.RawMessage, error) {
	resp, err := d.Do(ctx, method, path, opts...)
	if err != nil {
		return nil, err
	}
	if len(resp.Raw) == 0 || !json.Valid(resp.Raw) {
		return nil, fmt.Errorf("%s: response is not JSON", op)
	}
	return json.RawMessage(resp.Raw), nil
}

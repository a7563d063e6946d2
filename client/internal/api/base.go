package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apierrors "github.com/capydiary/capydiary/client/internal/errors"
	"github.com/capydiary/capydiary/client/internal/session"
)

// Doer is the single chokepoint every wrapper sends its request through.
type Doer interface {
	Do(ctx context.Context, method, path string, opts ...RequestOption) (*Response, error)
}

// RequestOption customises one outgoing request.
type RequestOption func(*resty.Request) error

// WithJSON serialises v as the request body.
func WithJSON(v any) RequestOption {
	return func(r *resty.Request) error {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		r.SetBody(b)
		return nil
	}
}

// WithRawBody sends b as-is; the caller is responsible for its encoding.
func WithRawBody(b []byte) RequestOption {
	return func(r *resty.Request) error {
		r.SetBody(b)
		return nil
	}
}

// WithHeader sets (or overrides) a request header, including Content-Type.
func WithHeader(key, value string) RequestOption {
	return func(r *resty.Request) error {
		r.SetHeader(key, value)
		return nil
	}
}

// Response is a successful backend reply.
//
// Body holds the parsed JSON value, the raw text when the payload is not
// JSON, or nil for an empty payload.
type Response struct {
	StatusCode int
	Raw        []byte
	Body       any
}

// Decode unmarshals the raw payload into v. An empty payload leaves v untouched.
func (r *Response) Decode(v any) error {
	if len(r.Raw) == 0 {
		return nil
	}
	return json.Unmarshal(r.Raw, v)
}

// Requester talks to the backend on behalf of one session.
type Requester struct {
	rc     *resty.Client
	tokens session.TokenSource
	log    zerolog.Logger
}

// NewRequester builds a Requester rooted at baseURL. hc supplies the
// transport chain and timeout; tokens is consulted before every request.
func NewRequester(baseURL string, hc *http.Client, tokens session.TokenSource, logger zerolog.Logger) *Requester {
	rc := resty.NewWithClient(hc).
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetLogger(restyLogger{l: logger}).
		SetDisableWarn(true)
	return &Requester{rc: rc, tokens: tokens, log: logger}
}

// BaseURL returns the URL every path is resolved against.
func (q *Requester) BaseURL() string { return q.rc.BaseURL }

// Do sends a single request. path is appended to the base URL verbatim,
// query string included. Non-2xx replies become *errors.APIError; there is
// no retry.
func (q *Requester) Do(ctx context.Context, method, path string, opts ...RequestOption) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	token, err := q.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	req := q.rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("X-Request-ID", uuid.NewString())
	if token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	for _, opt := range opts {
		if err := opt(req); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		requestsTotal.WithLabelValues(method, "error").Inc()
		return nil, apierrors.NewNetworkError(method+" "+path, err)
	}
	requestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(method, statusClass(resp.StatusCode())).Inc()

	raw := resp.Body()
	out := &Response{StatusCode: resp.StatusCode(), Raw: raw, Body: parseBody(raw)}
	if !resp.IsSuccess() {
		q.log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", out.StatusCode).
			Msg("backend returned error status")
		return nil, apierrors.NewHTTPError(out.StatusCode, out.Body)
	}
	return out, nil
}

// parseBody decodes JSON, falling back to the raw text. Empty input yields nil.
func parseBody(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}

// restyLogger routes resty's internal messages into zerolog.
type restyLogger struct{ l zerolog.Logger }

func (r restyLogger) Errorf(format string, v ...interface{}) { r.l.Error().Msgf(format, v...) }
func (r restyLogger) Warnf(format string, v ...interface{})  { r.l.Warn().Msgf(format, v...) }
func (r restyLogger) Debugf(format string, v ...interface{}) { r.l.Debug().Msgf(format, v...) }

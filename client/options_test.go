package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/capydiary/capydiary/client/internal/kvstore"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestWithHTTPClientAndDebugLogging(t *testing.T) {
	// timeout option sets http timeout
	c := &Client{http: &http.Client{}}
	if err := WithHTTPTimeout(5 * time.Second)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.http.Timeout != 5*time.Second {
		t.Fatalf("http timeout not set")
	}

	var called bool
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader(`{"status":"healthy"}`)),
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Request:    r,
		}, nil
	})
	var buf bytes.Buffer
	c2, err := New("http://example.com",
		WithStore(kvstore.NewMemory()),
		WithHTTPClient(&http.Client{Transport: rt}),
		WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)),
		WithDebugLogging(true),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c2.Close()

	h, err := c2.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if h.Status != "healthy" {
		t.Fatalf("unexpected status %q", h.Status)
	}
	if !called {
		t.Fatalf("base transport not invoked")
	}
	if !strings.Contains(buf.String(), "HTTP request") {
		t.Fatalf("request was not dumped: %s", buf.String())
	}
}

func TestWithDebugLogging_WrapsOnce(t *testing.T) {
	c := &Client{http: &http.Client{}}
	_ = WithDebugLogging(true)(c)
	_ = WithDebugLogging(true)(c)
	dt, ok := c.http.Transport.(*debugTransport)
	if !ok {
		t.Fatalf("transport not wrapped")
	}
	if _, nested := dt.base.(*debugTransport); nested {
		t.Fatalf("debug transport wrapped twice")
	}
}

func TestOptions_RejectInvalid(t *testing.T) {
	cases := map[string]Option{
		"zero timeout":    WithHTTPTimeout(0),
		"nil http client": WithHTTPClient(nil),
		"nil store":       WithStore(nil),
		"empty token key": WithTokenKey(""),
		"nil clock":       WithClock(nil),
		"nil executor":    WithExecutor(nil),
	}
	for name, opt := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := New("http://example.com", opt); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatalf("expected error for empty base URL")
	}
}

func TestWithTokenKey_StoresUnderCustomKey(t *testing.T) {
	h := newHarness(t, WithTokenKey("token"))
	h.signIn(t, "a@b.com", "tok-custom")

	v, ok, err := h.store.Get(context.Background(), "token")
	if err != nil || !ok {
		t.Fatalf("token not stored under custom key: ok=%v err=%v", ok, err)
	}
	if string(v) != "tok-custom" {
		t.Fatalf("got %q", v)
	}
	if _, ok, _ := h.store.Get(context.Background(), "access_token"); ok {
		t.Fatalf("default key should be unused")
	}
}

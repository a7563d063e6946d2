package client

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/capydiary/capydiary/client/internal/kvstore"
	"github.com/capydiary/capydiary/client/internal/shardqueue"
	"github.com/capydiary/capydiary/internal/fakeapi"
)

// testClock is a settable clock for day-boundary tests.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 5, 15, 10, 0, 0, 0, time.Local)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type harness struct {
	c     *Client
	url   string
	fake  *fakeapi.Server
	store *kvstore.Memory
	clock *testClock
}

// newHarness wires a Client to a fresh fake backend with an in-memory store
// and a fast single-shard warm-up executor.
func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	fake := fakeapi.New()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	h := &harness{fake: fake, url: srv.URL, store: kvstore.NewMemory(), clock: newTestClock()}
	exec := shardqueue.New(shardqueue.Config{Shards: 1, BaseBackoff: time.Millisecond, MaxInterval: 5 * time.Millisecond})
	t.Cleanup(exec.Stop)
	base := []Option{
		WithStore(h.store),
		WithClock(h.clock.Now),
		WithLogger(zerolog.Nop()),
		WithExecutor(exec),
	}
	c, err := New(srv.URL, append(base, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	h.c = c
	return h
}

// signIn registers email and logs in, issuing token.
func (h *harness) signIn(t *testing.T, email, token string) {
	t.Helper()
	h.fake.AddUser(email, "pw")
	h.fake.QueueToken(token)
	if _, err := h.c.Login(context.Background(), Credentials{Email: email, Password: "pw"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
}

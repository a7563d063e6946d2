package daycache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capydiary/capydiary/client/internal/kvstore"
	"github.com/capydiary/capydiary/client/internal/session"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Set(t time.Time) {
	f.mu.Lock()
	f.t = t
	f.mu.Unlock()
}

// failingStore fails every operation.
type failingStore struct{}

var errDisk = errors.New("disk on fire")

func (failingStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errDisk }
func (failingStore) Set(context.Context, string, []byte) error        { return errDisk }
func (failingStore) Delete(context.Context, string) error             { return errDisk }
func (failingStore) Close() error                                     { return nil }

type brokenTokens struct{}

func (brokenTokens) Token(context.Context) (string, error) { return "", errDisk }

type fixture struct {
	store *kvstore.Memory
	sess  *session.Session
	clock *fakeClock
	cache *Cache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := kvstore.NewMemory()
	sess := session.New(store, "")
	clock := &fakeClock{t: time.Date(2024, 5, 2, 9, 0, 0, 0, time.Local)}
	return &fixture{store: store, sess: sess, clock: clock, cache: New(store, sess, WithClock(clock.Now))}
}

// counter returns a FetchFunc that yields successive payloads and counts calls.
func counter(calls *int32) FetchFunc {
	return func(context.Context) (json.RawMessage, error) {
		n := atomic.AddInt32(calls, 1)
		return json.RawMessage(`{"n":` + string(rune('0'+n)) + `}`), nil
	}
}

func TestGet_HitSkipsFetch(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	var calls int32

	first, err := f.cache.Get(ctx, ResourceInsights, "week", counter(&calls))
	require.NoError(t, err)
	second, err := f.cache.Get(ctx, ResourceInsights, "week", counter(&calls))
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls)
	assert.JSONEq(t, string(first), string(second))
}

func TestGet_NewDayRefetches(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	var calls int32

	_, err := f.cache.Get(ctx, ResourceTimeCapsule, "", counter(&calls))
	require.NoError(t, err)

	f.clock.Set(time.Date(2024, 5, 3, 0, 0, 1, 0, time.Local))
	got, err := f.cache.Get(ctx, ResourceTimeCapsule, "", counter(&calls))
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls)
	assert.JSONEq(t, `{"n":2}`, string(got))
	assert.Len(t, f.store.Keys(), 2, "yesterday's entry is kept")
}

func TestGet_IdentityScopesEntries(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	var calls int32

	require.NoError(t, f.sess.SetToken(ctx, "header.payload.userAAAAAAAAAAAA"))
	_, err := f.cache.Get(ctx, ResourceInsights, "month", counter(&calls))
	require.NoError(t, err)

	require.NoError(t, f.sess.SetToken(ctx, "header.payload.userBBBBBBBBBBBB"))
	got, err := f.cache.Get(ctx, ResourceInsights, "month", counter(&calls))
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls)
	assert.JSONEq(t, `{"n":2}`, string(got))
}

func TestGet_RangesAreIndependent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	var calls int32

	_, err := f.cache.Get(ctx, ResourceInsights, "week", counter(&calls))
	require.NoError(t, err)
	_, err = f.cache.Get(ctx, ResourceInsights, "month", counter(&calls))
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls)
}

func TestGet_FetchErrorPropagatesAndIsNotCached(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	boom := errors.New("backend down")

	_, err := f.cache.Get(ctx, ResourceInsights, "week", func(context.Context) (json.RawMessage, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, f.store.Keys())
}

func TestGet_StorageFailuresAreSwallowed(t *testing.T) {
	t.Parallel()
	c := New(failingStore{}, session.New(kvstore.NewMemory(), ""))
	var calls int32

	got, err := c.Get(context.Background(), ResourceInsights, "week", counter(&calls))
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1}`, string(got))

	_, err = c.Refresh(context.Background(), ResourceInsights, "week", counter(&calls))
	require.NoError(t, err)
	c.Invalidate(context.Background(), ResourceInsights, "week")
	c.Preload(context.Background(), ResourceTimeCapsule, "", counter(&calls))
	assert.Equal(t, int32(3), calls)
}

func TestGet_IdentityFailureBypassesCache(t *testing.T) {
	t.Parallel()
	store := kvstore.NewMemory()
	c := New(store, brokenTokens{})
	var calls int32

	_, err := c.Get(context.Background(), ResourceInsights, "week", counter(&calls))
	require.NoError(t, err)
	_, err = c.Get(context.Background(), ResourceInsights, "week", counter(&calls))
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls)
	assert.Empty(t, store.Keys())
}

func TestGet_UndecodableEntryIsAMiss(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	key, err := f.cache.KeyFor(ctx, ResourceInsights, "week")
	require.NoError(t, err)
	require.NoError(t, f.store.Set(ctx, key.String(), []byte("{truncated")))

	var calls int32
	got, err := f.cache.Get(ctx, ResourceInsights, "week", counter(&calls))
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls)
	assert.JSONEq(t, `{"n":1}`, string(got))
}

func TestGet_ConcurrentMissesShareOneFetch(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	var calls int32
	release := make(chan struct{})
	fetch := func(context.Context) (json.RawMessage, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return json.RawMessage(`{"ok":true}`), nil
	}

	const n = 8
	var wg sync.WaitGroup
	results := make([]json.RawMessage, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := f.cache.Get(context.Background(), ResourceInsights, "week", fetch)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	// Let the goroutines pile up on the in-flight fetch.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.JSONEq(t, `{"ok":true}`, string(r))
	}
	assert.Len(t, f.store.Keys(), 1)
}

func TestGet_SharedFetchSurvivesFirstCallerCancel(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	var calls int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (json.RawMessage, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return json.RawMessage(`{"ok":true}`), nil
	}

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := f.cache.Get(first, ResourceInsights, "week", fetch)
		firstErr <- err
	}()
	time.Sleep(20 * time.Millisecond)

	second := make(chan json.RawMessage, 1)
	secondErr := make(chan error, 1)
	go func() {
		v, err := f.cache.Get(context.Background(), ResourceInsights, "week", fetch)
		second <- v
		secondErr <- err
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("canceled caller kept waiting on the shared fetch")
	}

	close(release)
	require.NoError(t, <-secondErr)
	assert.JSONEq(t, `{"ok":true}`, string(<-second))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	// The detached fetch still filled the cache.
	var again int32
	got, err := f.cache.Get(context.Background(), ResourceInsights, "week", counter(&again))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(got))
	assert.Zero(t, again)
}

func TestWarm_SkipsWhenIdentityUnavailable(t *testing.T) {
	t.Parallel()
	store := kvstore.NewMemory()
	c := New(store, brokenTokens{})
	var calls int32

	require.NoError(t, c.Warm(context.Background(), ResourceInsights, "week", counter(&calls)))
	c.Preload(context.Background(), ResourceTimeCapsule, "", counter(&calls))

	assert.Zero(t, calls)
	assert.Empty(t, store.Keys())
}

func TestPreload_DoesNotOverwriteAndSwallowsErrors(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	var calls int32

	f.cache.Preload(ctx, ResourceTimeCapsule, "", counter(&calls))
	f.cache.Preload(ctx, ResourceTimeCapsule, "", counter(&calls))
	assert.Equal(t, int32(1), calls)

	f.cache.Preload(ctx, ResourceInsights, "week", func(context.Context) (json.RawMessage, error) {
		return nil, errors.New("offline")
	})
}

func TestWarm_ReportsFetchError(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	boom := errors.New("offline")
	err := f.cache.Warm(context.Background(), ResourceInsights, "week", func(context.Context) (json.RawMessage, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestRefreshAndInvalidate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	var calls int32

	_, err := f.cache.Get(ctx, ResourceInsights, "week", counter(&calls))
	require.NoError(t, err)

	fresh, err := f.cache.Refresh(ctx, ResourceInsights, "week", counter(&calls))
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":2}`, string(fresh))

	got, err := f.cache.Get(ctx, ResourceInsights, "week", counter(&calls))
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":2}`, string(got), "refresh overwrote the entry")

	f.cache.Invalidate(ctx, ResourceInsights, "week")
	got, err = f.cache.Get(ctx, ResourceInsights, "week", counter(&calls))
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":3}`, string(got))
}

func TestRefresh_ErrorKeepsOldEntry(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	var calls int32

	_, err := f.cache.Get(ctx, ResourceInsights, "week", counter(&calls))
	require.NoError(t, err)
	_, err = f.cache.Refresh(ctx, ResourceInsights, "week", func(context.Context) (json.RawMessage, error) {
		return nil, errors.New("offline")
	})
	require.Error(t, err)

	got, err := f.cache.Get(ctx, ResourceInsights, "week", counter(&calls))
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1}`, string(got))
}

package prefs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capydiary/capydiary/client/internal/kvstore"
)

func TestLanguage_DefaultsToEnglish(t *testing.T) {
	t.Parallel()
	p := New(kvstore.NewMemory())
	l, err := p.Language(context.Background())
	require.NoError(t, err)
	assert.Equal(t, English, l)
}

func TestSetLanguage_RoundTrip(t *testing.T) {
	t.Parallel()
	store := kvstore.NewMemory()
	p := New(store)
	ctx := context.Background()

	require.NoError(t, p.SetLanguage(ctx, Chinese))
	l, err := p.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, Chinese, l)

	raw, ok, err := store.Get(ctx, LanguageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "zh", string(raw))
}

func TestSetLanguage_RejectsUnknown(t *testing.T) {
	t.Parallel()
	p := New(kvstore.NewMemory())
	err := p.SetLanguage(context.Background(), Language("fr"))
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestLanguage_GarbageFallsBackToDefault(t *testing.T) {
	t.Parallel()
	store := kvstore.NewMemory()
	require.NoError(t, store.Set(context.Background(), LanguageKey, []byte("klingon")))
	l, err := New(store).Language(context.Background())
	require.NoError(t, err)
	assert.Equal(t, English, l)
}

func TestLanguage_ClosedStoreErrors(t *testing.T) {
	t.Parallel()
	store := kvstore.NewMemory()
	require.NoError(t, store.Close())
	_, err := New(store).Language(context.Background())
	assert.ErrorIs(t, err, kvstore.ErrClosed)
}

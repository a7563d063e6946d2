package daycache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_String(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		key  Key
		want string
	}{
		{"insights", Key{ResourceInsights, "week", "tok123", "2024-05-02"}, "insights_week_tok123_2024-05-02"},
		{"no range", Key{ResourceTimeCapsule, "", "anon", "2024-05-02"}, "timecapsule_anon_2024-05-02"},
		{"escaped identity", Key{ResourceInsights, "month", "ab_c%d", "2024-05-02"}, "insights_month_ab%5Fc%25d_2024-05-02"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.key.String(), c.name)
	}
}

func TestKey_DelimiterCannotBeForged(t *testing.T) {
	t.Parallel()
	// Without escaping both would render as insights_week_x_2024-05-02.
	a := Key{Resource: ResourceInsights, Range: "week_x", Identity: "y", Day: "2024-05-02"}
	b := Key{Resource: ResourceInsights, Range: "week", Identity: "x_y", Day: "2024-05-02"}
	assert.NotEqual(t, a.String(), b.String())
}

func TestIdentityFor(t *testing.T) {
	t.Parallel()
	assert.Equal(t, AnonIdentity, IdentityFor(""))
	assert.Equal(t, "tok123", IdentityFor("tok123"))
	assert.Equal(t, "89abcdefghij", IdentityFor("0123456789abcdefghij"))
}

func TestKeyFor_UsesTokenAndLocalDay(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	k, err := f.cache.KeyFor(ctx, ResourceTimeCapsule, "")
	require.NoError(t, err)
	assert.Equal(t, "timecapsule_anon_2024-05-02", k.String())

	require.NoError(t, f.sess.SetToken(ctx, "tok123"))
	f.clock.Set(time.Date(2024, 12, 31, 23, 59, 0, 0, time.Local))
	k, err = f.cache.KeyFor(ctx, ResourceInsights, "week")
	require.NoError(t, err)
	assert.Equal(t, "insights_week_tok123_2024-12-31", k.String())
}

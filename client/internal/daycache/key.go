package daycache

import (
	"strings"
	"time"
)

// Resource names a cacheable backend payload.
type Resource string

const (
	ResourceInsights    Resource = "insights"
	ResourceTimeCapsule Resource = "timecapsule"
)

// AnonIdentity is the identity segment used when no token is stored.
const AnonIdentity = "anon"

// identityLen is how many trailing token characters scope a cache entry.
const identityLen = 12

const dayLayout = "2006-01-02"

// Key addresses one cached payload. Range is empty for resources that are
// not range-scoped.
type Key struct {
	Resource Resource
	Range    string
	Identity string
	Day      string
}

// String renders {resource}_{range}_{identity}_{day}, omitting an empty range.
// Components are escaped so none of them can contain the '_' delimiter.
func (k Key) String() string {
	parts := make([]string, 0, 4)
	parts = append(parts, escape(string(k.Resource)))
	if k.Range != "" {
		parts = append(parts, escape(k.Range))
	}
	parts = append(parts, escape(k.Identity), escape(k.Day))
	return strings.Join(parts, "_")
}

var escaper = strings.NewReplacer("%", "%25", "_", "%5F")

func escape(s string) string { return escaper.Replace(s) }

// IdentityFor derives the identity segment from a bearer token.
func IdentityFor(token string) string {
	if token == "" {
		return AnonIdentity
	}
	r := []rune(token)
	if len(r) > identityLen {
		r = r[len(r)-identityLen:]
	}
	return string(r)
}

// DayOf formats t as a calendar day in t's own location.
func DayOf(t time.Time) string { return t.Format(dayLayout) }

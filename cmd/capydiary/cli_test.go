package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capydiary/capydiary/internal/fakeapi"
)

type cli struct {
	t    *testing.T
	url  string
	fake *fakeapi.Server
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("CAPYDIARY_HOME", t.TempDir())
	t.Setenv("CAPYDIARY_API_URL", "")
	fake := fakeapi.New()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return &cli{t: t, url: srv.URL, fake: fake}
}

// run executes one invocation, like a fresh process sharing the state dir.
func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--api-url", c.url}, args...))
	err := root.Execute()
	return out.String(), err
}

func (c *cli) mustRun(args ...string) map[string]any {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "capydiary %s", strings.Join(args, " "))
	var v map[string]any
	require.NoError(c.t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func (c *cli) mustRunList(args ...string) []any {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "capydiary %s", strings.Join(args, " "))
	var v []any
	require.NoError(c.t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestCLI_SessionPersistsAcrossInvocations(t *testing.T) {
	c := newCLI(t)

	u := c.mustRun("register", "--email", "a@b.com", "--password", "pw")
	assert.Equal(t, "a@b.com", u["email"])

	res := c.mustRun("login", "--email", "a@b.com", "--password", "pw")
	assert.Equal(t, true, res["authenticated"])

	me := c.mustRun("me")
	assert.Equal(t, "a@b.com", me["email"])

	c.mustRun("logout")
	_, err := c.run("me")
	require.Error(t, err)
	assert.Equal(t, "Not authenticated", err.Error())
}

func TestCLI_EntriesAndInsights(t *testing.T) {
	c := newCLI(t)
	c.fake.AddUser("a@b.com", "pw")
	c.mustRun("login", "--email", "a@b.com", "--password", "pw", "--warm")
	assert.Equal(t, 2, c.fake.Calls(fakeapi.RouteInsights))

	ins := c.mustRun("insights")
	assert.EqualValues(t, 0, ins["stats"].(map[string]any)["entries"])
	assert.Equal(t, 2, c.fake.Calls(fakeapi.RouteInsights), "served from today's cache")

	e := c.mustRun("entries", "create", "sunny morning", "--reply")
	id := jsonID(t, e["id"])
	assert.NotNil(t, e["ai_reply"])

	ins = c.mustRun("insights")
	assert.EqualValues(t, 1, ins["stats"].(map[string]any)["entries"])

	list := c.mustRunList("entries", "list", "--date", time.Now().Format("2006-01"))
	assert.Len(t, list, 1)

	c.mustRun("comments", "add", id, "remember this")
	comments := c.mustRunList("comments", "list", id)
	assert.Len(t, comments, 1)

	reply := c.mustRun("reply", id, "--regenerate")
	assert.NotEmpty(t, reply["content"])

	c.mustRun("entries", "delete", id)
	_, err := c.run("entries", "get", id)
	assert.Error(t, err)
}

func TestCLI_LanguageAndPrompts(t *testing.T) {
	c := newCLI(t)

	lang := c.mustRun("lang")
	assert.Equal(t, "en", lang["language"])
	en := c.mustRunList("prompts")

	c.mustRun("lang", "set", "zh")
	lang = c.mustRun("lang", "get")
	assert.Equal(t, "zh", lang["language"])
	zh := c.mustRunList("prompts")
	require.Len(t, zh, len(en))
	assert.NotEqual(t, en[0], zh[0])

	_, err := c.run("lang", "set", "fr")
	assert.Error(t, err)
}

func TestCLI_SystemCommands(t *testing.T) {
	c := newCLI(t)
	h := c.mustRun("health")
	assert.Equal(t, "healthy", h["status"])

	c.fake.AddUser("a@b.com", "pw")
	c.mustRun("login", "--email", "a@b.com", "--password", "pw")

	week := c.mustRun("calendar")
	assert.Len(t, week["week"], 7)
	month := c.mustRun("calendar", "--month", "2024-05")
	assert.Equal(t, "2024-05", month["month"])
	stats := c.mustRun("stats", "--range", "month")
	assert.Equal(t, "month", stats["range"])

	companions := c.mustRunList("companions", "list")
	assert.Len(t, companions, 3)
	me := c.mustRun("companions", "select", "2")
	assert.EqualValues(t, 2, me["companion_id"])

	tc := c.mustRun("time-capsule")
	assert.Equal(t, false, tc["found"])
}

func TestCLI_RejectsBadIDs(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("entries", "get", "abc")
	assert.ErrorContains(t, err, "invalid entry id")
	_, err = c.run("insights", "--range", "year")
	assert.Error(t, err)
}

func TestDefaultStatsDate(t *testing.T) {
	now := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-05", defaultStatsDate("month", now))
	assert.Equal(t, "2024-05-15", defaultStatsDate("week", now))
}

func jsonID(t *testing.T, v any) string {
	t.Helper()
	f, ok := v.(float64)
	require.True(t, ok, "id is %T", v)
	b, _ := json.Marshal(int64(f))
	return string(b)
}

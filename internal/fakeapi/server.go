// Package fakeapi is an in-memory stand-in for the CapyDiary backend used by
// tests. It speaks the same routes and JSON shapes as the real service,
// including FastAPI-style {"detail": ...} error bodies.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// Option customises a Server.
type Option func(*Server)

// WithClock replaces time.Now for timestamps and "today".
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// Server holds every account, entry and comment in memory.
type Server struct {
	mu  sync.Mutex
	now func() time.Time

	users      map[string]*account // by email
	tokens     map[string]*account
	nextTokens []string
	companions []companion
	entries    map[int64]*entry
	comments   map[int64][]comment // by entry id

	insights    map[string]json.RawMessage
	timeCapsule json.RawMessage
	failures    map[string][]failure
	calls       map[string]int

	nextUser, nextEntry, nextReply, nextComment int64

	router *mux.Router
}

type failure struct {
	status int
	detail string
}

// New returns a Server seeded with three companions.
func New(opts ...Option) *Server {
	s := &Server{
		now:        time.Now,
		users:      map[string]*account{},
		tokens:     map[string]*account{},
		companions: seedCompanions(),
		entries:    map[int64]*entry{},
		comments:   map[int64][]comment{},
		insights:   map[string]json.RawMessage{},
		failures:   map[string][]failure{},
		calls:      map[string]int{},
	}
	for _, o := range opts {
		o(s)
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.recoverer, s.count, s.injectFailures)

	r.HandleFunc("/health", s.health).Methods(http.MethodGet).Name(RouteHealth)

	r.HandleFunc("/users/register", s.register).Methods(http.MethodPost).Name(RouteRegister)
	r.HandleFunc("/users/login", s.login).Methods(http.MethodPost).Name(RouteLogin)
	r.HandleFunc("/users/me", s.authed(s.me)).Methods(http.MethodGet).Name(RouteMe)
	r.HandleFunc("/users/me/username", s.authed(s.updateNickname)).Methods(http.MethodPatch).Name(RouteNickname)

	r.HandleFunc("/companions/", s.authed(s.listCompanions)).Methods(http.MethodGet).Name(RouteCompanions)
	r.HandleFunc("/companions/select", s.authed(s.selectCompanion)).Methods(http.MethodPost).Name(RouteSelectCompanion)
	r.HandleFunc("/companions/{id:[0-9]+}", s.authed(s.getCompanion)).Methods(http.MethodGet).Name(RouteCompanion)

	r.HandleFunc("/entries/", s.authed(s.listEntries)).Methods(http.MethodGet).Name(RouteListEntries)
	r.HandleFunc("/entries/", s.authed(s.createEntry)).Methods(http.MethodPost).Name(RouteCreateEntry)
	r.HandleFunc("/entries/{id:[0-9]+}", s.authed(s.getEntry)).Methods(http.MethodGet).Name(RouteGetEntry)
	r.HandleFunc("/entries/{id:[0-9]+}", s.authed(s.deleteEntry)).Methods(http.MethodDelete).Name(RouteDeleteEntry)
	r.HandleFunc("/entries/{id:[0-9]+}/ai_reply", s.authed(s.aiReply)).Methods(http.MethodPost).Name(RouteAIReply)
	r.HandleFunc("/entries/{id:[0-9]+}/comments/", s.authed(s.listComments)).Methods(http.MethodGet).Name(RouteListComments)
	r.HandleFunc("/entries/{id:[0-9]+}/comments/", s.authed(s.addComment)).Methods(http.MethodPost).Name(RouteAddComment)
	r.HandleFunc("/entries/{id:[0-9]+}/comments/{commentId:[0-9]+}", s.authed(s.deleteComment)).Methods(http.MethodDelete).Name(RouteDeleteComment)

	r.HandleFunc("/insights/", s.authed(s.insightsFor)).Methods(http.MethodGet).Name(RouteInsights)
	r.HandleFunc("/time-capsule/", s.authed(s.timeCapsuleFor)).Methods(http.MethodGet).Name(RouteTimeCapsule)
	r.HandleFunc("/stats/", s.authed(s.stats)).Methods(http.MethodGet).Name(RouteStats)
	r.HandleFunc("/journals/calendar/week", s.authed(s.weekCalendar)).Methods(http.MethodGet).Name(RouteWeekCalendar)
	r.HandleFunc("/journals/calendar/month", s.authed(s.monthCalendar)).Methods(http.MethodGet).Name(RouteMonthCalendar)
	return r
}

// Route names accepted by Calls and FailNext.
const (
	RouteHealth          = "health"
	RouteRegister        = "register"
	RouteLogin           = "login"
	RouteMe              = "me"
	RouteNickname        = "nickname"
	RouteCompanions      = "companions"
	RouteCompanion       = "companion"
	RouteSelectCompanion = "select_companion"
	RouteListEntries     = "list_entries"
	RouteCreateEntry     = "create_entry"
	RouteGetEntry        = "get_entry"
	RouteDeleteEntry     = "delete_entry"
	RouteAIReply         = "ai_reply"
	RouteListComments    = "list_comments"
	RouteAddComment      = "add_comment"
	RouteDeleteComment   = "delete_comment"
	RouteInsights        = "insights"
	RouteTimeCapsule     = "time_capsule"
	RouteStats           = "stats"
	RouteWeekCalendar    = "week_calendar"
	RouteMonthCalendar   = "month_calendar"
)

// Calls returns how many requests reached route.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// FailNext makes the next request to route fail with status and a
// {"detail": detail} body. Calls stack.
func (s *Server) FailNext(route string, status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = append(s.failures[route], failure{status: status, detail: detail})
}

// QueueToken makes the next successful login issue tok instead of a
// random token.
func (s *Server) QueueToken(tok string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTokens = append(s.nextTokens, tok)
}

// SetInsights pins the /insights/ body for rng. Without it the payload is
// computed from the caller's entries.
func (s *Server) SetInsights(rng string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insights[rng] = mustJSON(payload)
}

// SetTimeCapsule pins the /time-capsule/ body. raw is sent verbatim, so it
// need not be JSON.
func (s *Server) SetTimeCapsule(raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeCapsule = raw
}

// AddUser registers an account directly and returns its id.
func (s *Server) AddUser(email, password string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(email, password).ID
}

func (s *Server) issueTokenLocked(a *account) string {
	tok := ""
	if len(s.nextTokens) > 0 {
		tok, s.nextTokens = s.nextTokens[0], s.nextTokens[1:]
	} else {
		tok = uuid.NewString()
	}
	s.tokens[tok] = a
	return tok
}

// --------------------------------------------------------------------
// Middleware
// --------------------------------------------------------------------

func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Str("method", r.Method).Str("url", r.URL.String()).Msg("fakeapi panic recovered")
				writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if route := mux.CurrentRoute(r); route != nil {
			s.mu.Lock()
			s.calls[route.GetName()]++
			s.mu.Unlock()
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := mux.CurrentRoute(r)
		if route == nil {
			next.ServeHTTP(w, r)
			return
		}
		name := route.GetName()
		s.mu.Lock()
		var f *failure
		if q := s.failures[name]; len(q) > 0 {
			f = &q[0]
			s.failures[name] = q[1:]
		}
		s.mu.Unlock()
		if f != nil {
			writeDetail(w, f.status, f.detail)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type authedHandler func(w http.ResponseWriter, r *http.Request, a *account)

func (s *Server) authed(h authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const prefix = "Bearer "
		hdr := r.Header.Get("Authorization")
		if len(hdr) <= len(prefix) || hdr[:len(prefix)] != prefix {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		s.mu.Lock()
		a := s.tokens[hdr[len(prefix):]]
		s.mu.Unlock()
		if a == nil {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		h(w, r, a)
	}
}

// --------------------------------------------------------------------
// Responses
// --------------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("fakeapi: encode response")
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid json body")
		return false
	}
	return true
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

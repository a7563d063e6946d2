package fakeapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/gorilla/mux"
)

type account struct {
	ID          int64           `json:"id"`
	Username    *string         `json:"username,omitempty"`
	Email       string          `json:"email"`
	CompanionID *int64          `json:"companion_id,omitempty"`
	Companion   *companion      `json:"companion,omitempty"`
	CreatedAt   strfmt.DateTime `json:"created_at"`

	password string
}

type companion struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	IdentityTitle string   `json:"identity_title"`
	Tags          []string `json:"tags"`
	ThemeColor    string   `json:"theme_color"`
	OrderIndex    int      `json:"order_index"`
}

type reply struct {
	ID          int64           `json:"id"`
	EntryID     int64           `json:"entry_id"`
	CompanionID int64           `json:"companion_id"`
	ReplyType   string          `json:"reply_type"`
	Content     string          `json:"content"`
	ModelName   string          `json:"model_name"`
	CreatedAt   strfmt.DateTime `json:"created_at"`
}

type entry struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Content   string          `json:"content"`
	Summary   string          `json:"summary"`
	CreatedAt strfmt.DateTime `json:"created_at"`
	AIReply   *reply          `json:"ai_reply,omitempty"`
	Pleasure  float64         `json:"pleasure"`

	deleted bool
}

type comment struct {
	ID         int64           `json:"id"`
	Content    string          `json:"content"`
	CreatedAt  strfmt.DateTime `json:"created_at"`
	AuthorName string          `json:"author_name"`
}

func seedCompanions() []companion {
	return []companion{
		{ID: 1, Name: "Capy", IdentityTitle: "Gentle listener", Tags: []string{"calm", "warm"}, ThemeColor: "#C9A27E", OrderIndex: 0},
		{ID: 2, Name: "Otter", IdentityTitle: "Cheerful friend", Tags: []string{"playful"}, ThemeColor: "#7EB6C9", OrderIndex: 1},
		{ID: 3, Name: "Owl", IdentityTitle: "Thoughtful mentor", Tags: []string{"wise"}, ThemeColor: "#8E7EC9", OrderIndex: 2},
	}
}

func (s *Server) addUserLocked(email, password string) *account {
	s.nextUser++
	a := &account{ID: s.nextUser, Email: email, CreatedAt: strfmt.DateTime(s.now()), password: password}
	s.users[email] = a
	return a
}

func pathID(r *http.Request, name string) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id
}

// --------------------------------------------------------------------
// Users and companions
// --------------------------------------------------------------------

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "healthy",
		"version":     "fake",
		"server_time": s.now().Format(time.RFC3339),
		"database":    "connected",
		"ai_service":  "ready",
	})
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if !decodeBody(w, r, &in) {
		return
	}
	if in.Email == "" || in.Password == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "email and password are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.users[in.Email]; dup {
		writeDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	writeJSON(w, http.StatusOK, s.addUserLocked(in.Email, in.Password))
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if !decodeBody(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.users[in.Email]
	if !ok || a.password != in.Password {
		writeDetail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": s.issueTokenLocked(a),
		"token_type":   "bearer",
		"user":         a,
	})
}

func (s *Server) me(w http.ResponseWriter, _ *http.Request, a *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) updateNickname(w http.ResponseWriter, r *http.Request, a *account) {
	var in struct {
		Username string `json:"username"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Username) == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "username cannot be empty")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	name := in.Username
	a.Username = &name
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) listCompanions(w http.ResponseWriter, _ *http.Request, _ *account) {
	writeJSON(w, http.StatusOK, s.companions)
}

func (s *Server) findCompanion(id int64) *companion {
	for i := range s.companions {
		if s.companions[i].ID == id {
			return &s.companions[i]
		}
	}
	return nil
}

func (s *Server) getCompanion(w http.ResponseWriter, r *http.Request, _ *account) {
	c := s.findCompanion(pathID(r, "id"))
	if c == nil {
		writeDetail(w, http.StatusNotFound, "Companion not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) selectCompanion(w http.ResponseWriter, r *http.Request, a *account) {
	var in struct {
		CompanionID int64 `json:"companion_id"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	c := s.findCompanion(in.CompanionID)
	if c == nil {
		writeDetail(w, http.StatusNotFound, "Companion not found")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.ID
	a.CompanionID, a.Companion = &id, c
	writeJSON(w, http.StatusOK, a)
}

// --------------------------------------------------------------------
// Entries and comments
// --------------------------------------------------------------------

func (s *Server) ownedEntryLocked(r *http.Request, a *account) *entry {
	e, ok := s.entries[pathID(r, "id")]
	if !ok || e.deleted || e.UserID != a.ID {
		return nil
	}
	return e
}

func (s *Server) userEntriesLocked(a *account) []*entry {
	var out []*entry
	for _, e := range s.entries {
		if !e.deleted && e.UserID == a.ID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func day(dt strfmt.DateTime) string { return time.Time(dt).Format("2006-01-02") }

func (s *Server) listEntries(w http.ResponseWriter, r *http.Request, a *account) {
	q := r.URL.Query()
	date, from, to := q.Get("date"), q.Get("from_date"), q.Get("to_date")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0)
	for _, e := range s.userEntriesLocked(a) {
		d := day(e.CreatedAt)
		if date != "" && !strings.HasPrefix(d, date) {
			continue
		}
		if (from != "" && d < from) || (to != "" && d > to) {
			continue
		}
		out = append(out, map[string]any{"id": e.ID, "summary": e.Summary, "created_at": e.CreatedAt})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createEntry(w http.ResponseWriter, r *http.Request, a *account) {
	var in struct {
		Content     string `json:"content"`
		NeedAIReply bool   `json:"need_ai_reply"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Content) == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "content cannot be empty")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextEntry++
	e := &entry{
		ID:        s.nextEntry,
		UserID:    a.ID,
		Content:   in.Content,
		Summary:   summarize(in.Content),
		CreatedAt: strfmt.DateTime(s.now()),
		Pleasure:  0.5,
	}
	if in.NeedAIReply {
		e.AIReply = s.newReplyLocked(e, a)
	}
	s.entries[e.ID] = e
	writeJSON(w, http.StatusOK, e)
}

func summarize(content string) string {
	const limit = 20
	runes := []rune(strings.TrimSpace(content))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit]) + "..."
}

func (s *Server) newReplyLocked(e *entry, a *account) *reply {
	s.nextReply++
	cid := int64(1)
	if a.CompanionID != nil {
		cid = *a.CompanionID
	}
	return &reply{
		ID:          s.nextReply,
		EntryID:     e.ID,
		CompanionID: cid,
		ReplyType:   "comfort",
		Content:     "Thank you for sharing this with me.",
		ModelName:   "fake",
		CreatedAt:   strfmt.DateTime(s.now()),
	}
}

func (s *Server) getEntry(w http.ResponseWriter, r *http.Request, a *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.ownedEntryLocked(r, a)
	if e == nil {
		writeDetail(w, http.StatusNotFound, "Entry not found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request, a *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.ownedEntryLocked(r, a)
	if e == nil {
		writeDetail(w, http.StatusNotFound, "Entry not found")
		return
	}
	e.deleted = true
	writeJSON(w, http.StatusOK, map[string]string{"message": "Entry deleted"})
}

func (s *Server) aiReply(w http.ResponseWriter, r *http.Request, a *account) {
	force := r.URL.Query().Get("force_regenerate") == "true"
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.ownedEntryLocked(r, a)
	if e == nil {
		writeDetail(w, http.StatusNotFound, "Entry not found")
		return
	}
	if e.AIReply == nil || force {
		e.AIReply = s.newReplyLocked(e, a)
	}
	writeJSON(w, http.StatusOK, e.AIReply)
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request, a *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.ownedEntryLocked(r, a)
	if e == nil {
		writeDetail(w, http.StatusNotFound, "Entry not found")
		return
	}
	out := append([]comment{}, s.comments[e.ID]...)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) addComment(w http.ResponseWriter, r *http.Request, a *account) {
	var in struct {
		Content string `json:"content"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.ownedEntryLocked(r, a)
	if e == nil {
		writeDetail(w, http.StatusNotFound, "Entry not found")
		return
	}
	s.nextComment++
	author := a.Email
	if a.Username != nil {
		author = *a.Username
	}
	c := comment{ID: s.nextComment, Content: in.Content, CreatedAt: strfmt.DateTime(s.now()), AuthorName: author}
	s.comments[e.ID] = append(s.comments[e.ID], c)
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request, a *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.ownedEntryLocked(r, a)
	if e == nil {
		writeDetail(w, http.StatusNotFound, "Entry not found")
		return
	}
	cid := pathID(r, "commentId")
	list := s.comments[e.ID]
	for i := range list {
		if list[i].ID == cid {
			s.comments[e.ID] = append(list[:i:i], list[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted"})
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Comment not found")
}

// --------------------------------------------------------------------
// Insights, time capsule, stats and calendars
// --------------------------------------------------------------------

func validRange(rng string) bool { return rng == "week" || rng == "month" }

func (s *Server) insightsFor(w http.ResponseWriter, r *http.Request, a *account) {
	rng := r.URL.Query().Get("range")
	if !validRange(rng) {
		writeDetail(w, http.StatusUnprocessableEntity, "range must be week or month")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if raw, ok := s.insights[rng]; ok {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(raw)
		return
	}
	n := len(s.userEntriesLocked(a))
	writeJSON(w, http.StatusOK, map[string]any{
		"stats":       map[string]int{"entries": n},
		"themes":      map[string]float64{},
		"emotions":    map[string]int{},
		"note":        "Keep going, one page at a time.",
		"note_author": "Capy",
	})
}

func (s *Server) timeCapsuleFor(w http.ResponseWriter, _ *http.Request, a *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timeCapsule != nil {
		_, _ = w.Write(s.timeCapsule)
		return
	}
	entries := s.userEntriesLocked(a)
	if len(entries) == 0 {
		writeJSON(w, http.StatusOK, map[string]bool{"found": false})
		return
	}
	oldest := entries[len(entries)-1]
	writeJSON(w, http.StatusOK, map[string]any{
		"found":        true,
		"source_date":  day(oldest.CreatedAt),
		"source_level": "week",
		"quote":        oldest.Summary,
		"entry_id":     oldest.ID,
	})
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request, a *account) {
	q := r.URL.Query()
	rng, date := q.Get("stats_range"), q.Get("date")
	if !validRange(rng) {
		writeDetail(w, http.StatusUnprocessableEntity, "stats_range must be week or month")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.userEntriesLocked(a) {
		if date == "" || strings.HasPrefix(day(e.CreatedAt), date) {
			n++
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"range": rng, "date": date, "entries": n})
}

func paw(n int) string {
	switch {
	case n == 0:
		return "none"
	case n == 1:
		return "light"
	default:
		return "dark"
	}
}

func (s *Server) countsByDayLocked(a *account) map[string]int {
	out := map[string]int{}
	for _, e := range s.userEntriesLocked(a) {
		out[day(e.CreatedAt)]++
	}
	return out
}

func (s *Server) weekCalendar(w http.ResponseWriter, _ *http.Request, a *account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := s.countsByDayLocked(a)
	today := s.now()
	offset := (int(today.Weekday()) + 6) % 7
	monday := today.AddDate(0, 0, -offset)
	week := make([]map[string]string, 0, 7)
	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i).Format("2006-01-02")
		week = append(week, map[string]string{"date": d, "paw": paw(counts[d])})
	}
	writeJSON(w, http.StatusOK, map[string]any{"week": week})
}

func (s *Server) monthCalendar(w http.ResponseWriter, r *http.Request, a *account) {
	month := r.URL.Query().Get("month")
	first, err := time.ParseInLocation("2006-01", month, time.Local)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "month must be YYYY-MM")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := s.countsByDayLocked(a)
	start := first.AddDate(0, 0, -((int(first.Weekday()) + 6) % 7))
	weeks := make([][]map[string]any, 6)
	for wk := range weeks {
		for d := 0; d < 7; d++ {
			cur := start.AddDate(0, 0, wk*7+d)
			ds := cur.Format("2006-01-02")
			weeks[wk] = append(weeks[wk], map[string]any{
				"date":     ds,
				"in_month": cur.Month() == first.Month(),
				"paw":      paw(counts[ds]),
			})
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"month": month, "weeks": weeks})
}

package types

import (
	"encoding/json"
)

// ------------------------------
// Response Types
// ------------------------------

// LoginResponse carries the issued bearer token
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	User        *User  `json:"user,omitempty"`
}

// DeleteResponse is the acknowledgement body of delete endpoints
type DeleteResponse struct {
	Message string `json:"message,omitempty"`
}

// InsightsSnapshot is the server-computed aggregate for a range.
// Nested shapes are owned by the backend and kept loosely typed.
type InsightsSnapshot struct {
	Stats        map[string]any     `json:"stats"`
	Themes       map[string]float64 `json:"themes,omitempty"`
	Calendar     json.RawMessage    `json:"calendar,omitempty"`
	Emotions     map[string]int     `json:"emotions,omitempty"`
	ValenceTrend json.RawMessage    `json:"valence_trend,omitempty"`
	Booster      []string           `json:"booster,omitempty"`
	Stressors    []string           `json:"stressors,omitempty"`
	Note         string             `json:"note,omitempty"`
	NoteAuthor   string             `json:"note_author,omitempty"`
}

// Health mirrors GET /health
type Health struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	ServerTime string `json:"server_time"`
	Database   string `json:"database"`
	AIService  string `json:"ai_service"`
}

// Paw is the intensity marker of a calendar day
type Paw string

const (
	PawNone  Paw = "none"
	PawLight Paw = "light"
	PawDark  Paw = "dark"
)

// CalendarDay is one cell of the weekly calendar
type CalendarDay struct {
	Date string `json:"date"`
	Paw  Paw    `json:"paw"`
}

// WeekCalendar mirrors GET /journals/calendar/week
type WeekCalendar struct {
	Week []CalendarDay `json:"week"`
}

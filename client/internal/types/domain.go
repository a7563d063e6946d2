package types

import (
	"github.com/go-openapi/strfmt"
)

// ------------------------------
// Core Domain Entities
// ------------------------------

// Theme is the primary topic the backend assigns to an entry.
type Theme string

const (
	ThemeJob     Theme = "job"
	ThemeHobbies Theme = "hobbies"
	ThemeSocial  Theme = "social"
	ThemeOther   Theme = "other"
)

// User represents the signed-in account
type User struct {
	ID          int64           `json:"id"`
	Username    *string         `json:"username,omitempty"`
	Email       string          `json:"email"`
	CompanionID *int64          `json:"companion_id,omitempty"`
	Companion   *Companion      `json:"companion,omitempty"`
	CreatedAt   strfmt.DateTime `json:"created_at"`
}

// Companion represents an AI persona a user can write to
type Companion struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	IdentityTitle *string  `json:"identity_title,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	AvatarKey     *string  `json:"avatar_key,omitempty"`
	ThemeColor    *string  `json:"theme_color,omitempty"`
	OrderIndex    *int     `json:"order_index,omitempty"`
}

// EntrySummary is the list-view projection of a journal entry
type EntrySummary struct {
	ID           int64           `json:"id"`
	Summary      string          `json:"summary"`
	CreatedAt    strfmt.DateTime `json:"created_at"`
	Emotion      *string         `json:"emotion,omitempty"`
	PrimaryTheme *Theme          `json:"primary_theme,omitempty"`
}

// Entry is a full journal entry.
// EmotionIntensity ranges 1..3 when present.
type Entry struct {
	ID               int64             `json:"id"`
	UserID           int64             `json:"user_id"`
	Content          string            `json:"content"`
	Summary          *string           `json:"summary"`
	CreatedAt        strfmt.DateTime   `json:"created_at"`
	Emotion          *string           `json:"emotion,omitempty"`
	EmotionIntensity *int              `json:"emotion_intensity,omitempty"`
	PrimaryTheme     *Theme            `json:"primary_theme,omitempty"`
	ThemeScores      map[Theme]float64 `json:"theme_scores,omitempty"`
	AIReply          *AIReply          `json:"ai_reply,omitempty"`
	Pleasure         float64           `json:"pleasure"`
}

// AIReply is the companion's answer to an entry
type AIReply struct {
	ID          int64           `json:"id"`
	EntryID     int64           `json:"entry_id"`
	CompanionID int64           `json:"companion_id"`
	ReplyType   string          `json:"reply_type"`
	Content     string          `json:"content"`
	ModelName   *string         `json:"model_name,omitempty"`
	CreatedAt   strfmt.DateTime `json:"created_at"`
}

// Comment is a self-note attached to an entry
type Comment struct {
	ID         int64           `json:"id"`
	Content    string          `json:"content"`
	CreatedAt  strfmt.DateTime `json:"created_at"`
	AuthorName *string         `json:"author_name,omitempty"`
}

// SourceLevel is the granularity a time capsule quote was picked from.
type SourceLevel string

const (
	SourceYear  SourceLevel = "year"
	SourceMonth SourceLevel = "month"
	SourceWeek  SourceLevel = "week"
)

// TimeCapsule is a quote resurfaced from an older entry
type TimeCapsule struct {
	Found       bool         `json:"found"`
	SourceDate  *strfmt.Date `json:"source_date,omitempty"`
	SourceLevel *SourceLevel `json:"source_level,omitempty"`
	Quote       *string      `json:"quote,omitempty"`
	EntryID     *int64       `json:"entry_id,omitempty"`
}

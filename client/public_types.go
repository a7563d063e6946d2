package client

import (
	"github.com/capydiary/capydiary/client/internal/prefs"
	"github.com/capydiary/capydiary/client/internal/types"
	"github.com/capydiary/capydiary/client/prompts"
)

// Public type aliases so SDK consumers can import only the client package.
type (
	// Requests
	Credentials        = types.Credentials
	CreateEntryRequest = types.CreateEntryRequest
	ListEntriesParams  = types.ListEntriesParams
	AIReplyOptions     = types.AIReplyOptions
	StatsParams        = types.StatsParams

	// Domain entities
	User         = types.User
	Companion    = types.Companion
	Entry        = types.Entry
	EntrySummary = types.EntrySummary
	AIReply      = types.AIReply
	Comment      = types.Comment
	Theme        = types.Theme
	TimeCapsule  = types.TimeCapsule
	SourceLevel  = types.SourceLevel

	// Responses
	LoginResponse    = types.LoginResponse
	DeleteResponse   = types.DeleteResponse
	InsightsSnapshot = types.InsightsSnapshot
	Health           = types.Health
	WeekCalendar     = types.WeekCalendar
	CalendarDay      = types.CalendarDay
	Paw              = types.Paw

	Range    = types.Range
	Language = prefs.Language
	Prompt   = prompts.Prompt
)

const (
	RangeWeek  = types.RangeWeek
	RangeMonth = types.RangeMonth

	English = prefs.English
	Chinese = prefs.Chinese
)

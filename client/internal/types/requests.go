package types

// ------------------------------
// Request Types
// ------------------------------

// Credentials holds the email/password pair for register and login
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateEntryRequest holds parameters for a new journal entry
type CreateEntryRequest struct {
	Content     string `json:"content"`
	NeedAIReply bool   `json:"need_ai_reply"`
}

// ListEntriesParams filters the entry list. Zero values are omitted.
// Date accepts a day (YYYY-MM-DD) or a month (YYYY-MM).
type ListEntriesParams struct {
	Date     string
	FromDate string
	ToDate   string
}

// AIReplyOptions controls reply generation
type AIReplyOptions struct {
	ForceRegenerate bool
}

// AddCommentRequest holds the self-note body
type AddCommentRequest struct {
	Content string `json:"content"`
}

// SelectCompanionRequest binds a companion to the current user
type SelectCompanionRequest struct {
	CompanionID int64 `json:"companion_id"`
}

// UpdateNicknameRequest renames the current user
type UpdateNicknameRequest struct {
	Username string `json:"username"`
}

// StatsParams selects the statistics window.
// Date is YYYY-MM for month and YYYY-MM-DD for week.
type StatsParams struct {
	Range Range
	Date  string
}

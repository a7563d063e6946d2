package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/capydiary/capydiary/client/internal/types"
)

// EntriesListPath builds the list URL path. The trailing slash before the
// query string is deliberate: the backend redirects /entries to /entries/
// and the redirect would drop the Authorization header.
func EntriesListPath(p types.ListEntriesParams) string {
	q := url.Values{}
	if p.Date != "" {
		q.Set("date", p.Date)
	}
	if p.FromDate != "" {
		q.Set("from_date", p.FromDate)
	}
	if p.ToDate != "" {
		q.Set("to_date", p.ToDate)
	}
	if qs := q.Encode(); qs != "" {
		return "/entries/?" + qs
	}
	return "/entries/"
}

// ListEntries returns the current user's entries, newest first.
func ListEntries(ctx context.Context, d Doer, p types.ListEntriesParams) ([]types.EntrySummary, error) {
	res, err := call[[]types.EntrySummary](ctx, d, "list entries", http.MethodGet, EntriesListPath(p))
	if err != nil {
		return nil, err
	}
	return *res, nil
}

// GetEntry retrieves a single entry by id.
func GetEntry(ctx context.Context, d Doer, id int64) (*types.Entry, error) {
	if err := types.ValidateID(id, "entryId"); err != nil {
		return nil, err
	}
	return call[types.Entry](ctx, d, "get entry", http.MethodGet, fmt.Sprintf("/entries/%d", id))
}

// CreateEntry writes a new journal entry.
func CreateEntry(ctx context.Context, d Doer, req types.CreateEntryRequest) (*types.Entry, error) {
	if err := types.ValidateContent(req.Content); err != nil {
		return nil, err
	}
	return call[types.Entry](ctx, d, "create entry", http.MethodPost, "/entries/", WithJSON(req))
}

// DeleteEntry soft-deletes an entry; the backend keeps the row flagged.
func DeleteEntry(ctx context.Context, d Doer, id int64) (*types.DeleteResponse, error) {
	if err := types.ValidateID(id, "entryId"); err != nil {
		return nil, err
	}
	return call[types.DeleteResponse](ctx, d, "delete entry", http.MethodDelete, fmt.Sprintf("/entries/%d", id))
}

// GenerateAIReply asks the current companion for a reply to an entry. An
// existing reply is returned unless ForceRegenerate is set.
func GenerateAIReply(ctx context.Context, d Doer, entryID int64, opts types.AIReplyOptions) (*types.AIReply, error) {
	if err := types.ValidateID(entryID, "entryId"); err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/entries/%d/ai_reply", entryID)
	if opts.ForceRegenerate {
		path += "?force_regenerate=true"
	}
	return call[types.AIReply](ctx, d, "generate ai reply", http.MethodPost, path)
}

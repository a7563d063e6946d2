package client

import (
	"context"

	"github.com/capydiary/capydiary/client/internal/api"
	"github.com/capydiary/capydiary/client/internal/types"
)

// --------------------------------------------------------------------
// Journal entries
// --------------------------------------------------------------------

// ListEntries returns entry summaries, newest first.
func (c *Client) ListEntries(ctx context.Context, p ListEntriesParams) ([]EntrySummary, error) {
	return api.ListEntries(ctx, c.req, p)
}

// GetEntry returns a full entry including any AI reply.
func (c *Client) GetEntry(ctx context.Context, id int64) (*Entry, error) {
	return api.GetEntry(ctx, c.req, id)
}

// CreateEntry writes a journal entry. Today's cached insights are dropped
// so the next read reflects it.
func (c *Client) CreateEntry(ctx context.Context, req CreateEntryRequest) (*Entry, error) {
	e, err := api.CreateEntry(ctx, c.req, req)
	if err != nil {
		return nil, err
	}
	c.invalidateAllInsights(ctx, "create")
	return e, nil
}

// DeleteEntry soft-deletes an entry and drops today's cached insights.
func (c *Client) DeleteEntry(ctx context.Context, id int64) (*DeleteResponse, error) {
	res, err := api.DeleteEntry(ctx, c.req, id)
	if err != nil {
		return nil, err
	}
	c.invalidateAllInsights(ctx, "delete")
	return res, nil
}

// GenerateAIReply asks the current companion to answer an entry.
func (c *Client) GenerateAIReply(ctx context.Context, entryID int64, opts AIReplyOptions) (*AIReply, error) {
	return api.GenerateAIReply(ctx, c.req, entryID, opts)
}

// ListComments returns the self-notes on an entry.
func (c *Client) ListComments(ctx context.Context, entryID int64) ([]Comment, error) {
	return api.ListComments(ctx, c.req, entryID)
}

// AddComment attaches a self-note to an entry.
func (c *Client) AddComment(ctx context.Context, entryID int64, content string) (*Comment, error) {
	return api.AddComment(ctx, c.req, entryID, content)
}

// DeleteComment removes a self-note.
func (c *Client) DeleteComment(ctx context.Context, entryID, commentID int64) (*DeleteResponse, error) {
	return api.DeleteComment(ctx, c.req, entryID, commentID)
}

func (c *Client) invalidateAllInsights(ctx context.Context, reason string) {
	for _, r := range types.Ranges() {
		c.InvalidateInsights(ctx, r)
	}
	insightsInvalidationsTotal.WithLabelValues(reason).Inc()
}

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/capydiary/capydiary/client/internal/types"
)

// ListComments returns the self-notes under an entry, oldest first.
func ListComments(ctx context.Context, d Doer, entryID int64) ([]types.Comment, error) {
	if err := types.ValidateID(entryID, "entryId"); err != nil {
		return nil, err
	}
	res, err := call[[]types.Comment](ctx, d, "list comments", http.MethodGet, fmt.Sprintf("/entries/%d/comments/", entryID))
	if err != nil {
		return nil, err
	}
	return *res, nil
}

// AddComment attaches a self-note to an entry.
func AddComment(ctx context.Context, d Doer, entryID int64, content string) (*types.Comment, error) {
	if err := types.ValidateID(entryID, "entryId"); err != nil {
		return nil, err
	}
	if err := types.ValidateContent(content); err != nil {
		return nil, err
	}
	return call[types.Comment](ctx, d, "add comment", http.MethodPost, fmt.Sprintf("/entries/%d/comments/", entryID),
		WithJSON(types.AddCommentRequest{Content: content}))
}

// DeleteComment removes a self-note. Only its author may delete it; the
// backend answers 403 otherwise.
func DeleteComment(ctx context.Context, d Doer, entryID, commentID int64) (*types.DeleteResponse, error) {
	if err := types.ValidateID(entryID, "entryId"); err != nil {
		return nil, err
	}
	if err := types.ValidateID(commentID, "commentId"); err != nil {
		return nil, err
	}
	return call[types.DeleteResponse](ctx, d, "delete comment", http.MethodDelete,
		fmt.Sprintf("/entries/%d/comments/%d", entryID, commentID))
}

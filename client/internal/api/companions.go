package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/capydiary/capydiary/client/internal/types"
)

// ListCompanions returns every selectable AI persona.
func ListCompanions(ctx context.Context, d Doer) ([]types.Companion, error) {
	res, err := call[[]types.Companion](ctx, d, "list companions", http.MethodGet, "/companions/")
	if err != nil {
		return nil, err
	}
	return *res, nil
}

// GetCompanion retrieves one persona by id.
func GetCompanion(ctx context.Context, d Doer, id int64) (*types.Companion, error) {
	if err := types.ValidateID(id, "companionId"); err != nil {
		return nil, err
	}
	return call[types.Companion](ctx, d, "get companion", http.MethodGet, fmt.Sprintf("/companions/%d", id))
}

// SelectCompanion makes id the current user's companion and returns the
// updated user.
func SelectCompanion(ctx context.Context, d Doer, id int64) (*types.User, error) {
	if err := types.ValidateID(id, "companionId"); err != nil {
		return nil, err
	}
	return call[types.User](ctx, d, "select companion", http.MethodPost, "/companions/select",
		WithJSON(types.SelectCompanionRequest{CompanionID: id}))
}

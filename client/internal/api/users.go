package api

import (
	"context"
	"net/http"

	"github.com/capydiary/capydiary/client/internal/types"
)

// TokenStore receives the credential issued by Login and drops it on Logout.
type TokenStore interface {
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// Register creates an account. It does not sign the user in.
func Register(ctx context.Context, d Doer, creds types.Credentials) (*types.User, error) {
	return call[types.User](ctx, d, "register", http.MethodPost, "/users/register", WithJSON(creds))
}

// Login authenticates and, when the backend issues a token, stores it.
func Login(ctx context.Context, d Doer, tokens TokenStore, creds types.Credentials) (*types.LoginResponse, error) {
	res, err := call[types.LoginResponse](ctx, d, "login", http.MethodPost, "/users/login", WithJSON(creds))
	if err != nil {
		return nil, err
	}
	if res.AccessToken != "" {
		if err := tokens.SetToken(ctx, res.AccessToken); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Logout forgets the stored token. No request is sent.
func Logout(ctx context.Context, tokens TokenStore) error {
	return tokens.ClearToken(ctx)
}

// CurrentUser fetches the signed-in user.
func CurrentUser(ctx context.Context, d Doer) (*types.User, error) {
	return call[types.User](ctx, d, "current user", http.MethodGet, "/users/me")
}

// UpdateNickname renames the signed-in user.
func UpdateNickname(ctx context.Context, d Doer, nickname string) (*types.User, error) {
	if err := types.ValidateContent(nickname); err != nil {
		return nil, err
	}
	return call[types.User](ctx, d, "update nickname", http.MethodPatch, "/users/me/username",
		WithJSON(types.UpdateNicknameRequest{Username: nickname}))
}

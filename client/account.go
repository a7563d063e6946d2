package client

import (
	"context"

	"github.com/capydiary/capydiary/client/internal/api"
)

// --------------------------------------------------------------------
// Account operations
// --------------------------------------------------------------------

// Register creates an account. It does not sign in.
func (c *Client) Register(ctx context.Context, creds Credentials) (*User, error) {
	return api.Register(ctx, c.req, creds)
}

// Login authenticates and stores the issued token. With WithWarmUpOnLogin
// it also schedules a background warm-up of today's cached views.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	res, err := api.Login(ctx, c.req, c.session, creds)
	if err != nil {
		return nil, err
	}
	if c.warmOnLogin && res.AccessToken != "" {
		c.WarmUp(context.WithoutCancel(ctx))
	}
	return res, nil
}

// Logout forgets the stored token. Nothing is sent to the backend and
// cached views of other days or accounts stay on disk.
func (c *Client) Logout(ctx context.Context) error {
	return api.Logout(ctx, c.session)
}

// Authenticated reports whether a token is stored. It does not check the
// token with the backend; use CurrentUser for that.
func (c *Client) Authenticated(ctx context.Context) (bool, error) {
	return c.session.Authenticated(ctx)
}

// CurrentUser returns the signed-in user.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	return api.CurrentUser(ctx, c.req)
}

// UpdateNickname renames the signed-in user.
func (c *Client) UpdateNickname(ctx context.Context, nickname string) (*User, error) {
	return api.UpdateNickname(ctx, c.req, nickname)
}

// --------------------------------------------------------------------
// Companions
// --------------------------------------------------------------------

// ListCompanions returns the selectable AI personas.
func (c *Client) ListCompanions(ctx context.Context) ([]Companion, error) {
	return api.ListCompanions(ctx, c.req)
}

// GetCompanion returns one persona.
func (c *Client) GetCompanion(ctx context.Context, id int64) (*Companion, error) {
	return api.GetCompanion(ctx, c.req, id)
}

// SelectCompanion makes id the companion that replies to new entries.
func (c *Client) SelectCompanion(ctx context.Context, id int64) (*User, error) {
	return api.SelectCompanion(ctx, c.req, id)
}

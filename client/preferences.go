package client

import (
	"context"

	"github.com/capydiary/capydiary/client/internal/prefs"
	"github.com/capydiary/capydiary/client/prompts"
)

// Language returns the saved display language, English by default.
func (c *Client) Language(ctx context.Context) (Language, error) {
	return c.prefs.Language(ctx)
}

// SetLanguage saves the display language. Only English and Chinese are
// accepted.
func (c *Client) SetLanguage(ctx context.Context, lang Language) error {
	return c.prefs.SetLanguage(ctx, lang)
}

// ParseLanguage validates a language code such as "en" or "zh".
func ParseLanguage(s string) (Language, error) { return prefs.Parse(s) }

// Prompts returns the writing prompts in the saved display language.
func (c *Client) Prompts(ctx context.Context) ([]Prompt, error) {
	lang, err := c.Language(ctx)
	if err != nil {
		return nil, err
	}
	return prompts.Load(string(lang))
}

// Package prefs persists per-device user preferences.
package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/capydiary/capydiary/client/internal/kvstore"
)

// LanguageKey is the storage key of the display language.
const LanguageKey = "app_language"

// Language is a supported display language.
type Language string

const (
	English Language = "en"
	Chinese Language = "zh"
)

// DefaultLanguage applies until the user picks one.
const DefaultLanguage = English

// ErrUnsupportedLanguage is returned by SetLanguage for anything but en/zh.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Parse validates s as a Language.
func Parse(s string) (Language, error) {
	switch l := Language(s); l {
	case English, Chinese:
		return l, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
}

// Prefs reads and writes preferences in a kvstore.Store.
type Prefs struct {
	store kvstore.Store
}

// New returns Prefs backed by store.
func New(store kvstore.Store) *Prefs { return &Prefs{store: store} }

// Language returns the stored language. A missing or unrecognised value
// yields DefaultLanguage.
func (p *Prefs) Language(ctx context.Context) (Language, error) {
	v, ok, err := p.store.Get(ctx, LanguageKey)
	if err != nil {
		return DefaultLanguage, fmt.Errorf("read language: %w", err)
	}
	if !ok {
		return DefaultLanguage, nil
	}
	l, err := Parse(string(v))
	if err != nil {
		return DefaultLanguage, nil
	}
	return l, nil
}

// SetLanguage persists lang.
func (p *Prefs) SetLanguage(ctx context.Context, lang Language) error {
	if _, err := Parse(string(lang)); err != nil {
		return err
	}
	if err := p.store.Set(ctx, LanguageKey, []byte(lang)); err != nil {
		return fmt.Errorf("store language: %w", err)
	}
	return nil
}

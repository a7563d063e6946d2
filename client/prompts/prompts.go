// Package prompts ships the built-in writing prompts shown when starting a
// new journal entry.
package prompts

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// Version is bumped whenever the prompt set changes incompatibly.
const Version = "v1"

// FallbackLanguage is used for languages without translations.
const FallbackLanguage = "en"

//go:embed library.yaml
var libraryYAML []byte

// Prompt is a writing prompt rendered in one language.
type Prompt struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type localized map[string]string

func (l localized) in(lang string) string {
	if s, ok := l[lang]; ok && s != "" {
		return s
	}
	return l[FallbackLanguage]
}

type library struct {
	Version string `yaml:"version"`
	Prompts []struct {
		ID          string    `yaml:"id"`
		Title       localized `yaml:"title"`
		Description localized `yaml:"description"`
	} `yaml:"prompts"`
}

var (
	parseOnce sync.Once
	parsed    library
	parseErr  error
)

func load() (library, error) {
	parseOnce.Do(func() {
		if err := yaml.Unmarshal(libraryYAML, &parsed); err != nil {
			parseErr = fmt.Errorf("parse prompt library: %w", err)
			return
		}
		if parsed.Version != Version {
			parseErr = fmt.Errorf("prompt library version %q, want %q", parsed.Version, Version)
		}
	})
	return parsed, parseErr
}

// Load returns every prompt in lang, in library order. Unknown languages
// fall back to English.
func Load(lang string) ([]Prompt, error) {
	lib, err := load()
	if err != nil {
		return nil, err
	}
	out := make([]Prompt, 0, len(lib.Prompts))
	for _, p := range lib.Prompts {
		out = append(out, Prompt{ID: p.ID, Title: p.Title.in(lang), Description: p.Description.in(lang)})
	}
	return out, nil
}

// Lookup returns the prompt with id in lang.
func Lookup(lang, id string) (Prompt, error) {
	all, err := Load(lang)
	if err != nil {
		return Prompt{}, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return Prompt{}, fmt.Errorf("unknown prompt %q", id)
}

// Package config loads CapyDiary client settings from CAPYDIARY_* variables.
package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// EnvPrefix is the prefix of every variable read by Load.
const EnvPrefix = "CAPYDIARY"

// DefaultBaseURL is used when neither an explicit URL nor a dev host is set.
const DefaultBaseURL = "http://localhost:9000"

// Config holds client settings.
//
//	CAPYDIARY_API_URL        explicit backend URL, wins over everything
//	CAPYDIARY_DEV_HOST       host[:port] of the dev bundler; its host is reused
//	CAPYDIARY_DEV_API_PORT   backend port on the dev host
type Config struct {
	APIURL      string        `envconfig:"API_URL"`
	DevHost     string        `envconfig:"DEV_HOST"`
	DevAPIPort  int           `envconfig:"DEV_API_PORT" default:"9000"`
	TokenKey    string        `envconfig:"TOKEN_KEY" default:"access_token"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	Debug       bool          `envconfig:"DEBUG" default:"false"`
}

// Load parses the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid %s_LOG_LEVEL %q: %w", EnvPrefix, cfg.LogLevel, err)
	}
	return &cfg, nil
}

// BaseURL resolves the backend URL: the explicit API URL, then the dev
// host heuristic, then DefaultBaseURL.
func (c *Config) BaseURL() string {
	if u := strings.TrimSpace(c.APIURL); u != "" {
		return strings.TrimRight(u, "/")
	}
	if host := devHostName(c.DevHost); host != "" {
		port := c.DevAPIPort
		if port <= 0 {
			port = 9000
		}
		return fmt.Sprintf("http://%s", net.JoinHostPort(host, fmt.Sprint(port)))
	}
	return DefaultBaseURL
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() zerolog.Level {
	if c.Debug {
		return zerolog.DebugLevel
	}
	l, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}

// LogSummary writes the effective settings at debug level.
func (c *Config) LogSummary(l zerolog.Logger) {
	l.Debug().
		Str("base_url", c.BaseURL()).
		Str("token_key", c.TokenKey).
		Dur("http_timeout", c.HTTPTimeout).
		Bool("debug", c.Debug).
		Msg("Configuration loaded")
}

// devHostName extracts the host part of "host:port", "host" or "[v6]:port".
func devHostName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(s); err == nil {
		return h
	}
	return strings.Trim(s, "[]")
}

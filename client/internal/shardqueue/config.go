package shardqueue

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// EnvPrefix scopes the executor's environment variables,
// e.g. CAPYDIARY_WARMUP_SHARDS=2 CAPYDIARY_WARMUP_MAX_ATTEMPTS=5.
const EnvPrefix = "CAPYDIARY_WARMUP"

// Config groups the executor tunables.
type Config struct {
	Shards         int           `envconfig:"SHARDS"          default:"2"`
	QueueSize      int           `envconfig:"QUEUE_SIZE"      default:"16"`
	EnqueueTimeout time.Duration `envconfig:"ENQUEUE_TIMEOUT" default:"100ms"`

	MaxAttempts int           `envconfig:"MAX_ATTEMPTS" default:"4"`
	BaseBackoff time.Duration `envconfig:"BASE_BACKOFF" default:"250ms"`
	MaxInterval time.Duration `envconfig:"MAX_INTERVAL" default:"5s"`

	// ErrorHandler receives the final error of a job that gave up.
	ErrorHandler func(key string, err error) `envconfig:"-"`
	Logger       zerolog.Logger              `ignored:"true"`
}

// LoadConfig reads Config from CAPYDIARY_WARMUP_* variables.
func LoadConfig() (Config, error) {
	var c Config
	return c, envconfig.Process(EnvPrefix, &c)
}

func (c Config) withDefaults() Config {
	if c.Shards <= 0 {
		c.Shards = 2
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 16
	}
	if c.EnqueueTimeout <= 0 {
		c.EnqueueTimeout = 100 * time.Millisecond
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 4
	}
	if c.BaseBackoff <= 0 {
		c.BaseBackoff = 250 * time.Millisecond
	}
	if c.MaxInterval <= 0 {
		c.MaxInterval = 5 * time.Second
	}
	return c
}

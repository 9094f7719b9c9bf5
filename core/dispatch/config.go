package dispatch

import "time"

// Config holds engine settings loadable from the environment.
type Config struct {
	MaxConcurrency  int           `env:"DISPATCH_MAX_CONCURRENCY" envDefault:"10"`
	IdleTimeout     time.Duration `env:"DISPATCH_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"DISPATCH_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// DefaultConfig returns the same values as the env defaults.
func DefaultConfig() Config {
	return Config{
		MaxConcurrency:  10,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

// NewFromConfig creates an Engine from configuration.
// Additional options override config values.
func NewFromConfig[T any](cfg Config, opts ...Option) (*Engine[T], error) {
	allOpts := append([]Option{
		WithIdleTimeout(cfg.IdleTimeout),
		WithShutdownTimeout(cfg.ShutdownTimeout),
	}, opts...)

	return New[T](cfg.MaxConcurrency, allOpts...)
}

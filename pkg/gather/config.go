package gather

import "time"

// Config holds gatherer settings loadable from the environment.
// A zero Concurrency keeps the runtime.NumCPU()+3 default.
type Config struct {
	Timeout     time.Duration `env:"GATHER_TIMEOUT" envDefault:"30s"`
	Concurrency int           `env:"GATHER_CONCURRENCY" envDefault:"0"`
}

// NewFromConfig creates a Gatherer from configuration.
// Additional options override config values.
func NewFromConfig(cfg Config, opts ...Option) (*Gatherer, error) {
	var cfgOpts []Option
	if cfg.Timeout > 0 {
		cfgOpts = append(cfgOpts, WithTimeout(cfg.Timeout))
	}
	if cfg.Concurrency > 0 {
		cfgOpts = append(cfgOpts, WithConcurrency(cfg.Concurrency))
	}
	return New(append(cfgOpts, opts...)...)
}

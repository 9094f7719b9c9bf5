package toggle

import "time"

// Config holds toggle settings loadable from the environment.
type Config struct {
	URL          string        `env:"TOGGLE_URL"`
	Default      bool          `env:"TOGGLE_DEFAULT" envDefault:"true"`
	Interval     time.Duration `env:"TOGGLE_INTERVAL" envDefault:"30s"`
	InitialDelay time.Duration `env:"TOGGLE_INITIAL_DELAY" envDefault:"0s"`
	FetchTimeout time.Duration `env:"TOGGLE_FETCH_TIMEOUT" envDefault:"5s"`
}

// NewFromConfig creates a Toggle from configuration. A nil src polls
// cfg.URL over HTTP. Additional options override config values.
func NewFromConfig(cfg Config, src Source, opts ...Option) (*Toggle, error) {
	if src == nil && cfg.URL != "" {
		src = NewHTTPSource(cfg.URL, nil)
	}

	allOpts := append([]Option{
		WithDefault(cfg.Default),
		WithInterval(cfg.Interval),
		WithInitialDelay(cfg.InitialDelay),
		WithFetchTimeout(cfg.FetchTimeout),
	}, opts...)

	return New(src, allOpts...)
}

package toggle

import (
	"log/slog"
	"time"
)

// Option configures a Toggle.
type Option func(*options)

type options struct {
	initial      bool
	interval     time.Duration
	initialDelay time.Duration
	fetchTimeout time.Duration
	name         string
	logger       *slog.Logger
}

// WithDefault sets the value reported before the first successful poll.
// Default is true.
func WithDefault(enabled bool) Option {
	return func(o *options) {
		o.initial = enabled
	}
}

// WithInterval sets the time between polls. Default is 30 seconds.
// New rejects values that are not positive.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		o.interval = d
	}
}

// WithInitialDelay delays the first poll after Start. Default is zero.
// New rejects negative values.
func WithInitialDelay(d time.Duration) Option {
	return func(o *options) {
		o.initialDelay = d
	}
}

// WithFetchTimeout bounds each call to the source. Default is 5 seconds.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.fetchTimeout = d
		}
	}
}

// WithName labels the toggle in log records.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger sets the logger for poll results and failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

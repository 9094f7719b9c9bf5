package dispatch

import (
	"log/slog"
	"time"
)

// ErrorHandler receives broadcasts aborted by a failing subscriber.
// It runs on the goroutine that executed the broadcast, which may be the
// goroutine that called Dispatch.
type ErrorHandler func(err *DeliveryError)

// Option configures an Engine.
type Option func(*options)

type options struct {
	id              string
	logger          *slog.Logger
	errorHandler    ErrorHandler
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
}

// WithLogger sets the logger used for lifecycle events and delivery failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithErrorHandler registers a callback for delivery failures.
// Failures are always logged at error level, with or without a handler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(o *options) {
		o.errorHandler = handler
	}
}

// WithIdleTimeout sets how long a pool goroutine waits for work before exiting.
// Default is 60 seconds.
func WithIdleTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.idleTimeout = d
		}
	}
}

// WithShutdownTimeout bounds the drain performed by Run when its context ends.
// Dismiss itself is never bounded. Default is 30 seconds.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}

// WithID overrides the generated engine identifier used in logs.
func WithID(id string) Option {
	return func(o *options) {
		if id != "" {
			o.id = id
		}
	}
}

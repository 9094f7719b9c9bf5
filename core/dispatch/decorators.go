package dispatch

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/fanout/core/logger"
)

// Decorator wraps a subscriber to add cross-cutting behavior around Receive.
type Decorator[T any] func(Subscriber[T]) Subscriber[T]

// ApplyDecorators wraps sub with decorators. The first decorator in the list
// becomes the outermost wrapper and runs first.
//
//	sub := dispatch.ApplyDecorators(
//	    mySubscriber,
//	    dispatch.WithTiming[Event](observe),
//	    dispatch.WithLogging[Event](log, "audit"),
//	)
//
// Execution order: timing -> logging -> mySubscriber
func ApplyDecorators[T any](sub Subscriber[T], decorators ...Decorator[T]) Subscriber[T] {
	for i := range len(decorators) {
		sub = decorators[len(decorators)-1-i](sub)
	}
	return sub
}

// Timed calls observe with the start and end time of every Receive on sub.
// observe runs even when sub panics; the panic is then re-raised.
func Timed[T any](sub Subscriber[T], observe func(start, end time.Time)) Subscriber[T] {
	return SubscriberFunc[T](func(msg T) {
		start := time.Now()
		defer func() {
			observe(start, time.Now())
		}()
		sub.Receive(msg)
	})
}

// WithTiming is Timed as a Decorator.
func WithTiming[T any](observe func(start, end time.Time)) Decorator[T] {
	return func(next Subscriber[T]) Subscriber[T] {
		return Timed(next, observe)
	}
}

// Logged writes a debug record after every successful Receive on sub and an
// error record when it panics. name identifies the subscriber in the output.
func Logged[T any](sub Subscriber[T], log *slog.Logger, name string) Subscriber[T] {
	return SubscriberFunc[T](func(msg T) {
		start := time.Now()
		completed := false
		defer func() {
			if completed {
				log.Debug("message delivered",
					logger.SubscriberID(name),
					logger.Duration(time.Since(start)))
				return
			}
			log.Error("message delivery panicked",
				logger.SubscriberID(name),
				logger.Duration(time.Since(start)))
		}()
		sub.Receive(msg)
		completed = true
	})
}

// WithLogging is Logged as a Decorator.
func WithLogging[T any](log *slog.Logger, name string) Decorator[T] {
	return func(next Subscriber[T]) Subscriber[T] {
		return Logged(next, log, name)
	}
}

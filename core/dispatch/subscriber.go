package dispatch

import (
	"fmt"
	"io"
	"sync"

	"github.com/dmitrymomot/fanout/core/predicate"
)

// Subscriber receives messages that passed its registration predicate.
//
// Receive has no return value. A subscriber signals failure by panicking;
// the engine recovers the panic, aborts the rest of that broadcast and
// reports a *DeliveryError through its logger and error handler.
type Subscriber[T any] interface {
	Receive(msg T)
}

// SubscriberFunc adapts an ordinary function to the Subscriber interface.
type SubscriberFunc[T any] func(msg T)

// Receive calls f(msg).
func (f SubscriberFunc[T]) Receive(msg T) {
	f(msg)
}

// Registration pairs a subscriber with the predicate that gates delivery to it.
type Registration[T any] struct {
	ID         string
	Subscriber Subscriber[T]
	Predicate  predicate.Predicate[T]
}

func isNilSubscriber[T any](s Subscriber[T]) bool {
	switch v := s.(type) {
	case nil:
		return true
	case SubscriberFunc[T]:
		return v == nil
	}
	return false
}

type writerSubscriber[T any] struct {
	mu     sync.Mutex
	w      io.Writer
	prefix string
}

// WriterSubscriber writes every message to w as one line, formatted with %v
// and preceded by prefix. Writes are serialized. A failed write panics, which
// the engine reports as a delivery failure.
//
//	engine.Register(dispatch.WriterSubscriber[string](os.Stderr, "error: "),
//		predicate.HasPrefix("ERROR"), "stderr")
func WriterSubscriber[T any](w io.Writer, prefix string) Subscriber[T] {
	return &writerSubscriber[T]{w: w, prefix: prefix}
}

func (s *writerSubscriber[T]) Receive(msg T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.w, "%s%v\n", s.prefix, msg); err != nil {
		panic(fmt.Errorf("write message: %w", err))
	}
}

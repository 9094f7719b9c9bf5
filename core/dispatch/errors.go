package dispatch

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is joined with every construction or registration
	// error so callers can test for the whole class with errors.Is.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidConcurrency is returned when max concurrency is not positive.
	ErrInvalidConcurrency = errors.New("max concurrency must be greater than zero")

	// ErrNilSubscriber is returned when registering a nil subscriber.
	ErrNilSubscriber = errors.New("subscriber is nil")

	// ErrNilPredicate is returned when registering a nil predicate.
	ErrNilPredicate = errors.New("predicate is nil")

	// ErrEmptyID is returned when registering under an empty identity.
	ErrEmptyID = errors.New("subscriber id is empty")

	// ErrDuplicateID is returned by Subscribe when the generated identity is already taken.
	ErrDuplicateID = errors.New("subscriber id already registered")

	// ErrEngineClosed is returned by Dispatch and Register once Dismiss has begun.
	ErrEngineClosed = errors.New("dispatch engine is closed")

	// ErrHealthcheckFailed is returned when the engine health check fails.
	ErrHealthcheckFailed = errors.New("healthcheck failed")

	// ErrEngineNotActive is joined with ErrHealthcheckFailed when the engine is draining or terminated.
	ErrEngineNotActive = errors.New("dispatch engine is not active")

	// ErrShutdownTimeout is returned by Run when the drain outlives the shutdown timeout.
	ErrShutdownTimeout = errors.New("shutdown timeout exceeded")
)

func invalidArgument(err error) error {
	return errors.Join(ErrInvalidArgument, err)
}

// DeliveryError describes a broadcast that was aborted by a failing subscriber.
// Subscribers registered after SubscriberID in the same snapshot did not
// receive the message.
type DeliveryError struct {
	// SubscriberID is the registration whose predicate or Receive call failed.
	SubscriberID string
	// Err is the recovered panic value. Non-error values are wrapped.
	Err error
	// Stack is the goroutine stack captured at recovery.
	Stack []byte
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to subscriber %q failed: %v", e.SubscriberID, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}

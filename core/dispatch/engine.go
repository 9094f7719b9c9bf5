package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/fanout/core/logger"
	"github.com/dmitrymomot/fanout/core/predicate"
)

// Engine broadcasts messages to registered subscribers on a bounded pool
// of goroutines.
type Engine[T any] struct {
	id       string
	registry *Registry[T]
	pool     *pool
	logger   *slog.Logger

	errorHandler    ErrorHandler
	shutdownTimeout time.Duration

	// mu orders state transitions against inflight.Add.
	mu          sync.RWMutex
	state       State
	inflight    sync.WaitGroup
	dismissOnce sync.Once
	done        chan struct{}

	dispatched atomic.Int64
	delivered  atomic.Int64
	failed     atomic.Int64
	callerRuns atomic.Int64
	active     atomic.Int32
}

// New creates an active engine running at most maxConcurrency broadcasts on
// pool goroutines at once. It fails with ErrInvalidConcurrency, joined with
// ErrInvalidArgument, when maxConcurrency is not positive.
func New[T any](maxConcurrency int, opts ...Option) (*Engine[T], error) {
	if maxConcurrency <= 0 {
		return nil, invalidArgument(ErrInvalidConcurrency)
	}

	o := &options{
		id:              uuid.NewString(),
		logger:          logger.Discard(),
		idleTimeout:     60 * time.Second,
		shutdownTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Engine[T]{
		id:              o.id,
		registry:        NewRegistry[T](),
		pool:            newPool(maxConcurrency, o.idleTimeout),
		logger:          o.logger,
		errorHandler:    o.errorHandler,
		shutdownTimeout: o.shutdownTimeout,
		state:           StateActive,
		done:            make(chan struct{}),
	}, nil
}

// ID returns the engine identifier used in log records.
func (e *Engine[T]) ID() string {
	return e.id
}

// State returns the current lifecycle phase.
func (e *Engine[T]) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Done is closed once the engine has terminated.
func (e *Engine[T]) Done() <-chan struct{} {
	return e.done
}

// Register adds sub under id, gated by pred. See Registry.Register.
// It fails with ErrEngineClosed once Dismiss has begun.
func (e *Engine[T]) Register(sub Subscriber[T], pred predicate.Predicate[T], id string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.state != StateActive {
		return false, ErrEngineClosed
	}
	return e.registry.Register(sub, pred, id)
}

// Subscribe registers sub under a generated identity and returns it.
func (e *Engine[T]) Subscribe(sub Subscriber[T], pred predicate.Predicate[T]) (string, error) {
	id := uuid.NewString()
	ok, err := e.Register(sub, pred, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	return id, nil
}

// Remove deletes the registration for id and reports whether one existed.
// It is allowed in every state.
func (e *Engine[T]) Remove(id string) bool {
	return e.registry.Remove(id)
}

// Dispatch schedules a broadcast of msg and returns without waiting for it.
//
// When every pool goroutine is busy and the pool is full, the broadcast runs
// on the calling goroutine before Dispatch returns. Messages are never queued
// or dropped. Delivery failures are not returned here; they go to the logger
// and the error handler.
//
// Dispatch fails with ErrEngineClosed once Dismiss has begun.
func (e *Engine[T]) Dispatch(msg T) error {
	e.mu.RLock()
	if e.state != StateActive {
		e.mu.RUnlock()
		return ErrEngineClosed
	}
	e.inflight.Add(1)
	e.mu.RUnlock()

	e.dispatched.Add(1)
	e.active.Add(1)

	task := func() {
		defer e.inflight.Done()
		defer e.active.Add(-1)
		e.broadcast(msg)
	}

	if !e.pool.submit(task) {
		e.callerRuns.Add(1)
		task()
	}
	return nil
}

// broadcast delivers msg to every matching registration in one snapshot.
// A panic stops the loop; remaining registrations are skipped.
func (e *Engine[T]) broadcast(msg T) {
	var current string
	defer func() {
		if r := recover(); r != nil {
			e.failed.Add(1)
			e.reportFailure(&DeliveryError{
				SubscriberID: current,
				Err:          panicError(r),
				Stack:        debug.Stack(),
			}, r)
		}
	}()

	for _, reg := range e.registry.Snapshot() {
		current = reg.ID
		if !reg.Predicate.Evaluate(msg) {
			continue
		}
		reg.Subscriber.Receive(msg)
		e.delivered.Add(1)
	}
}

func (e *Engine[T]) reportFailure(err *DeliveryError, recovered any) {
	e.logger.Error("subscriber delivery failed",
		logger.EngineID(e.id),
		logger.SubscriberID(err.SubscriberID),
		logger.Error(err.Err),
		logger.Panic(recovered, err.Stack))

	if e.errorHandler == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("error handler panicked",
				logger.EngineID(e.id),
				logger.Panic(r, debug.Stack()))
		}
	}()
	e.errorHandler(err)
}

// Dismiss stops accepting messages and registrations, waits for every
// accepted broadcast to finish, clears the registry and releases the pool.
//
// It blocks without a time limit. Concurrent and repeated calls wait for the
// same drain. Calling Dismiss from inside a subscriber deadlocks.
func (e *Engine[T]) Dismiss() {
	e.dismissOnce.Do(func() {
		start := time.Now()

		e.mu.Lock()
		e.state = StateDraining
		e.mu.Unlock()

		e.logger.Info("dispatch engine draining",
			logger.EngineID(e.id),
			slog.Int("in_flight", int(e.active.Load())))

		e.inflight.Wait()

		e.mu.Lock()
		e.state = StateTerminated
		e.mu.Unlock()

		e.registry.Clear()
		e.pool.close()
		close(e.done)

		e.logger.Info("dispatch engine terminated",
			logger.EngineID(e.id),
			logger.Elapsed(start))
	})
}

// Shutdown runs Dismiss and waits for it until ctx ends.
// If ctx ends first it returns ctx.Err() and the drain continues in the background.
func (e *Engine[T]) Shutdown(ctx context.Context) error {
	go e.Dismiss()

	select {
	case <-e.done:
		return nil
	case <-ctx.Done():
		e.logger.Warn("dispatch engine shutdown interrupted, drain continues",
			logger.EngineID(e.id),
			slog.Int("in_flight", int(e.active.Load())),
			logger.Error(ctx.Err()))
		return ctx.Err()
	}
}

// Run provides errgroup compatibility for coordinated lifecycle management.
// The returned function blocks until ctx is cancelled, then shuts the engine
// down within the configured shutdown timeout.
func (e *Engine[T]) Run(ctx context.Context) func() error {
	return func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), e.shutdownTimeout)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%w after %s", ErrShutdownTimeout, e.shutdownTimeout)
		}
		return nil
	}
}

// Stats returns current counters.
func (e *Engine[T]) Stats() Stats {
	return Stats{
		Dispatched:  e.dispatched.Load(),
		Delivered:   e.delivered.Load(),
		Failed:      e.failed.Load(),
		CallerRuns:  e.callerRuns.Load(),
		InFlight:    e.active.Load(),
		Workers:     e.pool.size(),
		Subscribers: e.registry.Len(),
		State:       e.State(),
	}
}

// Healthcheck reports whether the engine still accepts messages.
func (e *Engine[T]) Healthcheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	if state := e.State(); state != StateActive {
		return errors.Join(ErrHealthcheckFailed, fmt.Errorf("%w: %s", ErrEngineNotActive, state))
	}
	return nil
}

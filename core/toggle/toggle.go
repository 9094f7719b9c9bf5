package toggle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/fanout/core/logger"
	"github.com/dmitrymomot/fanout/core/predicate"
)

// Source returns the raw remote value of a switch.
type Source interface {
	Fetch(ctx context.Context) (string, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (string, error)

// Fetch calls f(ctx).
func (f SourceFunc) Fetch(ctx context.Context) (string, error) {
	return f(ctx)
}

// Toggle is a boolean switch refreshed by polling a Source.
type Toggle struct {
	src          Source
	name         string
	interval     time.Duration
	initialDelay time.Duration
	fetchTimeout time.Duration
	logger       *slog.Logger

	enabled atomic.Bool

	mu      sync.Mutex
	running bool

	polls    atomic.Int64
	failures atomic.Int64
}

// Stats is a point-in-time view of poll counters.
type Stats struct {
	Polls    int64
	Failures int64
	Enabled  bool
	Running  bool
}

// New creates a toggle reading from src. It does not poll until Start or
// Refresh is called.
func New(src Source, opts ...Option) (*Toggle, error) {
	if src == nil {
		return nil, ErrNilSource
	}

	o := &options{
		initial:      true,
		interval:     30 * time.Second,
		fetchTimeout: 5 * time.Second,
		name:         "toggle",
		logger:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.interval <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, o.interval)
	}
	if o.initialDelay < 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDelay, o.initialDelay)
	}

	t := &Toggle{
		src:          src,
		name:         o.name,
		interval:     o.interval,
		initialDelay: o.initialDelay,
		fetchTimeout: o.fetchTimeout,
		logger:       o.logger,
	}
	t.enabled.Store(o.initial)
	return t, nil
}

// Enabled returns the last known value.
func (t *Toggle) Enabled() bool {
	return t.enabled.Load()
}

// Refresh polls the source once. On failure the current value is kept and
// the error is returned.
func (t *Toggle) Refresh(ctx context.Context) error {
	t.polls.Add(1)

	ctx, cancel := context.WithTimeout(ctx, t.fetchTimeout)
	defer cancel()

	body, err := t.src.Fetch(ctx)
	if err != nil {
		return t.fail(ctx, errors.Join(ErrFetchFailed, err))
	}

	value, err := Parse(body)
	if err != nil {
		return t.fail(ctx, err)
	}

	if previous := t.enabled.Swap(value); previous != value {
		t.logger.InfoContext(ctx, "toggle changed",
			logger.Component(t.name),
			slog.Bool("enabled", value))
	}
	return nil
}

func (t *Toggle) fail(ctx context.Context, err error) error {
	t.failures.Add(1)
	t.logger.WarnContext(ctx, "toggle poll failed, keeping current value",
		logger.Component(t.name),
		slog.Bool("enabled", t.enabled.Load()),
		logger.Error(err))
	return err
}

// Start polls the source until ctx is cancelled, first after the initial
// delay and then every interval. Polls never overlap. Start blocks and
// returns ctx.Err(). Use Run for the errgroup pattern.
func (t *Toggle) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return ErrAlreadyStarted
	}
	t.running = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.running = false
		t.mu.Unlock()
	}()

	t.logger.InfoContext(ctx, "toggle polling started",
		logger.Component(t.name),
		slog.Duration("interval", t.interval),
		slog.Duration("initial_delay", t.initialDelay))

	if t.initialDelay > 0 {
		delay := time.NewTimer(t.initialDelay)
		select {
		case <-ctx.Done():
			delay.Stop()
			return ctx.Err()
		case <-delay.C:
		}
	}

	_ = t.Refresh(ctx)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.logger.InfoContext(context.Background(), "toggle polling stopped",
				logger.Component(t.name))
			return ctx.Err()
		case <-ticker.C:
			_ = t.Refresh(ctx)
		}
	}
}

// Run provides errgroup compatibility. Cancellation is a normal exit.
func (t *Toggle) Run(ctx context.Context) func() error {
	return func() error {
		err := t.Start(ctx)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	}
}

// Stats returns current counters.
func (t *Toggle) Stats() Stats {
	t.mu.Lock()
	running := t.running
	t.mu.Unlock()

	return Stats{
		Polls:    t.polls.Load(),
		Failures: t.failures.Load(),
		Enabled:  t.enabled.Load(),
		Running:  running,
	}
}

// Gate returns a predicate that matches every value while t is enabled.
// Combine it with a chain to switch a subscription on and off remotely:
//
//	pred := predicate.Head(toggle.Gate[string](t)).And(predicate.HasPrefix("ERROR"))
func Gate[T any](t *Toggle) predicate.Predicate[T] {
	return predicate.Func[T](func(T) bool { return t.Enabled() })
}

// Parse converts a raw source value to a boolean. Surrounding whitespace is
// ignored, an empty value means enabled, anything else must be accepted by
// strconv.ParseBool.
func Parse(body string) (bool, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return true, nil
	}
	v, err := strconv.ParseBool(body)
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidValue, body)
	}
	return v, nil
}

package gather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/fanout/core/logger"
)

var (
	ErrInvalidTimeout     = errors.New("gather timeout must be greater than zero")
	ErrInvalidConcurrency = errors.New("gather concurrency must be greater than zero")
	ErrDuplicateAction    = errors.New("action already registered for path")
	ErrNilAction          = errors.New("action is nil")
	ErrActionPanicked     = errors.New("action panicked")
)

// Gatherer runs batches of named requests concurrently and collects their results.
type Gatherer struct {
	actions     map[string]Action
	notFound    Action
	timeout     time.Duration
	concurrency int
	logger      *slog.Logger
}

// Option configures a Gatherer.
type Option func(*options)

type options struct {
	actions     map[string]Action
	notFound    ActionFunc
	timeout     time.Duration
	concurrency int
	logger      *slog.Logger
}

// WithAction registers actions by their Path.
// Panics on a nil action or a path that is already registered.
func WithAction(actions ...Action) Option {
	return func(o *options) {
		for _, a := range actions {
			if a == nil {
				panic(ErrNilAction)
			}
			if _, exists := o.actions[a.Path()]; exists {
				panic(fmt.Errorf("%w: %s", ErrDuplicateAction, a.Path()))
			}
			o.actions[a.Path()] = a
		}
	}
}

// WithTimeout bounds a whole Gather call. Default is 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithConcurrency limits how many actions run at once.
// Default is runtime.NumCPU()+3.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithNotFound replaces the handler for unknown paths.
func WithNotFound(fn ActionFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.notFound = fn
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New creates a Gatherer.
func New(opts ...Option) (*Gatherer, error) {
	o := &options{
		actions:     make(map[string]Action),
		notFound:    notFound,
		timeout:     30 * time.Second,
		concurrency: runtime.NumCPU() + 3,
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.timeout <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimeout, o.timeout)
	}
	if o.concurrency <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidConcurrency, o.concurrency)
	}

	return &Gatherer{
		actions:     o.actions,
		notFound:    NewAction("", o.notFound),
		timeout:     o.timeout,
		concurrency: o.concurrency,
		logger:      o.logger,
	}, nil
}

// Map resolves each requested path to its action. Unknown paths are mapped
// to the not-found action. Order is unspecified.
func (g *Gatherer) Map(requests map[string]map[string]any) []Call {
	calls := make([]Call, 0, len(requests))
	for path, params := range requests {
		req := Request{Path: path, Params: params}
		action, ok := g.actions[path]
		if !ok {
			action = g.notFound
			req.Params = nil
		}
		calls = append(calls, Call{Request: req, Action: action})
	}
	return calls
}

// Gather applies every request concurrently and returns results keyed by path.
//
// Every requested path is present in the result. An action that fails,
// panics or does not finish within the timeout contributes an empty string;
// the failure is logged. Actions receive a context that is cancelled at the
// timeout and should return promptly when it is.
func (g *Gatherer) Gather(ctx context.Context, requests map[string]map[string]any) map[string]string {
	start := time.Now()
	calls := g.Map(requests)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		results = make(map[string]string, len(calls))
		failed  int
	)

	var eg errgroup.Group
	eg.SetLimit(g.concurrency)

	for _, c := range calls {
		eg.Go(func() error {
			body, err := g.apply(ctx, c)

			mu.Lock()
			defer mu.Unlock()
			results[c.Request.Path] = body
			if err != nil {
				failed++
				g.logger.WarnContext(ctx, "gather action failed",
					logger.Path(c.Request.Path),
					logger.Error(err))
			}
			return nil
		})
	}
	_ = eg.Wait()

	g.logger.DebugContext(ctx, "gather finished",
		logger.Count("requests", len(calls)),
		logger.Count("failed", failed),
		logger.Elapsed(start))

	return results
}

type outcome struct {
	body string
	err  error
}

// apply runs one call and gives up when ctx ends. An abandoned action keeps
// running in its goroutine until it returns.
func (g *Gatherer) apply(ctx context.Context, c Call) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("%w: %v\n%s", ErrActionPanicked, r, debug.Stack())}
			}
		}()
		body, err := c.Action.Apply(ctx, c.Request)
		done <- outcome{body: body, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return "", out.err
		}
		return out.body, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Paths returns the registered action paths.
func (g *Gatherer) Paths() []string {
	paths := make([]string, 0, len(g.actions))
	for p := range g.actions {
		paths = append(paths, p)
	}
	return paths
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/fanout/core/dispatch"
	"github.com/dmitrymomot/fanout/core/logger"
)

var (
	// ErrNilClient is returned when New is called without a client.
	ErrNilClient = errors.New("redis publisher: client is nil")

	// ErrEmptyChannel is returned when New is called without a channel name.
	ErrEmptyChannel = errors.New("redis publisher: channel is empty")
)

// Client is the subset of redis.UniversalClient used by Publisher.
type Client interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// Publisher is a dispatch.Subscriber that republishes every message as JSON
// on a Redis pub/sub channel.
type Publisher[T any] struct {
	client  Client
	channel string
	timeout time.Duration
	strict  bool
	logger  *slog.Logger

	published atomic.Int64
	failed    atomic.Int64
}

var _ dispatch.Subscriber[any] = (*Publisher[any])(nil)

// Option configures a Publisher.
type Option func(*options)

type options struct {
	timeout time.Duration
	strict  bool
	logger  *slog.Logger
}

// WithTimeout bounds each PUBLISH call. Default is 5 seconds.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithStrict makes failed publishes panic so the dispatch engine reports them
// as delivery failures. By default they are only logged.
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithLogger sets the logger for publish failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New creates a Publisher sending to channel.
func New[T any](client Client, channel string, opts ...Option) (*Publisher[T], error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if channel == "" {
		return nil, ErrEmptyChannel
	}

	o := &options{
		timeout: 5 * time.Second,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Publisher[T]{
		client:  client,
		channel: channel,
		timeout: o.timeout,
		strict:  o.strict,
		logger:  o.logger,
	}, nil
}

// Receive publishes msg.
func (p *Publisher[T]) Receive(msg T) {
	if err := p.publish(msg); err != nil {
		p.failed.Add(1)
		p.logger.Error("redis publish failed",
			logger.Component("redis_publisher"),
			slog.String("channel", p.channel),
			logger.Error(err))
		if p.strict {
			panic(err)
		}
		return
	}
	p.published.Add(1)
}

func (p *Publisher[T]) publish(msg T) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", p.channel, err)
	}
	return nil
}

// Published returns the number of successful publishes.
func (p *Publisher[T]) Published() int64 {
	return p.published.Load()
}

// Failed returns the number of failed publishes.
func (p *Publisher[T]) Failed() int64 {
	return p.failed.Load()
}

package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/fanout/core/toggle"
)

var _ toggle.Source = (*Source)(nil)

var (
	// ErrNilClient is returned when New is called without a client.
	ErrNilClient = errors.New("redis toggle source: client is nil")

	// ErrEmptyKey is returned when New is called without a key.
	ErrEmptyKey = errors.New("redis toggle source: key is empty")
)

// Client is the subset of redis.UniversalClient used by Source.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// Source reads a toggle value from a Redis string key.
// A missing key reads as an empty value, which enables the toggle.
type Source struct {
	client Client
	key    string
}

// New creates a Source reading key through client.
func New(client Client, key string) (*Source, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if key == "" {
		return nil, ErrEmptyKey
	}
	return &Source{client: client, key: key}, nil
}

// Fetch runs GET on the key.
func (s *Source) Fetch(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return val, nil
}

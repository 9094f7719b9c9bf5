package config

import (
	"errors"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrNilConfig is returned when Load is called with a nil pointer.
	ErrNilConfig = errors.New("config: destination is nil")

	// ErrParsing wraps failures reported by the env parser.
	ErrParsing = errors.New("config: failed to parse environment")
)

var (
	dotenvOnce sync.Once
	mu         sync.Mutex
	cache      sync.Map // reflect.Type -> value
)

// Load fills cfg from environment variables described by its env struct tags.
// A .env file in the working directory is loaded once, on the first call,
// without overriding variables that are already set.
// Results are cached per type: later calls for the same T copy the cached value.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}

	dotenvOnce.Do(func() {
		// Missing .env is the normal case outside local development.
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()
	if v, ok := cache.Load(key); ok {
		*cfg = v.(T)
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	if v, ok := cache.Load(key); ok {
		*cfg = v.(T)
		return nil
	}

	loaded, err := env.ParseAs[T]()
	if err != nil {
		return errors.Join(ErrParsing, err)
	}

	cache.Store(key, loaded)
	*cfg = loaded
	return nil
}

// MustLoad is Load that panics on error. Intended for program startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

func resetCache() {
	mu.Lock()
	defer mu.Unlock()
	cache.Clear()
}

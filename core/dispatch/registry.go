package dispatch

import (
	"sync"

	"github.com/dmitrymomot/fanout/core/predicate"
)

// Registry is a concurrency-safe set of registrations keyed by identity.
// The zero value is not usable; call NewRegistry.
type Registry[T any] struct {
	mu      sync.RWMutex
	entries map[string]Registration[T]
}

// NewRegistry returns an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{entries: make(map[string]Registration[T])}
}

// Register adds sub under id, gated by pred.
//
// It returns false without replacing anything when id is already taken.
// Nil sub or pred and an empty id are rejected with an error wrapping
// ErrInvalidArgument. Among concurrent calls for the same id exactly one
// returns true.
func (r *Registry[T]) Register(sub Subscriber[T], pred predicate.Predicate[T], id string) (bool, error) {
	switch {
	case isNilSubscriber(sub):
		return false, invalidArgument(ErrNilSubscriber)
	case predicate.IsNil(pred):
		return false, invalidArgument(ErrNilPredicate)
	case id == "":
		return false, invalidArgument(ErrEmptyID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		return false, nil
	}
	r.entries[id] = Registration[T]{ID: id, Subscriber: sub, Predicate: pred}
	return true, nil
}

// Remove deletes the registration for id and reports whether one existed.
func (r *Registry[T]) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; !exists {
		return false
	}
	delete(r.entries, id)
	return true
}

// Has reports whether id is registered.
func (r *Registry[T]) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.entries[id]
	return exists
}

// Snapshot returns a copy of the current registrations in unspecified order.
// Later Register and Remove calls do not affect the returned slice.
func (r *Registry[T]) Snapshot() []Registration[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Registration[T], 0, len(r.entries))
	for _, reg := range r.entries {
		out = append(out, reg)
	}
	return out
}

// Len returns the number of registrations.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// Clear removes every registration.
func (r *Registry[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.entries)
}

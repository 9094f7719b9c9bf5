package predicate

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is the parent of every build-time validation error in this package.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNilPredicate is returned (or carried by a panic) when a chain is built from a nil predicate.
	ErrNilPredicate = fmt.Errorf("%w: predicate is nil", ErrInvalidArgument)

	// ErrNilChain is carried by a panic when And/Or is called on a nil chain.
	ErrNilChain = fmt.Errorf("%w: chain is nil", ErrInvalidArgument)
)

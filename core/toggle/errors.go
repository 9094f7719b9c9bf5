package toggle

import "errors"

var (
	// ErrNilSource is returned when New is called without a source.
	ErrNilSource = errors.New("toggle source is nil")

	// ErrInvalidInterval is returned when the poll interval is not positive.
	ErrInvalidInterval = errors.New("poll interval must be greater than zero")

	// ErrInvalidDelay is returned when the initial delay is negative.
	ErrInvalidDelay = errors.New("initial delay must not be negative")

	// ErrAlreadyStarted is returned when Start is called on a running toggle.
	ErrAlreadyStarted = errors.New("toggle already started")

	// ErrInvalidValue wraps values that cannot be parsed as a boolean.
	ErrInvalidValue = errors.New("invalid toggle value")

	// ErrUnexpectedStatus is returned by HTTPSource for non-2xx responses.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrFetchFailed wraps errors returned by a source.
	ErrFetchFailed = errors.New("failed to fetch toggle value")
)

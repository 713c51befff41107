package sentiment

import "errors"

var (
	// ErrUnavailable means no configured provider could produce a usable
	// classification. Callers treat this as "no signal", never as fatal.
	ErrUnavailable = errors.New("no sentiment provider available")

	// ErrInvalidResponse means a provider answered but the response was
	// malformed or out of range for the scale in use.
	ErrInvalidResponse = errors.New("invalid oracle response")
)

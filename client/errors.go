package client

import "errors"

// Client errors.
var (
	// ErrMissingActivation indicates an empty activation id.
	ErrMissingActivation = errors.New("activation id is required")

	// ErrMissingAuth indicates a factory built without signing values.
	ErrMissingAuth = errors.New("auth is required")

	// ErrNotFileValue indicates a field value that is not FILE:<mimetype>;<size>;<uuid>.
	ErrNotFileValue = errors.New("not a file field value")

	// ErrActivationNotFound indicates dexi has no configuration for the activation.
	ErrActivationNotFound = errors.New("activation not found")
)

package auth

import "errors"

// Authentication errors.
var (
	// ErrMissingAccount indicates no account id was configured.
	ErrMissingAccount = errors.New("account is required")

	// ErrMissingSecret indicates no API key was configured.
	ErrMissingSecret = errors.New("api key is required")

	// ErrInvalidType indicates an auth type other than ACCOUNT or APP.
	ErrInvalidType = errors.New("invalid auth type")
)

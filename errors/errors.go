package errors

import "errors"

// Common CLI errors with actionable guidance.
var (
	// ErrMissingCredentials indicates account, API key or base URL are not configured.
	ErrMissingCredentials = errors.New("credentials not configured")

	// ErrInvalidCredentials indicates the API rejected the account or API key.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidConfig indicates the configuration file cannot be used.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates the server is unreachable.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrPermissionDenied indicates insufficient permissions.
	ErrPermissionDenied = errors.New("permission denied")
)

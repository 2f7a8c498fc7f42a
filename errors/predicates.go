package errors

import (
	"errors"
	"strings"

	"github.com/dexiio/app-sdk-go/config"
	dexihttp "github.com/dexiio/app-sdk-go/http"
)

// IsAuthError checks if an error is credentials-related.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrMissingCredentials) ||
		dexihttp.IsUnauthorized(err)
}

// IsConfigError checks if an error comes from reading the configuration.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrInvalidConfig) {
		return true
	}

	var resolveErr *config.ResolveError
	return errors.As(err, &resolveErr)
}

// IsConnectionError checks if an error is connection-related.
// This includes TLS errors, timeouts, and network connectivity issues.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrConnectionFailed) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	// Network connectivity
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "dial tcp") {
		return true
	}
	// TLS/certificate errors (consistent with WrapConnectionError)
	if strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") {
		return true
	}
	// Timeout errors (consistent with WrapConnectionError)
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}
	return false
}

// IsPermissionError checks if an error is permission-related.
func IsPermissionError(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, ErrPermissionDenied) || dexihttp.IsForbidden(err)
}

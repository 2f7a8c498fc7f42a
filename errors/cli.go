package errors

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/dexiio/app-sdk-go/config"
	dexihttp "github.com/dexiio/app-sdk-go/http"
)

// CLIError wraps an error with user-friendly context and suggestions.
type CLIError struct {
	// Err is the underlying error
	Err error

	// Message is a user-friendly description of what went wrong
	Message string

	// Suggestion is an actionable hint for the user
	Suggestion string

	// Details provides additional context (optional)
	Details string
}

func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}

	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// ErrorMessenger provides customizable error messages.
// Implement this interface to customize suggestions for your CLI.
type ErrorMessenger interface {
	// MissingCredentialsMessage returns the message and suggestion when
	// credential fields are unset or invalid.
	MissingCredentialsMessage() (message, suggestion string)

	// InvalidCredentialsMessage returns the message and suggestion when the
	// API rejects the credentials.
	InvalidCredentialsMessage() (message, suggestion string)

	// PermissionDeniedMessage returns the message and suggestion for permission errors.
	PermissionDeniedMessage() (message, suggestion string)

	// UnsupportedFormatMessage returns the message and suggestion for a
	// configuration file with an unknown extension.
	UnsupportedFormatMessage(location string, supported []string) (message, suggestion string)

	// MalformedConfigMessage returns the message and suggestion for a
	// configuration file that cannot be parsed.
	MalformedConfigMessage(location string) (message, suggestion string)

	// ConnectionErrorMessage returns the message and suggestion for connection errors.
	// The serverURL parameter is the URL that failed to connect.
	ConnectionErrorMessage(serverURL string) (message, suggestion string)

	// TLSErrorMessage returns the message and suggestion for TLS/certificate errors.
	TLSErrorMessage(serverURL string) (message, suggestion string)

	// TimeoutErrorMessage returns the message and suggestion for timeout errors.
	TimeoutErrorMessage(serverURL string) (message, suggestion string)
}

// DefaultMessenger provides default error messages.
type DefaultMessenger struct{}

func (m DefaultMessenger) MissingCredentialsMessage() (string, string) {
	return "dexi credentials are not configured.",
		"Set them in ~/.dexi/configuration.yml, point " + config.EnvCredentials +
			" at a configuration file, or set DEXI_APP_dexi_account and DEXI_APP_dexi_apiKey."
}

func (m DefaultMessenger) InvalidCredentialsMessage() (string, string) {
	return "dexi rejected the configured account or API key.",
		"Check dexi.account and dexi.apiKey against your account settings."
}

func (m DefaultMessenger) PermissionDeniedMessage() (string, string) {
	return "You don't have permission to perform this action.",
		"Check that the app is activated for this account."
}

func (m DefaultMessenger) UnsupportedFormatMessage(location string, supported []string) (string, string) {
	return fmt.Sprintf("Cannot read configuration file %s: unsupported format.", location),
		"Use one of these extensions: " + strings.Join(supported, ", ")
}

func (m DefaultMessenger) MalformedConfigMessage(location string) (string, string) {
	return fmt.Sprintf("Configuration file %s is malformed.", location),
		"Fix the syntax error shown above and try again."
}

func (m DefaultMessenger) ConnectionErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("Cannot connect to server at %s", serverURL),
		"Check that:\n  - The URL is correct\n  - Your network connection is working"
}

func (m DefaultMessenger) TLSErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("TLS/certificate error connecting to %s", serverURL),
		"Check that the server certificate is valid."
}

func (m DefaultMessenger) TimeoutErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("Connection to %s timed out", serverURL),
		"The server may be overloaded or unreachable.\nTry again in a moment or raise --timeout."
}

// WrapConfig configures error wrapping behavior.
type WrapConfig struct {
	Messenger ErrorMessenger
}

// Option configures WrapConfig.
type Option func(*WrapConfig)

// WithMessenger sets a custom error messenger.
func WithMessenger(m ErrorMessenger) Option {
	return func(c *WrapConfig) {
		c.Messenger = m
	}
}

func getMessenger(opts []Option) ErrorMessenger {
	cfg := &WrapConfig{
		Messenger: DefaultMessenger{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg.Messenger
}

// WrapResolveError wraps configuration resolution failures with helpful guidance.
func WrapResolveError(err error, opts ...Option) error {
	if err == nil {
		return nil
	}

	messenger := getMessenger(opts)

	location := ""
	var resolveErr *config.ResolveError
	if errors.As(err, &resolveErr) {
		location = resolveErr.Location
	}

	switch {
	case config.IsUnsupportedExtension(err):
		msg, suggestion := messenger.UnsupportedFormatMessage(location, config.DefaultRegistry().Extensions())
		return &CLIError{
			Err:        errors.Join(ErrInvalidConfig, err),
			Message:    msg,
			Suggestion: suggestion,
		}
	case config.IsMalformedDocument(err):
		msg, suggestion := messenger.MalformedConfigMessage(location)
		return &CLIError{
			Err:        errors.Join(ErrInvalidConfig, err),
			Message:    msg,
			Details:    err.Error(),
			Suggestion: suggestion,
		}
	case errors.Is(err, context.DeadlineExceeded):
		msg, suggestion := messenger.TimeoutErrorMessage(location)
		return &CLIError{
			Err:        errors.Join(ErrConnectionFailed, err),
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	return err
}

// WrapCredentialsError wraps a config.Credentials validation failure,
// listing the offending fields.
func WrapCredentialsError(err error, opts ...Option) error {
	if err == nil {
		return nil
	}

	messenger := getMessenger(opts)
	msg, suggestion := messenger.MissingCredentialsMessage()

	var details string
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		fields := make([]string, 0, len(fieldErrs))
		for field, ferr := range fieldErrs {
			fields = append(fields, fmt.Sprintf("  - dexi.%s: %v", field, ferr))
		}
		sort.Strings(fields)
		details = strings.Join(fields, "\n")
	} else {
		details = err.Error()
	}

	return &CLIError{
		Err:        errors.Join(ErrMissingCredentials, err),
		Message:    msg,
		Details:    details,
		Suggestion: suggestion,
	}
}

// WrapAPIError wraps a dexi API failure with helpful guidance.
func WrapAPIError(err error, serverURL string, opts ...Option) error {
	if err == nil {
		return nil
	}

	messenger := getMessenger(opts)

	switch {
	case dexihttp.IsUnauthorized(err):
		msg, suggestion := messenger.InvalidCredentialsMessage()
		return &CLIError{
			Err:        errors.Join(ErrInvalidCredentials, err),
			Message:    msg,
			Suggestion: suggestion,
		}
	case dexihttp.IsForbidden(err):
		msg, suggestion := messenger.PermissionDeniedMessage()
		return &CLIError{
			Err:        errors.Join(ErrPermissionDenied, err),
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	return WrapConnectionError(err, serverURL, opts...)
}

// WrapConnectionError wraps connection-related errors with helpful guidance.
func WrapConnectionError(err error, serverURL string, opts ...Option) error {
	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())
	messenger := getMessenger(opts)

	// Check for connection refused
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "dial tcp") {
		msg, suggestion := messenger.ConnectionErrorMessage(serverURL)
		return &CLIError{
			Err:        errors.Join(ErrConnectionFailed, err),
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	// Check for TLS/certificate errors
	if strings.Contains(errStr, "certificate") || strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") {
		msg, suggestion := messenger.TLSErrorMessage(serverURL)
		return &CLIError{
			Err:        errors.Join(ErrConnectionFailed, err),
			Message:    msg,
			Details:    err.Error(),
			Suggestion: suggestion,
		}
	}

	// Check for timeout
	if errors.Is(err, context.DeadlineExceeded) ||
		strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		msg, suggestion := messenger.TimeoutErrorMessage(serverURL)
		return &CLIError{
			Err:        errors.Join(ErrConnectionFailed, err),
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	return err
}

package config

import (
	"errors"
	"fmt"
)

// Resolution errors.
var (
	// ErrUnsupportedExtension indicates a local location whose file extension
	// has no registered parser.
	ErrUnsupportedExtension = errors.New("unsupported file extension")

	// ErrSourceUnavailable indicates a remote configuration file could not be
	// fetched or parsed. The resolver recovers from it.
	ErrSourceUnavailable = errors.New("configuration source unavailable")

	// ErrMalformedDocument indicates a file that exists but is not a
	// two-level map of sections to keys.
	ErrMalformedDocument = errors.New("malformed configuration document")
)

// ResolveError describes a failure while resolving one configuration
// location.
type ResolveError struct {
	// Op is the stage that failed ("classify", "load", "parse").
	Op string

	// Location is the location being resolved.
	Location string

	// Kind is the sentinel describing the failure class.
	Kind error

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	if e.Err != nil && errors.Is(e.Err, e.Kind) {
		return fmt.Sprintf("config %s %s: %v", e.Op, e.Location, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("config %s %s: %v: %v", e.Op, e.Location, e.Kind, e.Err)
	}
	return fmt.Sprintf("config %s %s: %v", e.Op, e.Location, e.Kind)
}

// Unwrap returns both the sentinel and the cause so errors.Is matches either.
func (e *ResolveError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// malformed builds a parse-stage error for ErrMalformedDocument.
func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedDocument, fmt.Sprintf(format, args...))
}

// IsUnsupportedExtension reports whether err was caused by an unknown extension.
func IsUnsupportedExtension(err error) bool {
	return errors.Is(err, ErrUnsupportedExtension)
}

// IsSourceUnavailable reports whether err was caused by an unreachable source.
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}

// IsMalformedDocument reports whether err was caused by an unparseable document.
func IsMalformedDocument(err error) bool {
	return errors.Is(err, ErrMalformedDocument)
}

// Package errors turns SDK failures into user-facing CLI errors.
//
// Core types:
//   - CLIError: Wraps errors with message, suggestion, and details
//   - ErrorMessenger: Interface for customizing error messages
//
// Wrap helpers classify errors from the config and http packages with
// errors.Is and errors.As:
//
//	if err := resolver.ResolveEnvironment(ctx); err != nil {
//	    return errors.WrapResolveError(err)
//	}
//	if err := store.Credentials().Validate(); err != nil {
//	    return errors.WrapCredentialsError(err)
//	}
//	if err := f.ActivationConfig(ctx, id, &cfg); err != nil {
//	    return errors.WrapAPIError(err, f.BaseURL())
//	}
//
// The wrapped error still matches the original with errors.Is, as well as
// one of ErrMissingCredentials, ErrInvalidCredentials, ErrInvalidConfig,
// ErrConnectionFailed or ErrPermissionDenied.
package errors

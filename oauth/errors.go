package oauth

import "errors"

// OAuth errors.
var (
	// ErrEmptyKey indicates a blank encryption key.
	ErrEmptyKey = errors.New("encryption key is required")

	// ErrInvalidKeyLength indicates a key that is not 16, 24 or 32 bytes.
	ErrInvalidKeyLength = errors.New("invalid key length: must be 16, 24 or 32 bytes")

	// ErrInvalidCiphertext indicates a payload that is not valid base64 or
	// whose padding does not verify.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")

	// ErrInvalidState indicates the state token is malformed or has an invalid signature.
	ErrInvalidState = errors.New("invalid state")

	// ErrStateExpired indicates the state token has expired.
	ErrStateExpired = errors.New("state expired")

	// ErrSecretTooShort indicates the state signing secret is too short.
	ErrSecretTooShort = errors.New("state secret must be at least 32 bytes")
)

package auth

import (
	"fmt"
	"net/http"

	"github.com/dexiio/app-sdk-go/config"
)

// Request headers understood by the dexi API.
const (
	HeaderActivation = "X-DexiIO-Activation"
	HeaderAuthType   = "X-DexiIO-AuthType"
	HeaderAccess     = "X-DexiIO-Access"
	HeaderAccount    = "X-DexiIO-Account"
)

// UserAgent identifies this SDK.
const UserAgent = "Dexi-Go-AppSDK/1.0"

// Type tells the API whether the caller acts as an account or as an app.
type Type string

// Auth types.
const (
	TypeAccount Type = "ACCOUNT"
	TypeApp     Type = "APP"
)

// Valid reports whether t is a known auth type.
func (t Type) Valid() bool {
	return t == TypeAccount || t == TypeApp
}

// Auth holds the precomputed signing values for one account.
type Auth struct {
	accountID string
	access    string
	authType  Type
}

// New creates signing values for account and secret.
func New(account, secret string, authType Type) (*Auth, error) {
	if account == "" {
		return nil, ErrMissingAccount
	}
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if !authType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, authType)
	}

	return &Auth{
		accountID: account,
		access:    CalculateAccess(account, secret),
		authType:  authType,
	}, nil
}

// FromCredentials creates app signing values from resolved credentials.
func FromCredentials(creds config.Credentials) (*Auth, error) {
	return New(creds.Account, creds.APIKey, TypeApp)
}

// AccountID returns the account id.
func (a *Auth) AccountID() string { return a.accountID }

// Access returns the derived access token.
func (a *Auth) Access() string { return a.access }

// Type returns the auth type.
func (a *Auth) Type() Type { return a.authType }

// Sign sets the dexi authentication headers on req. The activation header is
// only set when activationID is non-empty.
func (a *Auth) Sign(req *http.Request, activationID string) {
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set(HeaderAuthType, string(a.authType))
	req.Header.Set(HeaderAccount, a.accountID)
	req.Header.Set(HeaderAccess, a.access)
	if activationID != "" {
		req.Header.Set(HeaderActivation, activationID)
	}
}

// Signer returns a request hook that signs every request for activationID.
func (a *Auth) Signer(activationID string) func(*http.Request) {
	return func(req *http.Request) {
		a.Sign(req, activationID)
	}
}

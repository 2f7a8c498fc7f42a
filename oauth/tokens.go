package oauth

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

// OAuth2Tokens are the decrypted tokens of an OAuth 2 connection.
type OAuth2Tokens struct {
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	Provider     string `json:"provider,omitempty"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	Valid        bool   `json:"valid"`
}

// Token converts t to an oauth2.Token. Stored tokens carry no expiry, so
// x/oauth2 treats the result as never expiring: a token source built from it
// does not refresh on its own, and a rejected access token has to be
// replaced by the caller (see TokenSource).
func (t OAuth2Tokens) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    "Bearer",
	}
}

// TokenSource returns a token source that starts from tokens and refreshes
// through cfg. Without an access token the first Token call refreshes
// immediately; to force a refresh after the provider rejects the access
// token, clear AccessToken and build a new source.
func TokenSource(ctx context.Context, cfg *oauth2.Config, tokens OAuth2Tokens) oauth2.TokenSource {
	return cfg.TokenSource(ctx, tokens.Token())
}

// FromToken copies the access and refresh tokens of tok into t, keeping the
// current refresh token when the provider did not issue a new one.
func (t OAuth2Tokens) FromToken(tok *oauth2.Token) OAuth2Tokens {
	if tok == nil {
		return t
	}
	t.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		t.RefreshToken = tok.RefreshToken
	}
	t.Valid = tok.AccessToken != ""
	return t
}

// OAuth1Tokens are the decrypted tokens of an OAuth 1 connection.
type OAuth1Tokens struct {
	Name              string `json:"name,omitempty"`
	Email             string `json:"email,omitempty"`
	Provider          string `json:"provider,omitempty"`
	AccessToken       string `json:"accessToken,omitempty"`
	AccessTokenSecret string `json:"accessTokenSecret,omitempty"`
	Scope             string `json:"scope,omitempty"`
	ExpiresInSeconds  *int64 `json:"expiresInSeconds,omitempty"`
	Valid             bool   `json:"valid"`
}

// ExpiresIn returns the token lifetime, or zero when unknown.
func (t OAuth1Tokens) ExpiresIn() time.Duration {
	if t.ExpiresInSeconds == nil {
		return 0
	}
	return time.Duration(*t.ExpiresInSeconds) * time.Second
}

// EncryptedTokens is the stored form of a connection: identity fields in the
// clear and both secrets encrypted into Payload.
type EncryptedTokens struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Provider string `json:"provider,omitempty"`
	Payload  string `json:"payload,omitempty"`
	Valid    bool   `json:"valid"`
}

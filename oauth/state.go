package oauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	nanoid "github.com/matoous/go-nanoid/v2"
)

// DefaultStateTTL bounds how long a user may take to complete an
// authorization flow.
const DefaultStateTTL = 10 * time.Minute

// StateConfig configures a StateSigner.
type StateConfig struct {
	// Secret is the HMAC signing key (must be at least 32 bytes).
	Secret []byte

	// Issuer is written to and required on every state token.
	Issuer string

	// TTL defaults to DefaultStateTTL if zero.
	TTL time.Duration
}

func (c StateConfig) ttl() time.Duration {
	if c.TTL == 0 {
		return DefaultStateTTL
	}
	return c.TTL
}

// StateClaims are carried through the provider in the OAuth state parameter.
type StateClaims struct {
	jwt.RegisteredClaims

	ActivationID string `json:"aid"`
	ReturnURL    string `json:"ret,omitempty"`
}

// StateSigner issues and verifies signed OAuth state values so a callback
// can be tied back to the activation that started the flow.
type StateSigner struct {
	cfg StateConfig
	now func() time.Time
}

// NewStateSigner creates a signer for cfg.
func NewStateSigner(cfg StateConfig) (*StateSigner, error) {
	if len(cfg.Secret) < 32 {
		return nil, ErrSecretTooShort
	}
	return &StateSigner{cfg: cfg, now: time.Now}, nil
}

// Issue returns a state value for activationID. Each value has a random
// nonce so two flows for the same activation never share a state.
func (s *StateSigner) Issue(activationID, returnURL string) (string, error) {
	nonce, err := nanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate state nonce: %w", err)
	}

	now := s.now()
	claims := StateClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   activationID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.ttl())),
			ID:        nonce,
		},
		ActivationID: activationID,
		ReturnURL:    returnURL,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.cfg.Secret)
}

// Redirect issues a state and wraps it in a RedirectRequest.
func (s *StateSigner) Redirect(activationID, returnURL string) (RedirectRequest, error) {
	state, err := s.Issue(activationID, returnURL)
	if err != nil {
		return RedirectRequest{}, err
	}
	return RedirectRequest{State: state, ReturnURL: returnURL}, nil
}

// Verify parses state and returns its claims.
func (s *StateSigner) Verify(state string) (*StateClaims, error) {
	claims := &StateClaims{}
	token, err := jwt.ParseWithClaims(state, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.cfg.Secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrStateExpired
		}
		return nil, ErrInvalidState
	}

	if !token.Valid || claims.ActivationID == "" {
		return nil, ErrInvalidState
	}

	if s.cfg.Issuer != "" && claims.Issuer != s.cfg.Issuer {
		return nil, ErrInvalidState
	}

	return claims, nil
}

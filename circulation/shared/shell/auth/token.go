package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/AntonStoeckl/library-circulation/circulation/shared/core"
)

var (
	ErrEmptySecret  = errors.New("token secret must not be empty")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims are the claims of an access token.
type Claims struct {
	Sub   string    `json:"sub"`
	Role  core.Role `json:"role"`
	Email string    `json:"email"`
	jwt.RegisteredClaims
}

// Tokens creates and validates HS256 signed access tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokensOption configures Tokens.
type TokensOption func(*Tokens)

// WithClock replaces time.Now, used in tests.
func WithClock(now func() time.Time) TokensOption {
	return func(t *Tokens) {
		t.now = now
	}
}

// NewTokens creates Tokens signing with secret. Tokens expire after ttl.
func NewTokens(secret string, ttl time.Duration, opts ...TokensOption) (Tokens, error) {
	if secret == "" {
		return Tokens{}, ErrEmptySecret
	}

	t := Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(&t)
	}

	return t, nil
}

// Issue creates a signed access token for the member.
func (t Tokens) Issue(userID core.UserIDString, role core.Role, email core.EmailString) (string, error) {
	now := t.now()
	claims := Claims{
		Sub:   userID,
		Role:  role,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(t.secret)
}

// Parse validates the signature and expiry of tokenStr and returns its claims.
func (t Tokens) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(_ *jwt.Token) (any, error) {
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Sub == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

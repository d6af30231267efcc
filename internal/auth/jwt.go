package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"service-rider-dispatch/internal/domain"
)

var (
	errMissingToken  = errors.New("missing bearer token")
	errInvalidClaims = errors.New("invalid claims")
)

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type principalKey struct{}

// WithPrincipal stores the principal in context.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext retrieves the principal from context (if any).
func FromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(domain.Principal)
	return p, ok
}

// Verifier validates HS256 access tokens.
type Verifier struct {
	secret []byte
	leeway time.Duration
}

// NewVerifier returns a Verifier for secret. An empty secret rejects every token.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret), leeway: 30 * time.Second}
}

// ParseBearer extracts and validates the token of an Authorization header value.
func (v *Verifier) ParseBearer(header string) (domain.Principal, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return domain.Principal{}, errMissingToken
	}
	return v.Parse(strings.TrimSpace(token))
}

// Parse validates tokenStr and returns its principal.
func (v *Verifier) Parse(tokenStr string) (domain.Principal, error) {
	if len(v.secret) == 0 {
		return domain.Principal{}, errors.New("jwt secret is empty")
	}

	var c claims
	_, err := jwt.ParseWithClaims(tokenStr, &c, func(*jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.leeway),
	)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("parse token: %w", err)
	}

	p := domain.Principal{
		UserID: strings.TrimSpace(c.Subject),
		Role:   domain.Role(strings.ToUpper(strings.TrimSpace(c.Role))),
	}
	if p.UserID == "" || !p.Role.Valid() {
		return domain.Principal{}, errInvalidClaims
	}
	return p, nil
}

// Issue signs a token for p valid for ttl.
func Issue(secret string, p domain.Principal, ttl time.Duration, now time.Time) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return tok.SignedString([]byte(secret))
}

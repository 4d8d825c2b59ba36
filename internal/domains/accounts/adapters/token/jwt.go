// Package token signs and verifies the bearer credentials used by the
// storefront authorization gate.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/voltshop/storefront-api/internal/domains/accounts/ports"
)

var _ ports.TokenIssuer = (*JWTIssuer)(nil)

// JWTIssuer issues HS256-signed tokens carrying the account id as subject.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTIssuer builds an issuer. ttl defaults to 30 days when zero, matching
// the storefront session length.
func NewJWTIssuer(secret []byte, ttl time.Duration) *JWTIssuer {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &JWTIssuer{secret: secret, ttl: ttl, now: time.Now}
}

// Issue signs a credential for the account.
func (i *JWTIssuer) Issue(accountID uuid.UUID) (string, error) {
	if len(i.secret) == 0 {
		return "", errors.New("jwt secret not configured")
	}
	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   accountID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify validates the signature and expiry and returns the subject id.
func (i *JWTIssuer) Verify(token string) (uuid.UUID, error) {
	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ports.ErrInvalidToken
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return i.now() }))
	if err != nil || !parsed.Valid {
		return uuid.Nil, ports.ErrInvalidToken
	}
	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ports.ErrInvalidToken
	}
	return subject, nil
}

package ports

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("credential invalid or expired")

// TokenIssuer signs and verifies the bearer credential carried by clients.
type TokenIssuer interface {
	// Issue signs a credential for the given account identifier.
	Issue(accountID uuid.UUID) (string, error)
	// Verify checks the signature and expiry and returns the encoded subject.
	// Malformed, expired, or wrongly signed tokens yield ErrInvalidToken.
	Verify(token string) (uuid.UUID, error)
}

package application

import (
	"errors"
	"fmt"

	"github.com/voltshop/storefront-api/internal/domains/accounts/domain"
)

// ErrInvalidInput signals the request violated an account invariant.
var ErrInvalidInput = errors.New("invalid account input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrEmptyPassword) ||
		errors.Is(err, domain.ErrWeakPassword) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

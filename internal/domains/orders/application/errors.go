package application

import (
	"errors"
	"fmt"

	"github.com/voltshop/storefront-api/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrForbidden signals the actor is neither the purchaser nor an admin.
	ErrForbidden = errors.New("not allowed to access this order")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrInvalidQty) ||
		errors.Is(err, domain.ErrIncompleteAddress) ||
		errors.Is(err, domain.ErrUnknownMethod) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

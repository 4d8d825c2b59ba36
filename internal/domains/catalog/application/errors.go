package application

import (
	"errors"
	"fmt"

	"github.com/voltshop/storefront-api/internal/domains/catalog/domain"
)

var (
	// ErrInvalidInput signals the request violated a catalog invariant.
	ErrInvalidInput = errors.New("invalid product input")
	// ErrDuplicateReview signals a second review by the same account.
	ErrDuplicateReview = errors.New("duplicate review")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrAlreadyReviewed) {
		return fmt.Errorf("%w: %w", ErrDuplicateReview, err)
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrNegativeStock) ||
		errors.Is(err, domain.ErrInvalidRating) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

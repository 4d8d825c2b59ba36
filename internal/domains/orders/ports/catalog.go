package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrProductNotFound = errors.New("product not found")

// ProductSnapshot is the slice of a catalog product that checkout needs.
type ProductSnapshot struct {
	ID           uuid.UUID
	Name         string
	Image        string
	Price        float64
	CountInStock int
}

// Catalog lets checkout read product details without importing the catalog
// context directly.
type Catalog interface {
	Product(ctx context.Context, id uuid.UUID) (ProductSnapshot, error)
}

package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	catalogports "github.com/voltshop/storefront-api/internal/domains/catalog/ports"
	"github.com/voltshop/storefront-api/internal/domains/orders/ports"
)

var _ ports.Catalog = (*Gateway)(nil)

// Gateway adapts the catalog service to the narrow read surface checkout
// depends on.
type Gateway struct {
	products catalogports.Service
}

func NewGateway(products catalogports.Service) *Gateway {
	return &Gateway{products: products}
}

func (g *Gateway) Product(ctx context.Context, id uuid.UUID) (ports.ProductSnapshot, error) {
	product, err := g.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return ports.ProductSnapshot{}, ports.ErrProductNotFound
		}
		return ports.ProductSnapshot{}, err
	}
	return ports.ProductSnapshot{
		ID:           product.ID,
		Name:         product.Name,
		Image:        product.Image,
		Price:        product.Price,
		CountInStock: product.CountInStock,
	}, nil
}

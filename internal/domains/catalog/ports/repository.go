package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/voltshop/storefront-api/internal/domains/catalog/domain"
)

var (
	ErrNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned by TryDecrementStock when the floor
	// check fails; the decrement is conditional so concurrent orders cannot
	// race past zero.
	ErrInsufficientStock = errors.New("insufficient stock for product")
)

// ListFilter narrows and pages the catalog listing.
type ListFilter struct {
	// Keyword matches product names case-insensitively when non-empty.
	Keyword string
	// Brands restricts results to the given brands when non-empty.
	Brands []string
	// Page is 1-based; a zero value means the first page.
	Page int
	// PageSize defaults to 10 when zero.
	PageSize int
}

// ListResult echoes the pagination window alongside the page of products.
type ListResult struct {
	Products []*domain.Product
	Page     int
	Pages    int
}

// Repository persists catalog products with their embedded reviews.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	// ListNewest returns up to limit products, newest first.
	ListNewest(ctx context.Context, limit int) ([]*domain.Product, error)
	// ListMostReviewed returns up to limit products ordered by review count.
	ListMostReviewed(ctx context.Context, limit int) ([]*domain.Product, error)
	// ListFeatured returns up to limit products flagged by an administrator.
	ListFeatured(ctx context.Context, limit int) ([]*domain.Product, error)
	// TryDecrementStock atomically decrements stock for the product,
	// failing with ErrInsufficientStock when fewer than qty remain.
	TryDecrementStock(ctx context.Context, id uuid.UUID, qty int) error
}

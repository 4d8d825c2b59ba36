package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/voltshop/storefront-api/internal/domains/catalog/domain"
)

// ProductUpdate carries optional field edits; zero values leave the current
// value untouched except Featured, which is always applied.
type ProductUpdate struct {
	Name         string
	Price        *float64
	Description  string
	Image        string
	Gallery      []string
	Brand        string
	Category     string
	CountInStock *int
	Specs        *domain.Specs
	Featured     bool
}

// ReviewInput is a review submission by an authenticated account.
type ReviewInput struct {
	AccountID    uuid.UUID
	ReviewerName string
	Rating       int
	Comment      string
}

// HomepageLists bundles the three storefront landing collections.
type HomepageLists struct {
	NewArrivals []*domain.Product
	BestSellers []*domain.Product
	Featured    []*domain.Product
}

// Service exposes catalog use cases to adapters.
type Service interface {
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	CreatePlaceholder(ctx context.Context, creatorID uuid.UUID) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, update ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddReview(ctx context.Context, productID uuid.UUID, review ReviewInput) (*domain.Product, error)
	Homepage(ctx context.Context) (*HomepageLists, error)
}

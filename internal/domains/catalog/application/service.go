package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/voltshop/storefront-api/internal/domains/catalog/domain"
	"github.com/voltshop/storefront-api/internal/domains/catalog/ports"
)

const homepageListSize = 8

// Service orchestrates the catalog bounded context use cases.
type Service struct {
	repo ports.Repository
	now  func() time.Time
}

// NewService wires the catalog service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List pages the catalog with keyword and brand filtering.
func (s *Service) List(ctx context.Context, filter ports.ListFilter) (*ports.ListResult, error) {
	return s.repo.List(ctx, filter)
}

// GetByID loads a single product.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreatePlaceholder persists the sample product an administrator edits in place.
func (s *Service) CreatePlaceholder(ctx context.Context, creatorID uuid.UUID) (*domain.Product, error) {
	product := domain.NewPlaceholder(creatorID)
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Update applies administrator field edits.
func (s *Service) Update(ctx context.Context, id uuid.UUID, update ports.ProductUpdate) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Name != "" {
		product.Name = update.Name
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Description != "" {
		product.Description = update.Description
	}
	if update.Image != "" {
		product.Image = update.Image
	}
	if update.Gallery != nil {
		product.Gallery = update.Gallery
	}
	if update.Brand != "" {
		product.Brand = update.Brand
	}
	if update.Category != "" {
		product.Category = update.Category
	}
	if update.CountInStock != nil {
		product.CountInStock = *update.CountInStock
	}
	if update.Specs != nil {
		product.Specs = *update.Specs
	}
	product.Featured = update.Featured
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Delete removes a product. Historical orders keep their snapshots.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// AddReview appends a review, recomputing the aggregate rating in the same
// save as the review itself.
func (s *Service) AddReview(ctx context.Context, productID uuid.UUID, review ports.ReviewInput) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := product.AddReview(review.AccountID, review.ReviewerName, review.Rating, review.Comment, s.now()); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Homepage assembles the landing-page collections: the latest arrivals, the
// most reviewed products as a best-seller proxy, and the featured picks.
func (s *Service) Homepage(ctx context.Context) (*ports.HomepageLists, error) {
	newest, err := s.repo.ListNewest(ctx, homepageListSize)
	if err != nil {
		return nil, err
	}
	mostReviewed, err := s.repo.ListMostReviewed(ctx, homepageListSize)
	if err != nil {
		return nil, err
	}
	featured, err := s.repo.ListFeatured(ctx, homepageListSize)
	if err != nil {
		return nil, err
	}
	return &ports.HomepageLists{
		NewArrivals: newest,
		BestSellers: mostReviewed,
		Featured:    featured,
	}, nil
}

var _ ports.Service = (*Service)(nil)

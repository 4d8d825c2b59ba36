package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/voltshop/storefront-api/internal/domains/catalog/domain"
	"github.com/voltshop/storefront-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

const defaultPageSize = 10

// Repository is an in-memory catalog persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*domain.Product
}

func NewRepository() *Repository {
	return &Repository{products: map[uuid.UUID]*domain.Product{}}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := cloneProduct(product)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}
	now := time.Now()
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	r.products[clone.ID] = clone
	return cloneProduct(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneProduct(product), nil
}

func (r *Repository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) (*ports.ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	keyword := strings.ToLower(strings.TrimSpace(filter.Keyword))
	brands := map[string]bool{}
	for _, brand := range filter.Brands {
		brands[brand] = true
	}
	var matched []*domain.Product
	for _, product := range r.products {
		if keyword != "" && !strings.Contains(strings.ToLower(product.Name), keyword) {
			continue
		}
		if len(brands) > 0 && !brands[product.Brand] {
			continue
		}
		matched = append(matched, cloneProduct(product))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	pages := (len(matched) + pageSize - 1) / pageSize
	start := pageSize * (page - 1)
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return &ports.ListResult{Products: matched[start:end], Page: page, Pages: pages}, nil
}

func (r *Repository) ListNewest(_ context.Context, limit int) ([]*domain.Product, error) {
	return r.sorted(limit, func(a, b *domain.Product) bool { return a.CreatedAt.After(b.CreatedAt) }, nil)
}

func (r *Repository) ListMostReviewed(_ context.Context, limit int) ([]*domain.Product, error) {
	return r.sorted(limit, func(a, b *domain.Product) bool { return a.NumReviews > b.NumReviews }, nil)
}

func (r *Repository) ListFeatured(_ context.Context, limit int) ([]*domain.Product, error) {
	featured := func(p *domain.Product) bool { return p.Featured }
	return r.sorted(limit, func(a, b *domain.Product) bool { return a.CreatedAt.After(b.CreatedAt) }, featured)
}

func (r *Repository) TryDecrementStock(_ context.Context, id uuid.UUID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return ports.ErrNotFound
	}
	if err := product.DecrementStock(qty); err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return ports.ErrInsufficientStock
		}
		return err
	}
	return nil
}

// DecrementStockBatch decrements stock for several products under one lock.
// Either every decrement applies or none does, mirroring the transactional
// behaviour of the PostgreSQL adapter.
func (r *Repository) DecrementStockBatch(_ context.Context, quantities map[uuid.UUID]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, qty := range quantities {
		product, ok := r.products[id]
		if !ok {
			return ports.ErrNotFound
		}
		if product.CountInStock < qty {
			return ports.ErrInsufficientStock
		}
	}
	for id, qty := range quantities {
		r.products[id].CountInStock -= qty
	}
	return nil
}

func (r *Repository) sorted(limit int, less func(a, b *domain.Product) bool, keep func(*domain.Product) bool) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Product
	for _, product := range r.products {
		if keep != nil && !keep(product) {
			continue
		}
		list = append(list, cloneProduct(product))
	}
	sort.Slice(list, func(i, j int) bool { return less(list[i], list[j]) })
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func cloneProduct(product *domain.Product) *domain.Product {
	clone := *product
	clone.Gallery = append([]string(nil), product.Gallery...)
	clone.Reviews = append([]domain.Review(nil), product.Reviews...)
	return &clone
}

package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	catalogports "github.com/voltshop/storefront-api/internal/domains/catalog/ports"
	"github.com/voltshop/storefront-api/internal/domains/orders/domain"
	"github.com/voltshop/storefront-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// StockKeeper applies a whole order's stock decrements atomically. The
// catalog memory repository satisfies it.
type StockKeeper interface {
	DecrementStockBatch(ctx context.Context, quantities map[uuid.UUID]int) error
}

// Repository is an in-memory order store for tests and local development.
type Repository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*domain.Order
	stock  StockKeeper
}

// NewRepository builds an empty repository decrementing stock via keeper.
func NewRepository(stock StockKeeper) *Repository {
	return &Repository{orders: map[uuid.UUID]*domain.Order{}, stock: stock}
}

func (r *Repository) Place(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if r.stock != nil {
		quantities := map[uuid.UUID]int{}
		for _, item := range order.Items {
			quantities[item.ProductID] += item.Qty
		}
		if err := r.stock.DecrementStockBatch(ctx, quantities); err != nil {
			return nil, mapStockError(err)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	copied := cloneOrder(order)
	r.orders[order.ID] = copied
	return cloneOrder(copied), nil
}

func (r *Repository) Update(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.orders[order.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	order.CreatedAt = existing.CreatedAt
	order.UpdatedAt = time.Now()
	copied := cloneOrder(order)
	r.orders[order.ID] = copied
	return cloneOrder(copied), nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *Repository) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*domain.Order, error) {
	return r.collect(func(order *domain.Order) bool { return order.AccountID == accountID })
}

func (r *Repository) List(_ context.Context) ([]*domain.Order, error) {
	return r.collect(func(*domain.Order) bool { return true })
}

func (r *Repository) collect(keep func(*domain.Order) bool) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Order
	for _, order := range r.orders {
		if keep(order) {
			out = append(out, cloneOrder(order))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func mapStockError(err error) error {
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		return ports.ErrProductNotFound
	case errors.Is(err, catalogports.ErrInsufficientStock):
		return ports.ErrInsufficientStock
	default:
		return err
	}
}

func cloneOrder(order *domain.Order) *domain.Order {
	copied := *order
	copied.Items = append([]domain.LineItem(nil), order.Items...)
	return &copied
}

package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/voltshop/storefront-api/internal/domains/orders/domain"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrInsufficientStock means placing the order would take a product
	// below zero stock; nothing is persisted when it is returned.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Repository persists orders. Place must write the order and decrement stock
// for every line atomically: either all writes land or none do.
type Repository interface {
	Place(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}

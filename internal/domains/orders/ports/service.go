package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/voltshop/storefront-api/internal/domains/orders/domain"
)

// Actor identifies who is invoking an operation so ownership rules can be
// enforced in one place.
type Actor struct {
	AccountID uuid.UUID
	Admin     bool
}

// ItemInput is one cart line as submitted by a client.
type ItemInput struct {
	ProductID uuid.UUID
	Qty       int
}

// PlaceInput is a checkout request. ClientTotal is what the client computed
// and displayed; the server reprices and only logs a mismatch.
type PlaceInput struct {
	Items           []ItemInput
	ShippingAddress domain.ShippingAddress
	PaymentMethod   string
	ClientTotal     float64
}

// Service exposes order use cases to adapters.
type Service interface {
	Place(ctx context.Context, actor Actor, input PlaceInput) (*domain.Order, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*domain.Order, error)
	ConfirmPayment(ctx context.Context, actor Actor, id uuid.UUID, result domain.PaymentResult) (*domain.Order, error)
	ConfirmDelivery(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListMine(ctx context.Context, accountID uuid.UUID) ([]*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
}

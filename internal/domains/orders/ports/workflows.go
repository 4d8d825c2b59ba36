package ports

import (
	"context"

	"github.com/voltshop/storefront-api/internal/domains/orders/domain"
)

// WorkflowOrchestrator exposes durable workflow operations required by the
// orders bounded context.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, actor Actor, input PlaceInput) (*domain.Order, error)
}

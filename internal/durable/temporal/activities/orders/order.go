package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	orderapp "github.com/voltshop/storefront-api/internal/domains/orders/application"
	"github.com/voltshop/storefront-api/internal/domains/orders/domain"
	orderports "github.com/voltshop/storefront-api/internal/domains/orders/ports"
)

// PlaceOrderActivityName persists an order aggregate with its stock decrements.
const PlaceOrderActivityName = "orders.activities.PlaceOrder"

// Rejection type tags carried on non-retryable activity errors so the API
// side can restore the matching service error after the workflow round trip.
const (
	rejectInvalidInput      = "InvalidOrderInput"
	rejectForbidden         = "Forbidden"
	rejectInsufficientStock = "InsufficientStock"
	rejectProductNotFound   = "ProductNotFound"
)

// PlaceOrderActivityInput carries the checkout command into the activity.
type PlaceOrderActivityInput struct {
	Actor orderports.Actor
	Input orderports.PlaceInput
}

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service orderports.Service
}

// NewActivities wires the order service into the Temporal activities bundle.
func NewActivities(service orderports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder snapshots, prices, and persists an order. Rejections (bad cart,
// oversell, unknown product) are permanent and returned non-retryable;
// infrastructure errors keep the workflow retry policy.
func (a *Activities) PlaceOrder(ctx context.Context, input PlaceOrderActivityInput) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	accountID := input.Actor.AccountID
	if a == nil || a.service == nil {
		logger.Error("place order activity not initialized", "accountId", accountID)
		return nil, errors.New("place order activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "accountId", accountID, "itemCount", len(input.Input.Items))
	order, err := a.service.Place(ctx, input.Actor, input.Input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "accountId", accountID, "error", err)
		return nil, asRejection(err)
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID)
	return order, nil
}

func asRejection(err error) error {
	switch {
	case errors.Is(err, orderapp.ErrInvalidInput):
		return temporal.NewNonRetryableApplicationError(err.Error(), rejectInvalidInput, err)
	case errors.Is(err, orderapp.ErrForbidden):
		return temporal.NewNonRetryableApplicationError(err.Error(), rejectForbidden, err)
	case errors.Is(err, orderports.ErrInsufficientStock):
		return temporal.NewNonRetryableApplicationError(err.Error(), rejectInsufficientStock, err)
	case errors.Is(err, orderports.ErrProductNotFound):
		return temporal.NewNonRetryableApplicationError(err.Error(), rejectProductNotFound, err)
	default:
		return err
	}
}

// RestoreRejection maps a rejection raised by PlaceOrder back to the service
// error it was built from. Workflow results lose the Go error chain in
// serialization; without this the transport would answer 500 for a plain bad
// cart.
func RestoreRejection(err error) error {
	if err == nil {
		return nil
	}
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case rejectInvalidInput:
		detail := strings.TrimPrefix(appErr.Message(), orderapp.ErrInvalidInput.Error()+": ")
		return fmt.Errorf("%w: %s", orderapp.ErrInvalidInput, detail)
	case rejectForbidden:
		return orderapp.ErrForbidden
	case rejectInsufficientStock:
		return orderports.ErrInsufficientStock
	case rejectProductNotFound:
		return orderports.ErrProductNotFound
	default:
		return err
	}
}

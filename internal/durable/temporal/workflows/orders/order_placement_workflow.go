package orders

import (
	"go.temporal.io/sdk/workflow"

	"github.com/voltshop/storefront-api/internal/domains/orders/domain"
	orderactivities "github.com/voltshop/storefront-api/internal/durable/temporal/activities/orders"
	"github.com/voltshop/storefront-api/internal/durable/temporal/sequences"
)

const (
	// OrderPlacementWorkflowName is the public identifier for registering the workflow.
	OrderPlacementWorkflowName = "orders.workflows.Placement"
	// OrderPlacementTaskQueue is the queue consumed by the worker processing order workflows.
	OrderPlacementTaskQueue = "ORDER_PLACEMENT"
)

// OrderPlacementWorkflowInput captures the payload required to place an order.
type OrderPlacementWorkflowInput struct {
	Command orderactivities.PlaceOrderActivityInput
	TraceID string
}

// OrderPlacementWorkflow orchestrates the activities needed to persist an
// order aggregate together with its stock decrements.
func OrderPlacementWorkflow(ctx workflow.Context, input OrderPlacementWorkflowInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	accountID := input.Command.Actor.AccountID
	logger.Info("OrderPlacementWorkflow started", withTraceID(input.TraceID, "accountId", accountID)...)
	order, err := sequences.RunOrderPlacementSequence(ctx, input.Command)
	if err != nil {
		logger.Error("OrderPlacementWorkflow failed", withTraceID(input.TraceID, "accountId", accountID, "error", err)...)
		return nil, err
	}
	logger.Info("OrderPlacementWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID)...)
	return order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}

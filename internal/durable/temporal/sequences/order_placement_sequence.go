package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/voltshop/storefront-api/internal/domains/orders/domain"
	orderactivities "github.com/voltshop/storefront-api/internal/durable/temporal/activities/orders"
)

// RunOrderPlacementSequence executes the ordered set of activities needed to
// persist an order aggregate. The activity returns rejections (bad cart,
// oversell, unknown product) as non-retryable errors, so the retry policy
// only covers infrastructure failures.
func RunOrderPlacementSequence(ctx workflow.Context, input orderactivities.PlaceOrderActivityInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	accountID := input.Actor.AccountID
	logger.Info("order placement sequence started", "accountId", accountID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var order domain.Order
	err := workflow.ExecuteActivity(ctx, orderactivities.PlaceOrderActivityName, input).Get(ctx, &order)
	if err != nil {
		logger.Error("order placement sequence failed", "accountId", accountID, "error", err)
		return nil, err
	}
	logger.Info("order placement sequence completed", "orderId", order.ID)
	return &order, nil
}

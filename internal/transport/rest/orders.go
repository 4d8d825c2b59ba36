package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accountports "github.com/voltshop/storefront-api/internal/domains/accounts/ports"
	orderdomain "github.com/voltshop/storefront-api/internal/domains/orders/domain"
	orderports "github.com/voltshop/storefront-api/internal/domains/orders/ports"
	"github.com/voltshop/storefront-api/internal/shared/problem"
)

// OrdersAPI wires HTTP transport with the orders bounded context service and
// workflows. Placement goes through the workflow orchestrator when one is
// configured; everything else hits the service directly.
type OrdersAPI struct {
	service   orderports.Service
	workflows orderports.WorkflowOrchestrator
	accounts  accountports.Service
	responder *problem.Responder
}

// NewOrdersAPI creates an OrdersAPI backed by the provided service.
func NewOrdersAPI(service orderports.Service, workflows orderports.WorkflowOrchestrator, accounts accountports.Service, responder *problem.Responder) OrdersAPI {
	return OrdersAPI{service: service, workflows: workflows, accounts: accounts, responder: responder}
}

type orderItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Qty       int       `json:"qty"`
}

type placeOrderRequest struct {
	Items           []orderItemRequest     `json:"items"`
	ShippingAddress shippingAddressPayload `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	TotalPrice      float64                `json:"totalPrice"`
}

// Post /api/orders
// Place an order from the authenticated account's cart
func (api *OrdersAPI) Place(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		api.responder.Respond(c, problem.Authentication)
		return
	}
	var payload placeOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, problem.BadRequest.WithDetail(err.Error()))
		return
	}
	items := make([]orderports.ItemInput, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, orderports.ItemInput{ProductID: item.ProductID, Qty: item.Qty})
	}
	input := orderports.PlaceInput{
		Items: items,
		ShippingAddress: orderdomain.ShippingAddress{
			Address:    payload.ShippingAddress.Address,
			Town:       payload.ShippingAddress.Town,
			County:     payload.ShippingAddress.County,
			PostalCode: payload.ShippingAddress.PostalCode,
			Phone:      payload.ShippingAddress.Phone,
		},
		PaymentMethod: payload.PaymentMethod,
		ClientTotal:   payload.TotalPrice,
	}
	order, err := api.place(c.Request.Context(), actor, input)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromOrder(order, api.purchaser(c.Request.Context(), order.AccountID)))
}

func (api *OrdersAPI) place(ctx context.Context, actor orderports.Actor, input orderports.PlaceInput) (*orderdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, actor, input)
	}
	return api.service.Place(ctx, actor, input)
}

// Get /api/orders/:id
// Fetch one order; purchaser or admin only
func (api *OrdersAPI) Get(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		api.responder.Respond(c, problem.Authentication)
		return
	}
	id, ok := parseUUIDParam(c, api.responder, "id")
	if !ok {
		return
	}
	order, err := api.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromOrder(order, api.purchaser(c.Request.Context(), order.AccountID)))
}

type paymentResultRequest struct {
	Reference    string `json:"reference"`
	Status       string `json:"status"`
	EmailAddress string `json:"emailAddress"`
	CompletedAt  string `json:"completedAt"`
}

// Put /api/orders/:id/pay
// Record the payment gateway result; purchaser or admin
func (api *OrdersAPI) ConfirmPayment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		api.responder.Respond(c, problem.Authentication)
		return
	}
	id, ok := parseUUIDParam(c, api.responder, "id")
	if !ok {
		return
	}
	var payload paymentResultRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, problem.BadRequest.WithDetail(err.Error()))
		return
	}
	order, err := api.service.ConfirmPayment(c.Request.Context(), actor, id, orderdomain.PaymentResult{
		Reference:    payload.Reference,
		Status:       payload.Status,
		EmailAddress: payload.EmailAddress,
		CompletedAt:  payload.CompletedAt,
	})
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromOrder(order, api.purchaser(c.Request.Context(), order.AccountID)))
}

// Put /api/orders/:id/deliver
// Mark an order delivered (admin); settles payment-on-delivery orders
func (api *OrdersAPI) ConfirmDelivery(c *gin.Context) {
	id, ok := parseUUIDParam(c, api.responder, "id")
	if !ok {
		return
	}
	order, err := api.service.ConfirmDelivery(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromOrder(order, api.purchaser(c.Request.Context(), order.AccountID)))
}

// Get /api/orders/myorders
// The authenticated account's order history, newest first
func (api *OrdersAPI) ListMine(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		api.responder.Respond(c, problem.Authentication)
		return
	}
	orders, err := api.service.ListMine(c.Request.Context(), actor.AccountID)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.orderList(c.Request.Context(), orders))
}

// Get /api/orders
// Every order, newest first (admin)
func (api *OrdersAPI) ListAll(c *gin.Context) {
	orders, err := api.service.ListAll(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.orderList(c.Request.Context(), orders))
}

func (api *OrdersAPI) orderList(ctx context.Context, orders []*orderdomain.Order) []orderResponse {
	// Purchasers repeat across an order history; resolve each account once.
	resolved := map[uuid.UUID]purchaserResponse{}
	out := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		purchaser, ok := resolved[order.AccountID]
		if !ok {
			purchaser = api.purchaser(ctx, order.AccountID)
			resolved[order.AccountID] = purchaser
		}
		out = append(out, fromOrder(order, purchaser))
	}
	return out
}

// purchaser resolves an account for display. Deleted accounts leave just the ID.
func (api *OrdersAPI) purchaser(ctx context.Context, accountID uuid.UUID) purchaserResponse {
	purchaser := purchaserResponse{ID: accountID}
	if api.accounts == nil {
		return purchaser
	}
	account, err := api.accounts.GetByID(ctx, accountID)
	if err != nil {
		return purchaser
	}
	purchaser.Name = account.Name
	purchaser.Email = account.Email
	return purchaser
}

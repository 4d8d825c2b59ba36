package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Payment methods accepted at checkout. Payment on Delivery collapses the
// payment step into the delivery step: marking a POD order delivered also
// marks it paid.
const (
	MethodPayPal            = "PayPal"
	MethodPaymentOnDelivery = "Payment on Delivery"
)

var (
	ErrNoItems           = errors.New("order has no items")
	ErrIncompleteAddress = errors.New("shipping address is incomplete")
	ErrUnknownMethod     = errors.New("unknown payment method")
	ErrInvalidQty        = errors.New("item quantity must be positive")
	ErrAlreadyDelivered  = errors.New("order already delivered")
)

// LineItem is a frozen snapshot of a catalog product at checkout time.
// Name, image and price are copied from the catalog when the order is
// placed and never change afterwards, whatever happens to the product.
type LineItem struct {
	ProductID uuid.UUID
	Name      string
	Image     string
	Price     float64
	Qty       int
}

// ShippingAddress is the destination captured at checkout.
type ShippingAddress struct {
	Address    string
	Town       string
	County     string
	PostalCode string
	Phone      string
}

// Complete reports whether every field the courier needs is present.
func (a ShippingAddress) Complete() bool {
	return a.Address != "" && a.Town != "" && a.County != "" && a.PostalCode != "" && a.Phone != ""
}

// PaymentResult records what the payment gateway reported when an order was
// confirmed as paid. For POD orders settled at the door it stays empty.
type PaymentResult struct {
	Reference    string
	Status       string
	EmailAddress string
	CompletedAt  string
}

// Order is the aggregate for a single checkout. Paid and Delivered are
// monotonic flags: once set they never revert.
type Order struct {
	ID              uuid.UUID
	AccountID       uuid.UUID
	Items           []LineItem
	ShippingAddress ShippingAddress
	PaymentMethod   string
	PaymentResult   PaymentResult

	ItemsTotal  float64
	ShippingFee float64
	Tax         float64
	GrandTotal  float64

	Paid        bool
	PaidAt      time.Time
	Delivered   bool
	DeliveredAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOrder builds a validated, priced order. Line-item snapshots must already
// carry catalog prices; the quote is computed here so the stored totals can
// never disagree with the stored lines.
func NewOrder(accountID uuid.UUID, items []LineItem, address ShippingAddress, method string) (Order, error) {
	if len(items) == 0 {
		return Order{}, ErrNoItems
	}
	for _, item := range items {
		if item.Qty <= 0 {
			return Order{}, ErrInvalidQty
		}
	}
	if !address.Complete() {
		return Order{}, ErrIncompleteAddress
	}
	if method != MethodPayPal && method != MethodPaymentOnDelivery {
		return Order{}, ErrUnknownMethod
	}
	quote := Quote(items)
	return Order{
		ID:              uuid.New(),
		AccountID:       accountID,
		Items:           items,
		ShippingAddress: address,
		PaymentMethod:   method,
		ItemsTotal:      quote.ItemsTotal,
		ShippingFee:     quote.ShippingFee,
		Tax:             quote.Tax,
		GrandTotal:      quote.GrandTotal,
	}, nil
}

// MarkPaid sets the paid flag and stores the gateway result. Confirming an
// already-paid order refreshes the gateway payload but never moves PaidAt or
// clears the flag, so callback retries stay harmless.
func (o *Order) MarkPaid(result PaymentResult, now time.Time) {
	o.PaymentResult = result
	if o.Paid {
		return
	}
	o.Paid = true
	o.PaidAt = now
}

// MarkDelivered sets the delivered flag. A Payment on Delivery order settles
// at the door, so delivery also marks it paid.
func (o *Order) MarkDelivered(now time.Time) error {
	if o.Delivered {
		return ErrAlreadyDelivered
	}
	o.Delivered = true
	o.DeliveredAt = now
	if o.PaymentMethod == MethodPaymentOnDelivery && !o.Paid {
		o.Paid = true
		o.PaidAt = now
	}
	return nil
}

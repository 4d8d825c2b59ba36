package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func validAddress() ShippingAddress {
	return ShippingAddress{
		Address:    "14 Harbour Lane",
		Town:       "Brighton",
		County:     "East Sussex",
		PostalCode: "BN1 3QA",
		Phone:      "07700900123",
	}
}

func TestNewOrderPricesItself(t *testing.T) {
	order, err := NewOrder(uuid.New(), []LineItem{{ProductID: uuid.New(), Name: "Laptop", Price: 60, Qty: 2}}, validAddress(), MethodPayPal)
	require.NoError(t, err)

	require.Equal(t, 120.0, order.ItemsTotal)
	require.Equal(t, 0.0, order.ShippingFee)
	require.Equal(t, 18.0, order.Tax)
	require.Equal(t, 138.0, order.GrandTotal)
	require.False(t, order.Paid)
	require.False(t, order.Delivered)
}

func TestNewOrderRejectsEmptyItems(t *testing.T) {
	_, err := NewOrder(uuid.New(), nil, validAddress(), MethodPayPal)
	require.ErrorIs(t, err, ErrNoItems)
}

func TestNewOrderRejectsNonPositiveQty(t *testing.T) {
	_, err := NewOrder(uuid.New(), []LineItem{{Price: 10, Qty: 0}}, validAddress(), MethodPayPal)
	require.ErrorIs(t, err, ErrInvalidQty)
}

func TestNewOrderRejectsIncompleteAddress(t *testing.T) {
	address := validAddress()
	address.PostalCode = ""

	_, err := NewOrder(uuid.New(), []LineItem{{Price: 10, Qty: 1}}, address, MethodPayPal)
	require.ErrorIs(t, err, ErrIncompleteAddress)
}

func TestNewOrderRejectsUnknownMethod(t *testing.T) {
	_, err := NewOrder(uuid.New(), []LineItem{{Price: 10, Qty: 1}}, validAddress(), "Barter")
	require.ErrorIs(t, err, ErrUnknownMethod)
}

func TestMarkPaidKeepsFlagsOnRepeat(t *testing.T) {
	order, err := NewOrder(uuid.New(), []LineItem{{Price: 10, Qty: 1}}, validAddress(), MethodPayPal)
	require.NoError(t, err)

	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	order.MarkPaid(PaymentResult{Reference: "PAY-1", Status: "PENDING"}, first)
	order.MarkPaid(PaymentResult{Reference: "PAY-1", Status: "COMPLETED"}, first.Add(time.Hour))

	require.True(t, order.Paid)
	require.Equal(t, first, order.PaidAt)
	require.Equal(t, "COMPLETED", order.PaymentResult.Status)
}

func TestMarkDeliveredOnceOnly(t *testing.T) {
	order, err := NewOrder(uuid.New(), []LineItem{{Price: 10, Qty: 1}}, validAddress(), MethodPayPal)
	require.NoError(t, err)

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, order.MarkDelivered(now))
	require.ErrorIs(t, order.MarkDelivered(now.Add(time.Hour)), ErrAlreadyDelivered)
	require.Equal(t, now, order.DeliveredAt)
}

func TestDeliveringGatewayOrderDoesNotSettlePayment(t *testing.T) {
	order, err := NewOrder(uuid.New(), []LineItem{{Price: 10, Qty: 1}}, validAddress(), MethodPayPal)
	require.NoError(t, err)

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, order.MarkDelivered(now))

	require.True(t, order.Delivered)
	require.False(t, order.Paid)
	require.True(t, order.PaidAt.IsZero())
}

func TestDeliveringCashOrderSettlesPayment(t *testing.T) {
	order, err := NewOrder(uuid.New(), []LineItem{{Price: 10, Qty: 1}}, validAddress(), MethodPaymentOnDelivery)
	require.NoError(t, err)

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, order.MarkDelivered(now))

	require.True(t, order.Paid)
	require.Equal(t, now, order.PaidAt)
	require.Equal(t, PaymentResult{}, order.PaymentResult)
}

func TestDeliveringPrepaidOrderKeepsPaymentRecord(t *testing.T) {
	order, err := NewOrder(uuid.New(), []LineItem{{Price: 10, Qty: 1}}, validAddress(), MethodPayPal)
	require.NoError(t, err)

	paidAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	order.MarkPaid(PaymentResult{Reference: "PAY-1"}, paidAt)
	require.NoError(t, order.MarkDelivered(paidAt.Add(24*time.Hour)))

	require.Equal(t, paidAt, order.PaidAt)
	require.Equal(t, "PAY-1", order.PaymentResult.Reference)
}

package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Summary is the headline card row on the admin dashboard. UnpaidOrders is
// surfaced to clients as "cancelled": an order nobody paid for.
type Summary struct {
	TotalOrders      int
	TotalRevenue     float64
	DeliveredOrders  int
	DeliveredRevenue float64
	PendingOrders    int
	PendingRevenue   float64
	UnpaidOrders     int
	UnpaidRevenue    float64
}

// MonthlyPoint is one month of paid-order volume.
type MonthlyPoint struct {
	Year    int
	Month   time.Month
	Orders  int
	Revenue float64
}

// RecentOrder is one row of the latest-orders table, with the purchaser
// resolved to a display name.
type RecentOrder struct {
	OrderID       uuid.UUID
	PurchaserName string
	GrandTotal    float64
	Paid          bool
	Delivered     bool
	CreatedAt     time.Time
}

// Dashboard is the full admin reporting payload.
type Dashboard struct {
	Summary Summary
	Monthly []MonthlyPoint
	Recent  []RecentOrder
}

// Directory resolves account IDs to display names. Missing accounts resolve
// to an empty name rather than an error so deleted purchasers do not break
// the dashboard.
type Directory interface {
	AccountName(ctx context.Context, id uuid.UUID) (string, error)
}

// Service exposes reporting use cases to adapters.
type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
}

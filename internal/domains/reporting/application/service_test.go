package application

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	orderdomain "github.com/voltshop/storefront-api/internal/domains/orders/domain"
	orderports "github.com/voltshop/storefront-api/internal/domains/orders/ports"
)

type fakeLedger struct {
	orders []*orderdomain.Order
}

func (f *fakeLedger) Place(_ context.Context, order *orderdomain.Order) (*orderdomain.Order, error) {
	f.orders = append(f.orders, order)
	return order, nil
}

func (f *fakeLedger) Update(_ context.Context, order *orderdomain.Order) (*orderdomain.Order, error) {
	return order, nil
}

func (f *fakeLedger) GetByID(_ context.Context, id uuid.UUID) (*orderdomain.Order, error) {
	return nil, orderports.ErrNotFound
}

func (f *fakeLedger) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*orderdomain.Order, error) {
	return nil, nil
}

// List returns newest first, matching the real adapters.
func (f *fakeLedger) List(_ context.Context) ([]*orderdomain.Order, error) {
	out := make([]*orderdomain.Order, len(f.orders))
	copy(out, f.orders)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type staticDirectory map[uuid.UUID]string

func (d staticDirectory) AccountName(_ context.Context, id uuid.UUID) (string, error) {
	return d[id], nil
}

func ledgerOrder(accountID uuid.UUID, total float64, createdAt time.Time, paid, delivered bool) *orderdomain.Order {
	order := &orderdomain.Order{
		ID:         uuid.New(),
		AccountID:  accountID,
		GrandTotal: total,
		CreatedAt:  createdAt,
	}
	if paid {
		order.Paid = true
		order.PaidAt = createdAt
	}
	if delivered {
		order.Delivered = true
		order.DeliveredAt = createdAt
	}
	return order
}

func TestDashboardSummaryBuckets(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	alice := uuid.New()
	ledger := &fakeLedger{orders: []*orderdomain.Order{
		ledgerOrder(alice, 100, now.AddDate(0, 0, -3), true, true),
		ledgerOrder(alice, 50, now.AddDate(0, 0, -2), true, false),
		ledgerOrder(alice, 30, now.AddDate(0, 0, -1), false, false),
	}}
	svc := NewService(ledger, staticDirectory{alice: "Alice"}, WithClock(func() time.Time { return now }))

	dashboard, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	summary := dashboard.Summary
	require.Equal(t, 3, summary.TotalOrders)
	require.Equal(t, 180.0, summary.TotalRevenue)
	require.Equal(t, 1, summary.DeliveredOrders)
	require.Equal(t, 100.0, summary.DeliveredRevenue)
	require.Equal(t, 1, summary.PendingOrders)
	require.Equal(t, 50.0, summary.PendingRevenue)
	require.Equal(t, 1, summary.UnpaidOrders)
	require.Equal(t, 30.0, summary.UnpaidRevenue)
}

func TestDashboardMonthlySeriesWindowsAndSorts(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	alice := uuid.New()
	ledger := &fakeLedger{orders: []*orderdomain.Order{
		ledgerOrder(alice, 10, now.AddDate(0, -14, 0), true, false), // outside window
		ledgerOrder(alice, 20, now.AddDate(0, -6, 0), true, false),
		ledgerOrder(alice, 30, now.AddDate(0, -6, 0), true, false),
		ledgerOrder(alice, 40, now.AddDate(0, -1, 0), true, false),
		ledgerOrder(alice, 99, now.AddDate(0, -2, 0), false, false), // unpaid, excluded
	}}
	svc := NewService(ledger, staticDirectory{}, WithClock(func() time.Time { return now }))

	dashboard, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, dashboard.Monthly, 2)
	require.Equal(t, time.February, dashboard.Monthly[0].Month)
	require.Equal(t, 2, dashboard.Monthly[0].Orders)
	require.Equal(t, 50.0, dashboard.Monthly[0].Revenue)
	require.Equal(t, time.July, dashboard.Monthly[1].Month)
	require.Equal(t, 40.0, dashboard.Monthly[1].Revenue)
}

func TestDashboardRecentOrdersResolveNames(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	alice := uuid.New()
	ghost := uuid.New()
	var orders []*orderdomain.Order
	for day := 1; day <= 7; day++ {
		orders = append(orders, ledgerOrder(alice, float64(day), now.AddDate(0, 0, -day), true, false))
	}
	orders = append(orders, ledgerOrder(ghost, 500, now, false, false))
	ledger := &fakeLedger{orders: orders}
	svc := NewService(ledger, staticDirectory{alice: "Alice"}, WithClock(func() time.Time { return now }))

	dashboard, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, dashboard.Recent, 5)
	require.Equal(t, 500.0, dashboard.Recent[0].GrandTotal)
	require.Empty(t, dashboard.Recent[0].PurchaserName)
	require.Equal(t, "Alice", dashboard.Recent[1].PurchaserName)
}

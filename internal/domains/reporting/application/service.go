package application

import (
	"context"
	"sort"
	"time"

	orderdomain "github.com/voltshop/storefront-api/internal/domains/orders/domain"
	orderports "github.com/voltshop/storefront-api/internal/domains/orders/ports"
	"github.com/voltshop/storefront-api/internal/domains/reporting/ports"
)

const (
	recentOrderCount = 5
	trailingMonths   = 12
)

// Service folds the order ledger into the admin dashboard. It is read-only:
// every figure is derived on request, nothing is stored.
type Service struct {
	orders    orderports.Repository
	directory ports.Directory
	now       func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(orders orderports.Repository, directory ports.Directory, opts ...Option) *Service {
	s := &Service{orders: orders, directory: directory, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Dashboard aggregates the whole ledger: summary buckets, a trailing
// twelve-month series over paid orders, and the five most recent orders.
func (s *Service) Dashboard(ctx context.Context) (*ports.Dashboard, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	dashboard := &ports.Dashboard{
		Summary: summarize(orders),
		Monthly: monthlySeries(orders, s.now()),
		Recent:  s.recent(ctx, orders),
	}
	return dashboard, nil
}

func summarize(orders []*orderdomain.Order) ports.Summary {
	var summary ports.Summary
	for _, order := range orders {
		summary.TotalOrders++
		summary.TotalRevenue += order.GrandTotal
		switch {
		case order.Delivered:
			summary.DeliveredOrders++
			summary.DeliveredRevenue += order.GrandTotal
		case order.Paid:
			summary.PendingOrders++
			summary.PendingRevenue += order.GrandTotal
		}
		if !order.Paid {
			summary.UnpaidOrders++
			summary.UnpaidRevenue += order.GrandTotal
		}
	}
	return summary
}

func monthlySeries(orders []*orderdomain.Order, now time.Time) []ports.MonthlyPoint {
	cutoff := now.AddDate(0, -trailingMonths, 0)
	type bucket struct {
		year  int
		month time.Month
	}
	points := map[bucket]*ports.MonthlyPoint{}
	for _, order := range orders {
		if !order.Paid || order.CreatedAt.Before(cutoff) {
			continue
		}
		key := bucket{year: order.CreatedAt.Year(), month: order.CreatedAt.Month()}
		point, ok := points[key]
		if !ok {
			point = &ports.MonthlyPoint{Year: key.year, Month: key.month}
			points[key] = point
		}
		point.Orders++
		point.Revenue += order.GrandTotal
	}
	series := make([]ports.MonthlyPoint, 0, len(points))
	for _, point := range points {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool {
		if series[i].Year != series[j].Year {
			return series[i].Year < series[j].Year
		}
		return series[i].Month < series[j].Month
	})
	return series
}

// recent assumes the repository lists newest first.
func (s *Service) recent(ctx context.Context, orders []*orderdomain.Order) []ports.RecentOrder {
	limit := recentOrderCount
	if len(orders) < limit {
		limit = len(orders)
	}
	rows := make([]ports.RecentOrder, 0, limit)
	for _, order := range orders[:limit] {
		name := ""
		if s.directory != nil {
			if resolved, err := s.directory.AccountName(ctx, order.AccountID); err == nil {
				name = resolved
			}
		}
		rows = append(rows, ports.RecentOrder{
			OrderID:       order.ID,
			PurchaserName: name,
			GrandTotal:    order.GrandTotal,
			Paid:          order.Paid,
			Delivered:     order.Delivered,
			CreatedAt:     order.CreatedAt,
		})
	}
	return rows
}

var _ ports.Service = (*Service)(nil)

package application

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/voltshop/storefront-api/internal/domains/orders/domain"
	"github.com/voltshop/storefront-api/internal/domains/orders/ports"
)

// Service orchestrates order use cases. Prices are always recomputed from the
// catalog on the server; client-side totals are advisory only.
type Service struct {
	repo    ports.Repository
	catalog ports.Catalog
	logger  *slog.Logger
	now     func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo ports.Repository, catalog ports.Catalog, opts ...Option) *Service {
	s := &Service{repo: repo, catalog: catalog, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Place snapshots each cart line from the catalog, prices the order, and
// persists it together with the stock decrements in one atomic step.
func (s *Service) Place(ctx context.Context, actor ports.Actor, input ports.PlaceInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, mapError(domain.ErrNoItems)
	}
	items := make([]domain.LineItem, 0, len(input.Items))
	for _, line := range input.Items {
		if line.Qty <= 0 {
			return nil, mapError(domain.ErrInvalidQty)
		}
		snapshot, err := s.catalog.Product(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.LineItem{
			ProductID: snapshot.ID,
			Name:      snapshot.Name,
			Image:     snapshot.Image,
			Price:     snapshot.Price,
			Qty:       line.Qty,
		})
	}
	order, err := domain.NewOrder(actor.AccountID, items, input.ShippingAddress, input.PaymentMethod)
	if err != nil {
		return nil, mapError(err)
	}
	if input.ClientTotal != 0 && math.Abs(input.ClientTotal-order.GrandTotal) >= 0.01 {
		s.logWarn(ctx, "client total disagrees with server pricing",
			slog.String("order.id", order.ID.String()),
			slog.Float64("client_total", input.ClientTotal),
			slog.Float64("server_total", order.GrandTotal))
	}
	return s.repo.Place(ctx, &order)
}

// Get returns an order to its purchaser or to an admin.
func (s *Service) Get(ctx context.Context, actor ports.Actor, id uuid.UUID) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.AccountID != actor.AccountID && !actor.Admin {
		return nil, ErrForbidden
	}
	return order, nil
}

// ConfirmPayment records the gateway result on an order. Only the purchaser
// or an admin may confirm; repeated confirmations are absorbed.
func (s *Service) ConfirmPayment(ctx context.Context, actor ports.Actor, id uuid.UUID, result domain.PaymentResult) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.AccountID != actor.AccountID && !actor.Admin {
		return nil, ErrForbidden
	}
	order.MarkPaid(result, s.now())
	return s.repo.Update(ctx, order)
}

// ConfirmDelivery marks an order delivered. Callers gate this to admins.
func (s *Service) ConfirmDelivery(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.MarkDelivered(s.now()); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, order)
}

func (s *Service) ListMine(ctx context.Context, accountID uuid.UUID) ([]*domain.Order, error) {
	return s.repo.ListByAccount(ctx, accountID)
}

func (s *Service) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) logWarn(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

var _ ports.Service = (*Service)(nil)

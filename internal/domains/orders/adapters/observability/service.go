package observability

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/voltshop/storefront-api/internal/domains/orders/domain"
	"github.com/voltshop/storefront-api/internal/domains/orders/ports"
)

const tracerName = "github.com/voltshop/storefront-api/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core order service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Place(ctx context.Context, actor ports.Actor, input ports.PlaceInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Place",
		trace.WithAttributes(
			attribute.String("order.account_id", actor.AccountID.String()),
			attribute.Int("order.item_count", len(input.Items)),
			attribute.String("order.payment_method", input.PaymentMethod)))
	defer span.End()

	s.logInfo(ctx, "placing order",
		slog.String("account.id", actor.AccountID.String()),
		slog.Int("item_count", len(input.Items)))
	result, err := s.inner.Place(ctx, actor, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.String("account.id", actor.AccountID.String()))
	}
	s.metrics.recordPlaced(ctx, result.PaymentMethod)
	s.metrics.recordRevenue(ctx, result.GrandTotal)
	s.logInfo(ctx, "order placed",
		slog.String("order.id", result.ID.String()),
		slog.Float64("grand_total", result.GrandTotal))
	return result, nil
}

func (s *Service) Get(ctx context.Context, actor ports.Actor, id uuid.UUID) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Get", trace.WithAttributes(attribute.String("order.id", id.String())))
	defer span.End()

	result, err := s.inner.Get(ctx, actor, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id.String()))
	}
	return result, nil
}

func (s *Service) ConfirmPayment(ctx context.Context, actor ports.Actor, id uuid.UUID, result domain.PaymentResult) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ConfirmPayment", trace.WithAttributes(attribute.String("order.id", id.String())))
	defer span.End()

	s.logInfo(ctx, "confirming payment", slog.String("order.id", id.String()), slog.String("gateway.status", result.Status))
	updated, err := s.inner.ConfirmPayment(ctx, actor, id, result)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to confirm payment", slog.String("order.id", id.String()))
	}
	s.metrics.recordPaid(ctx)
	s.logInfo(ctx, "payment confirmed", slog.String("order.id", id.String()))
	return updated, nil
}

func (s *Service) ConfirmDelivery(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ConfirmDelivery", trace.WithAttributes(attribute.String("order.id", id.String())))
	defer span.End()

	s.logInfo(ctx, "confirming delivery", slog.String("order.id", id.String()))
	updated, err := s.inner.ConfirmDelivery(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to confirm delivery", slog.String("order.id", id.String()))
	}
	s.metrics.recordDelivered(ctx)
	s.logInfo(ctx, "delivery confirmed", slog.String("order.id", id.String()))
	return updated, nil
}

func (s *Service) ListMine(ctx context.Context, accountID uuid.UUID) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListMine", trace.WithAttributes(attribute.String("account.id", accountID.String())))
	defer span.End()

	result, err := s.inner.ListMine(ctx, accountID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.String("account.id", accountID.String()))
	}
	span.SetAttributes(attribute.Int("order.count", len(result)))
	return result, nil
}

func (s *Service) ListAll(ctx context.Context) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListAll")
	defer span.End()

	result, err := s.inner.ListAll(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.count", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersPlaced    metric.Int64Counter
	ordersPaid      metric.Int64Counter
	ordersDelivered metric.Int64Counter
	orderRevenue    metric.Float64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.placed", metric.WithDescription("Number of orders placed"))
	ordersPaid, _ := m.Int64Counter("orders.service.paid", metric.WithDescription("Number of orders marked paid"))
	ordersDelivered, _ := m.Int64Counter("orders.service.delivered", metric.WithDescription("Number of orders marked delivered"))
	orderRevenue, _ := m.Float64Counter("orders.service.revenue", metric.WithDescription("Grand totals of placed orders"))
	return serviceMetrics{ordersPlaced: ordersPlaced, ordersPaid: ordersPaid, ordersDelivered: ordersDelivered, orderRevenue: orderRevenue}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, method string) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1, metric.WithAttributes(attribute.String("order.payment_method", method)))
	}
}

func (m serviceMetrics) recordPaid(ctx context.Context) {
	if m.ordersPaid != nil {
		m.ordersPaid.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDelivered(ctx context.Context) {
	if m.ordersDelivered != nil {
		m.ordersDelivered.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRevenue(ctx context.Context, total float64) {
	if m.orderRevenue != nil {
		m.orderRevenue.Add(ctx, total)
	}
}

var _ ports.Service = (*Service)(nil)

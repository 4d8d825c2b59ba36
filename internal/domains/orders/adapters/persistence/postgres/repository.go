package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogpostgres "github.com/voltshop/storefront-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/voltshop/storefront-api/internal/domains/catalog/ports"
	"github.com/voltshop/storefront-api/internal/domains/orders/domain"
	"github.com/voltshop/storefront-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM. Placing an order and
// decrementing product stock happen in one database transaction.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{}, &orderItemRecord{})
	}
	return repo
}

type orderRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	AccountID uuid.UUID `gorm:"column:account_id;type:uuid;index"`

	ShipAddress    string `gorm:"column:ship_address"`
	ShipTown       string `gorm:"column:ship_town"`
	ShipCounty     string `gorm:"column:ship_county"`
	ShipPostalCode string `gorm:"column:ship_postal_code"`
	ShipPhone      string `gorm:"column:ship_phone"`

	PaymentMethod      string `gorm:"column:payment_method"`
	PaymentReference   string `gorm:"column:payment_reference"`
	PaymentStatus      string `gorm:"column:payment_status"`
	PaymentEmail       string `gorm:"column:payment_email"`
	PaymentCompletedAt string `gorm:"column:payment_completed_at"`

	ItemsTotal  float64 `gorm:"column:items_total"`
	ShippingFee float64 `gorm:"column:shipping_fee"`
	Tax         float64 `gorm:"column:tax"`
	GrandTotal  float64 `gorm:"column:grand_total"`

	IsPaid      bool       `gorm:"column:is_paid;index"`
	PaidAt      *time.Time `gorm:"column:paid_at"`
	IsDelivered bool       `gorm:"column:is_delivered;index"`
	DeliveredAt *time.Time `gorm:"column:delivered_at"`

	Items     []orderItemRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time         `gorm:"column:created_at;index"`
	UpdatedAt time.Time         `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;index"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid"`
	Name      string    `gorm:"column:name"`
	Image     string    `gorm:"column:image"`
	Price     float64   `gorm:"column:price"`
	Qty       int       `gorm:"column:qty"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// Place inserts the order with its line items and decrements stock for every
// line. The whole write runs in a single transaction: if any product is out
// of stock, nothing is persisted.
func (r *Repository) Place(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			if err := catalogpostgres.DecrementStockTx(tx, item.ProductID, item.Qty); err != nil {
				return mapStockError(err)
			}
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return toDomain(&record), nil
}

// Update saves the order's mutable state (payment and delivery flags). Line
// items are frozen at placement and never rewritten.
func (r *Repository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(order)
	result := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Model(&orderRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"payment_reference":    record.PaymentReference,
			"payment_status":       record.PaymentStatus,
			"payment_email":        record.PaymentEmail,
			"payment_completed_at": record.PaymentCompletedAt,
			"is_paid":              record.IsPaid,
			"paid_at":              record.PaidAt,
			"is_delivered":         record.IsDelivered,
			"delivered_at":         record.DeliveredAt,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, order.ID)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	err := r.db.WithContext(ctx).Preload("Items").First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toDomain(&record), nil
}

func (r *Repository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.Order, error) {
	return r.list(ctx, map[string]any{"account_id": accountID})
}

func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	return r.list(ctx, nil)
}

func (r *Repository) list(ctx context.Context, cond map[string]any) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	query := r.db.WithContext(ctx).Preload("Items").Order("created_at desc")
	if len(cond) > 0 {
		query = query.Where(cond)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, toDomain(&records[i]))
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func mapStockError(err error) error {
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		return ports.ErrProductNotFound
	case errors.Is(err, catalogports.ErrInsufficientStock):
		return ports.ErrInsufficientStock
	default:
		return err
	}
}

func toRecord(order *domain.Order) orderRecord {
	items := make([]orderItemRecord, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemRecord{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Qty:       item.Qty,
		})
	}
	return orderRecord{
		ID:                 order.ID,
		AccountID:          order.AccountID,
		ShipAddress:        order.ShippingAddress.Address,
		ShipTown:           order.ShippingAddress.Town,
		ShipCounty:         order.ShippingAddress.County,
		ShipPostalCode:     order.ShippingAddress.PostalCode,
		ShipPhone:          order.ShippingAddress.Phone,
		PaymentMethod:      order.PaymentMethod,
		PaymentReference:   order.PaymentResult.Reference,
		PaymentStatus:      order.PaymentResult.Status,
		PaymentEmail:       order.PaymentResult.EmailAddress,
		PaymentCompletedAt: order.PaymentResult.CompletedAt,
		ItemsTotal:         order.ItemsTotal,
		ShippingFee:        order.ShippingFee,
		Tax:                order.Tax,
		GrandTotal:         order.GrandTotal,
		IsPaid:             order.Paid,
		PaidAt:             timePtr(order.PaidAt),
		IsDelivered:        order.Delivered,
		DeliveredAt:        timePtr(order.DeliveredAt),
		Items:              items,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
}

func toDomain(record *orderRecord) *domain.Order {
	items := make([]domain.LineItem, 0, len(record.Items))
	for _, item := range record.Items {
		items = append(items, domain.LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Qty:       item.Qty,
		})
	}
	return &domain.Order{
		ID:        record.ID,
		AccountID: record.AccountID,
		Items:     items,
		ShippingAddress: domain.ShippingAddress{
			Address:    record.ShipAddress,
			Town:       record.ShipTown,
			County:     record.ShipCounty,
			PostalCode: record.ShipPostalCode,
			Phone:      record.ShipPhone,
		},
		PaymentMethod: record.PaymentMethod,
		PaymentResult: domain.PaymentResult{
			Reference:    record.PaymentReference,
			Status:       record.PaymentStatus,
			EmailAddress: record.PaymentEmail,
			CompletedAt:  record.PaymentCompletedAt,
		},
		ItemsTotal:  record.ItemsTotal,
		ShippingFee: record.ShippingFee,
		Tax:         record.Tax,
		GrandTotal:  record.GrandTotal,
		Paid:        record.IsPaid,
		PaidAt:      timeValue(record.PaidAt),
		Delivered:   record.IsDelivered,
		DeliveredAt: timeValue(record.DeliveredAt),
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeValue(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

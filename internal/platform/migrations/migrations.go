package migrations

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&accountRecord{},
		&productRecord{},
		&reviewRecord{},
		&orderRecord{},
		&orderItemRecord{},
	)
}

// Account schema mirrors the accounts Postgres adapter.
type accountRecord struct {
	ID           uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	IsAdmin      bool      `gorm:"column:is_admin"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (accountRecord) TableName() string { return "accounts" }

// Product schema mirrors the catalog Postgres adapter.
type productRecord struct {
	ID           uuid.UUID      `gorm:"primaryKey;column:id;type:uuid"`
	CreatorID    uuid.UUID      `gorm:"column:creator_id;type:uuid"`
	Name         string         `gorm:"column:name;index"`
	Image        string         `gorm:"column:image"`
	Gallery      pq.StringArray `gorm:"column:gallery;type:text[]"`
	Brand        string         `gorm:"column:brand;index"`
	Category     string         `gorm:"column:category"`
	Description  string         `gorm:"column:description"`
	Specs        map[string]any `gorm:"column:specs;serializer:json"`
	Rating       float64        `gorm:"column:rating"`
	NumReviews   int            `gorm:"column:num_reviews;index"`
	Price        float64        `gorm:"column:price"`
	CountInStock int            `gorm:"column:count_in_stock"`
	Featured     bool           `gorm:"column:is_featured;index"`
	CreatedAt    time.Time      `gorm:"column:created_at;index"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

type reviewRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;index:idx_reviews_product_account,unique"`
	AccountID uuid.UUID `gorm:"column:account_id;type:uuid;index:idx_reviews_product_account,unique"`
	Name      string    `gorm:"column:name"`
	Rating    int       `gorm:"column:rating"`
	Comment   string    `gorm:"column:comment"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (reviewRecord) TableName() string { return "product_reviews" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID                 uuid.UUID  `gorm:"primaryKey;column:id;type:uuid"`
	AccountID          uuid.UUID  `gorm:"column:account_id;type:uuid;index"`
	ShipAddress        string     `gorm:"column:ship_address"`
	ShipTown           string     `gorm:"column:ship_town"`
	ShipCounty         string     `gorm:"column:ship_county"`
	ShipPostalCode     string     `gorm:"column:ship_postal_code"`
	ShipPhone          string     `gorm:"column:ship_phone"`
	PaymentMethod      string     `gorm:"column:payment_method"`
	PaymentReference   string     `gorm:"column:payment_reference"`
	PaymentStatus      string     `gorm:"column:payment_status"`
	PaymentEmail       string     `gorm:"column:payment_email"`
	PaymentCompletedAt string     `gorm:"column:payment_completed_at"`
	ItemsTotal         float64    `gorm:"column:items_total"`
	ShippingFee        float64    `gorm:"column:shipping_fee"`
	Tax                float64    `gorm:"column:tax"`
	GrandTotal         float64    `gorm:"column:grand_total"`
	IsPaid             bool       `gorm:"column:is_paid;index"`
	PaidAt             *time.Time `gorm:"column:paid_at"`
	IsDelivered        bool       `gorm:"column:is_delivered;index"`
	DeliveredAt        *time.Time `gorm:"column:delivered_at"`
	CreatedAt          time.Time  `gorm:"column:created_at;index"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
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

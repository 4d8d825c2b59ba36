package postgres

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/voltshop/storefront-api/internal/domains/catalog/domain"
	"github.com/voltshop/storefront-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

const defaultPageSize = 10

// Repository persists catalog products in PostgreSQL using GORM. Reviews live
// in a child table and are loaded with their product.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&productRecord{}, &reviewRecord{})
	}
	return repo
}

type productRecord struct {
	ID           uuid.UUID      `gorm:"primaryKey;column:id;type:uuid"`
	CreatorID    uuid.UUID      `gorm:"column:creator_id;type:uuid"`
	Name         string         `gorm:"column:name;index"`
	Image        string         `gorm:"column:image"`
	Gallery      pq.StringArray `gorm:"column:gallery;type:text[]"`
	Brand        string         `gorm:"column:brand;index"`
	Category     string         `gorm:"column:category"`
	Description  string         `gorm:"column:description"`
	Specs        domain.Specs   `gorm:"column:specs;serializer:json"`
	Rating       float64        `gorm:"column:rating"`
	NumReviews   int            `gorm:"column:num_reviews;index"`
	Price        float64        `gorm:"column:price"`
	CountInStock int            `gorm:"column:count_in_stock"`
	Featured     bool           `gorm:"column:is_featured;index"`
	Reviews      []reviewRecord `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
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

// Save upserts the product and replaces its review rows so the aggregate
// figures and the review list land in the same transaction.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(&clone)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Omit("Reviews").
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"name", "image", "gallery", "brand", "category", "description",
					"specs", "rating", "num_reviews", "price", "count_in_stock",
					"is_featured", "updated_at",
				}),
			}).Create(&record).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", record.ID).Delete(&reviewRecord{}).Error; err != nil {
			return err
		}
		if len(record.Reviews) == 0 {
			return nil
		}
		return tx.Create(&record.Reviews).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a product with its reviews.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).Preload("Reviews").First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Delete removes a product; review rows cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&productRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List pages the catalog applying the keyword and brand filters.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) (*ports.ListResult, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	query := r.db.WithContext(ctx).Model(&productRecord{})
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		query = query.Where("name ILIKE ?", "%"+keyword+"%")
	}
	if len(filter.Brands) > 0 {
		query = query.Where("brand IN ?", filter.Brands)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, err
	}
	var records []productRecord
	if err := query.
		Preload("Reviews").
		Order("created_at asc").
		Limit(pageSize).
		Offset(pageSize * (page - 1)).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return &ports.ListResult{
		Products: toDomainList(records),
		Page:     page,
		Pages:    int(math.Ceil(float64(count) / float64(pageSize))),
	}, nil
}

// ListNewest returns the latest products.
func (r *Repository) ListNewest(ctx context.Context, limit int) ([]*domain.Product, error) {
	return r.listOrdered(ctx, limit, "created_at desc", nil)
}

// ListMostReviewed orders by review count as the best-seller proxy.
func (r *Repository) ListMostReviewed(ctx context.Context, limit int) ([]*domain.Product, error) {
	return r.listOrdered(ctx, limit, "num_reviews desc", nil)
}

// ListFeatured returns administrator-flagged products.
func (r *Repository) ListFeatured(ctx context.Context, limit int) ([]*domain.Product, error) {
	cond := map[string]any{"is_featured": true}
	return r.listOrdered(ctx, limit, "created_at desc", cond)
}

// TryDecrementStock issues a conditional decrement so concurrent orders
// cannot drive stock below zero.
func (r *Repository) TryDecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return decrementStock(r.db.WithContext(ctx), id, qty)
}

// DecrementStockTx performs the same conditional decrement inside an already
// open transaction; the orders adapter uses it to keep order insert and stock
// mutation atomic.
func DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) error {
	return decrementStock(tx, id, qty)
}

func decrementStock(db *gorm.DB, id uuid.UUID, qty int) error {
	if qty <= 0 {
		return errors.New("quantity must be positive")
	}
	result := db.Model(&productRecord{}).
		Where("id = ? AND count_in_stock >= ?", id, qty).
		Update("count_in_stock", gorm.Expr("count_in_stock - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&productRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ports.ErrNotFound
		}
		return ports.ErrInsufficientStock
	}
	return nil
}

func (r *Repository) listOrdered(ctx context.Context, limit int, order string, cond map[string]any) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Preload("Reviews").Order(order).Limit(limit)
	if cond != nil {
		query = query.Where(cond)
	}
	var records []productRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	reviews := make([]reviewRecord, 0, len(product.Reviews))
	for _, review := range product.Reviews {
		reviews = append(reviews, reviewRecord{
			ID:        review.ID,
			ProductID: product.ID,
			AccountID: review.AccountID,
			Name:      review.Name,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		})
	}
	return productRecord{
		ID:           product.ID,
		CreatorID:    product.CreatorID,
		Name:         product.Name,
		Image:        product.Image,
		Gallery:      pq.StringArray(product.Gallery),
		Brand:        product.Brand,
		Category:     product.Category,
		Description:  product.Description,
		Specs:        product.Specs,
		Rating:       product.Rating,
		NumReviews:   product.NumReviews,
		Price:        product.Price,
		CountInStock: product.CountInStock,
		Featured:     product.Featured,
		Reviews:      reviews,
		CreatedAt:    product.CreatedAt,
		UpdatedAt:    product.UpdatedAt,
	}
}

func (r productRecord) toDomain() *domain.Product {
	reviews := make([]domain.Review, 0, len(r.Reviews))
	for _, review := range r.Reviews {
		reviews = append(reviews, domain.Review{
			ID:        review.ID,
			AccountID: review.AccountID,
			Name:      review.Name,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		})
	}
	return &domain.Product{
		ID:           r.ID,
		CreatorID:    r.CreatorID,
		Name:         r.Name,
		Image:        r.Image,
		Gallery:      []string(r.Gallery),
		Brand:        r.Brand,
		Category:     r.Category,
		Description:  r.Description,
		Specs:        r.Specs,
		Reviews:      reviews,
		Rating:       r.Rating,
		NumReviews:   r.NumReviews,
		Price:        r.Price,
		CountInStock: r.CountInStock,
		Featured:     r.Featured,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toDomainList(records []productRecord) []*domain.Product {
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products
}

package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/voltshop/storefront-api/internal/domains/accounts/domain"
	"github.com/voltshop/storefront-api/internal/domains/accounts/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists accounts in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&accountRecord{})
	}
	return repo
}

type accountRecord struct {
	ID           uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	Admin        bool      `gorm:"column:is_admin"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (accountRecord) TableName() string { return "accounts" }

// Save inserts or updates an account keyed by id. A unique-violation on the
// email index surfaces as ports.ErrEmailTaken.
func (r *Repository) Save(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if account == nil {
		return nil, errors.New("account is nil")
	}
	clone := *account
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(&clone)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email", "password_hash", "is_admin", "updated_at"}),
		}).
		Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrEmailTaken
		}
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an account by identifier.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record accountRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByEmail fetches an account by its unique email. Matching is case-sensitive.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	var record accountRecord
	if err := r.db.WithContext(ctx).First(&record, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Delete removes an account by identifier.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&accountRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns all accounts.
func (r *Repository) List(ctx context.Context) ([]*domain.Account, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []accountRecord
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&records).Error; err != nil {
		return nil, err
	}
	accounts := make([]*domain.Account, 0, len(records))
	for i := range records {
		accounts = append(accounts, records[i].toDomain())
	}
	return accounts, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres account repository not configured")
	}
	return nil
}

func toRecord(account *domain.Account) accountRecord {
	return accountRecord{
		ID:           account.ID,
		Name:         account.Name,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		Admin:        account.Admin,
		CreatedAt:    account.CreatedAt,
		UpdatedAt:    account.UpdatedAt,
	}
}

func (r accountRecord) toDomain() *domain.Account {
	return &domain.Account{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Admin:        r.Admin,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

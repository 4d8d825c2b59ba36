package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/voltshop/storefront-api/internal/domains/accounts/domain"
)

var (
	ErrNotFound           = errors.New("account not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Repository persists accounts. Save enforces email uniqueness and returns
// ErrEmailTaken when another account already owns the address.
type Repository interface {
	Save(ctx context.Context, account *domain.Account) (*domain.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.Account, error)
}

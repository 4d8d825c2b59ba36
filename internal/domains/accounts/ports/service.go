package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/voltshop/storefront-api/internal/domains/accounts/domain"
)

// AuthSession is the result of a successful registration or login.
type AuthSession struct {
	Account *domain.Account
	Token   string
}

// ProfileUpdate carries optional profile fields; empty strings leave the
// current value untouched. A non-empty password triggers a re-hash.
type ProfileUpdate struct {
	Name     string
	Email    string
	Password string
}

// Service exposes account use cases to adapters.
type Service interface {
	Register(ctx context.Context, name, email, password string) (*AuthSession, error)
	Login(ctx context.Context, email, password string) (*AuthSession, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	SetRole(ctx context.Context, id uuid.UUID, admin bool) (*domain.Account, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/voltshop/storefront-api/internal/domains/accounts/domain"
	"github.com/voltshop/storefront-api/internal/domains/accounts/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory account persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*domain.Account
}

func NewRepository() *Repository {
	return &Repository{accounts: map[uuid.UUID]*domain.Account{}}
}

func (r *Repository) Save(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if account == nil {
		return nil, errors.New("account is nil")
	}
	clone := *account
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.accounts {
		if existing.Email == clone.Email && id != clone.ID {
			return nil, ports.ErrEmailTaken
		}
	}
	if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}
	now := time.Now()
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	r.accounts[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *account
	return &clone, nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, account := range r.accounts {
		if account.Email == email {
			clone := *account
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.accounts, id)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		clone := *account
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

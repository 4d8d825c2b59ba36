package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/voltshop/storefront-api/internal/domains/accounts/domain"
	"github.com/voltshop/storefront-api/internal/domains/accounts/ports"
)

// ErrSelfDelete guards administrators against removing their own account.
var ErrSelfDelete = errors.New("administrators may not delete their own account")

// Service orchestrates the accounts bounded context use cases.
type Service struct {
	repo   ports.Repository
	tokens ports.TokenIssuer
}

// NewService wires the accounts service with its dependencies.
func NewService(repo ports.Repository, tokens ports.TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates a new customer account. The plaintext credential is hashed
// exactly once here; bcrypt embeds a per-record random salt in the hash.
func (s *Service) Register(ctx context.Context, name, email, password string) (*ports.AuthSession, error) {
	if err := domain.ValidatePassword(password); err != nil {
		return nil, mapError(err)
	}
	account, err := domain.NewAccount(name, email)
	if err != nil {
		return nil, mapError(err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	account.PasswordHash = string(hash)
	saved, err := s.repo.Save(ctx, account)
	if err != nil {
		return nil, mapError(err)
	}
	return s.session(saved)
}

// Login verifies the credential and issues a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (*ports.AuthSession, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, ports.ErrInvalidCredentials
	}
	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, ports.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, ports.ErrInvalidCredentials
	}
	return s.session(account)
}

// GetByID loads a single account.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile applies profile edits. The credential is re-hashed only when
// a new password is supplied.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, update ports.ProfileUpdate) (*domain.Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Name != "" {
		if err := account.SetName(update.Name); err != nil {
			return nil, mapError(err)
		}
	}
	if update.Email != "" {
		if err := account.SetEmail(update.Email); err != nil {
			return nil, mapError(err)
		}
	}
	if update.Password != "" {
		if err := domain.ValidatePassword(update.Password); err != nil {
			return nil, mapError(err)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = string(hash)
	}
	saved, err := s.repo.Save(ctx, account)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// List returns all accounts for the admin table.
func (s *Service) List(ctx context.Context) ([]*domain.Account, error) {
	return s.repo.List(ctx)
}

// SetRole toggles the administrator flag on an account.
func (s *Service) SetRole(ctx context.Context, id uuid.UUID, admin bool) (*domain.Account, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	account.Admin = admin
	saved, err := s.repo.Save(ctx, account)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Delete removes an account. Administrators may not delete themselves.
func (s *Service) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return ErrSelfDelete
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) session(account *domain.Account) (*ports.AuthSession, error) {
	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, err
	}
	return &ports.AuthSession{Account: account, Token: token}, nil
}

var _ ports.Service = (*Service)(nil)

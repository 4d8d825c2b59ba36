package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName     = errors.New("name is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrEmptyPassword = errors.New("password is required")
	ErrWeakPassword  = errors.New("password must be at least 6 characters")
)

// Account represents a storefront account: a customer by default, an
// administrator when the Admin flag is set.
type Account struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Admin        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewAccount builds an account ensuring required invariants. The password
// hash is assigned separately by the application layer.
func NewAccount(name, email string) (*Account, error) {
	account := &Account{ID: uuid.New()}
	if err := account.SetName(name); err != nil {
		return nil, err
	}
	if err := account.SetEmail(email); err != nil {
		return nil, err
	}
	return account, nil
}

// SetName trims and validates the display name.
func (a *Account) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	a.Name = name
	return nil
}

// SetEmail validates the email shape. Uniqueness is enforced at the store level.
func (a *Account) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	a.Email = email
	return nil
}

// ValidatePassword checks the plaintext credential before it is hashed.
func ValidatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrEmptyPassword
	}
	if len(password) < 6 {
		return ErrWeakPassword
	}
	return nil
}

// Validate re-applies core invariants for persistence.
func (a *Account) Validate() error {
	if err := a.SetName(a.Name); err != nil {
		return err
	}
	if err := a.SetEmail(a.Email); err != nil {
		return err
	}
	if a.PasswordHash == "" {
		return ErrEmptyPassword
	}
	return nil
}

package accounts

import (
	"context"
	"errors"

	"github.com/google/uuid"

	accountports "github.com/voltshop/storefront-api/internal/domains/accounts/ports"
	"github.com/voltshop/storefront-api/internal/domains/reporting/ports"
)

var _ ports.Directory = (*Directory)(nil)

// Directory resolves purchaser names through the accounts service.
type Directory struct {
	accounts accountports.Service
}

func NewDirectory(accounts accountports.Service) *Directory {
	return &Directory{accounts: accounts}
}

func (d *Directory) AccountName(ctx context.Context, id uuid.UUID) (string, error) {
	account, err := d.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, accountports.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return account.Name, nil
}

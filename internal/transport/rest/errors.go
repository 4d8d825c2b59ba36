package rest

import (
	"errors"

	accountapp "github.com/voltshop/storefront-api/internal/domains/accounts/application"
	accountports "github.com/voltshop/storefront-api/internal/domains/accounts/ports"
	catalogapp "github.com/voltshop/storefront-api/internal/domains/catalog/application"
	catalogports "github.com/voltshop/storefront-api/internal/domains/catalog/ports"
	orderapp "github.com/voltshop/storefront-api/internal/domains/orders/application"
	orderdomain "github.com/voltshop/storefront-api/internal/domains/orders/domain"
	orderports "github.com/voltshop/storefront-api/internal/domains/orders/ports"
	"github.com/voltshop/storefront-api/internal/shared/problem"
)

// NewResponder builds the problem responder with the storefront error
// taxonomy wired in. Internal detail text is suppressed outside development.
func NewResponder(environment string) *problem.Responder {
	return problem.NewResponder(
		problem.WithInternalDetailHidden(environment == "production"),
		problem.WithMappers(mapServiceError),
	)
}

func mapServiceError(err error) (problem.Detail, bool) {
	switch {
	case errors.Is(err, accountports.ErrInvalidCredentials):
		return problem.Authentication.WithDetail("invalid email or password"), true
	case errors.Is(err, accountports.ErrEmailTaken):
		return problem.Conflict.WithDetail("an account with this email already exists"), true
	case errors.Is(err, catalogapp.ErrDuplicateReview):
		return problem.Conflict.WithDetail("this account has already reviewed the product"), true
	case errors.Is(err, orderdomain.ErrAlreadyDelivered):
		return problem.Conflict.WithDetail("order is already delivered"), true
	case errors.Is(err, accountports.ErrNotFound):
		return problem.NotFound.WithDetail("account not found"), true
	case errors.Is(err, catalogports.ErrNotFound), errors.Is(err, orderports.ErrProductNotFound):
		return problem.NotFound.WithDetail("product not found"), true
	case errors.Is(err, orderports.ErrNotFound):
		return problem.NotFound.WithDetail("order not found"), true
	case errors.Is(err, orderports.ErrInsufficientStock), errors.Is(err, catalogports.ErrInsufficientStock):
		return problem.Validation.WithDetail("insufficient stock for one of the ordered products"), true
	case errors.Is(err, orderapp.ErrForbidden):
		return problem.Authorization.WithDetail(err.Error()), true
	case errors.Is(err, accountapp.ErrSelfDelete):
		return problem.Conflict.WithDetail("admins cannot delete their own account"), true
	case errors.Is(err, accountapp.ErrInvalidInput),
		errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, orderapp.ErrInvalidInput):
		return problem.Validation.WithDetail(err.Error()), true
	default:
		return problem.Detail{}, false
	}
}

// Package problem provides RFC 7807 Problem Details for HTTP APIs.
package problem

import (
	"fmt"
	"net/http"
)

// Detail represents an RFC 7807 Problem Details response.
// See: https://www.rfc-editor.org/rfc/rfc7807
type Detail struct {
	// Type is a URI reference that identifies the problem type.
	Type string `json:"type"`
	// Title is a short, human-readable summary of the problem type.
	Title string `json:"title"`
	// Status is the HTTP status code for this occurrence.
	Status int `json:"status"`
	// Detail is a human-readable explanation specific to this occurrence.
	Detail string `json:"detail,omitempty"`
	// Instance is a URI reference that identifies the specific occurrence.
	Instance string `json:"instance,omitempty"`
	// Extensions holds additional problem-specific properties.
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Error implements the error interface.
func (p Detail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy with the given detail message.
func (p Detail) WithDetail(detail string) Detail {
	p.Detail = detail
	return p
}

// WithInstance returns a copy with the given instance URI.
func (p Detail) WithInstance(instance string) Detail {
	p.Instance = instance
	return p
}

// WithExtension returns a copy with an additional extension property.
func (p Detail) WithExtension(key string, value any) Detail {
	if p.Extensions == nil {
		p.Extensions = make(map[string]any)
	}
	p.Extensions[key] = value
	return p
}

// Problem types as URI references. The storefront taxonomy distinguishes
// authentication (missing/invalid credential) from authorization (valid
// credential, insufficient role or not the resource owner) so clients can
// redirect to login vs. render a forbidden message.
const (
	TypeAuthentication = "/problems/authentication-error"
	TypeAuthorization  = "/problems/authorization-error"
	TypeNotFound       = "/problems/not-found"
	TypeValidation     = "/problems/validation-error"
	TypeConflict       = "/problems/conflict"
	TypeInternal       = "/problems/internal-error"
	TypeBadRequest     = "/problems/bad-request"
)

var (
	// Authentication indicates a missing, invalid, or expired credential.
	Authentication = Detail{
		Type:   TypeAuthentication,
		Title:  "Not Authenticated",
		Status: http.StatusUnauthorized,
	}

	// Authorization indicates a valid credential without the required role
	// or ownership of the resource.
	Authorization = Detail{
		Type:   TypeAuthorization,
		Title:  "Not Authorized",
		Status: http.StatusForbidden,
	}

	// NotFound indicates the referenced order, product, or account does not exist.
	NotFound = Detail{
		Type:   TypeNotFound,
		Title:  "Resource Not Found",
		Status: http.StatusNotFound,
	}

	// Validation indicates the request violated a business rule.
	Validation = Detail{
		Type:   TypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
	}

	// Conflict indicates a conflict with existing state, such as a duplicate
	// email on registration or a repeated review on the same product.
	Conflict = Detail{
		Type:   TypeConflict,
		Title:  "Conflict",
		Status: http.StatusConflict,
	}

	// BadRequest indicates the request was malformed.
	BadRequest = Detail{
		Type:   TypeBadRequest,
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
	}

	// Internal indicates an unexpected server error.
	Internal = Detail{
		Type:   TypeInternal,
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
	}
)

// NewNotFound creates a not-found problem for a specific resource.
func NewNotFound(resourceType string, identifier any) Detail {
	return NotFound.
		WithDetail(fmt.Sprintf("%s with identifier '%v' not found", resourceType, identifier)).
		WithExtension("resourceType", resourceType).
		WithExtension("identifier", identifier)
}

// NewValidation creates a validation problem with field-level details.
func NewValidation(fieldErrors map[string]string) Detail {
	return Validation.WithExtension("fields", fieldErrors)
}

// StatusFromError extracts the HTTP status from an error if it carries one.
func StatusFromError(err error) int {
	if p, ok := err.(Detail); ok {
		return p.Status
	}
	return http.StatusInternalServerError
}

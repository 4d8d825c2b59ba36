package domain

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName         = errors.New("product name is required")
	ErrNegativePrice     = errors.New("price must not be negative")
	ErrNegativeStock     = errors.New("stock count must not be negative")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrAlreadyReviewed   = errors.New("product already reviewed by this account")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Specs carries the comparison-tool attributes of a product.
type Specs struct {
	Processor  string `json:"processor,omitempty"`
	RAM        string `json:"ram,omitempty"`
	ScreenSize string `json:"screenSize,omitempty"`
	Battery    string `json:"battery,omitempty"`
}

// Review is owned by its product. The reviewer name is a denormalized copy
// taken at submission time.
type Review struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Name      string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// Product models the catalog aggregate: pricing/stock data plus the embedded
// review list with its derived rating figures.
type Product struct {
	ID           uuid.UUID
	CreatorID    uuid.UUID
	Name         string
	Image        string
	Gallery      []string
	Brand        string
	Category     string
	Description  string
	Specs        Specs
	Reviews      []Review
	Rating       float64
	NumReviews   int
	Price        float64
	CountInStock int
	Featured     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewPlaceholder builds the sample product an administrator creates and then
// edits in place.
func NewPlaceholder(creatorID uuid.UUID) *Product {
	return &Product{
		ID:          uuid.New(),
		CreatorID:   creatorID,
		Name:        "Sample Name",
		Image:       "/images/sample.jpg",
		Brand:       "Sample Brand",
		Category:    "Sample Category",
		Description: "Sample description",
	}
}

// Validate enforces invariants on the aggregate.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	if p.CountInStock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// AddReview appends a review and recomputes the derived aggregates in the
// same mutation, never as a separate step. Each account reviews a product at
// most once.
func (p *Product) AddReview(accountID uuid.UUID, reviewerName string, rating int, comment string, now time.Time) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	for _, existing := range p.Reviews {
		if existing.AccountID == accountID {
			return ErrAlreadyReviewed
		}
	}
	p.Reviews = append(p.Reviews, Review{
		ID:        uuid.New(),
		AccountID: accountID,
		Name:      reviewerName,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
	})
	p.recomputeRating()
	return nil
}

// recomputeRating keeps Rating as the arithmetic mean of all review ratings
// and NumReviews as their count.
func (p *Product) recomputeRating() {
	p.NumReviews = len(p.Reviews)
	if p.NumReviews == 0 {
		p.Rating = 0
		return
	}
	sum := 0
	for _, review := range p.Reviews {
		sum += review.Rating
	}
	p.Rating = roundRating(float64(sum) / float64(p.NumReviews))
}

// DecrementStock reduces the stock count, rejecting decrements past zero.
func (p *Product) DecrementStock(qty int) error {
	if qty <= 0 {
		return ErrNegativeStock
	}
	if p.CountInStock < qty {
		return ErrInsufficientStock
	}
	p.CountInStock -= qty
	return nil
}

func roundRating(value float64) float64 {
	return math.Round(value*100) / 100
}

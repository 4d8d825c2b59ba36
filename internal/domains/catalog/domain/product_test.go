package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAddReview_RecomputesAggregates(t *testing.T) {
	product := NewPlaceholder(uuid.New())
	now := time.Now()

	require.NoError(t, product.AddReview(uuid.New(), "Jane", 4, "solid", now))
	require.Equal(t, 1, product.NumReviews)
	require.Equal(t, 4.0, product.Rating)

	require.NoError(t, product.AddReview(uuid.New(), "John", 5, "great", now))
	require.Equal(t, 2, product.NumReviews)
	require.Equal(t, 4.5, product.Rating)
}

func TestAddReview_RejectsSecondReviewBySameAccount(t *testing.T) {
	product := NewPlaceholder(uuid.New())
	reviewer := uuid.New()
	now := time.Now()

	require.NoError(t, product.AddReview(reviewer, "Jane", 4, "solid", now))
	err := product.AddReview(reviewer, "Jane", 1, "changed my mind", now)
	require.ErrorIs(t, err, ErrAlreadyReviewed)

	require.Equal(t, 1, product.NumReviews)
	require.Equal(t, 4.0, product.Rating)
}

func TestAddReview_RejectsOutOfRangeRating(t *testing.T) {
	product := NewPlaceholder(uuid.New())
	now := time.Now()

	require.ErrorIs(t, product.AddReview(uuid.New(), "Jane", 0, "", now), ErrInvalidRating)
	require.ErrorIs(t, product.AddReview(uuid.New(), "Jane", 6, "", now), ErrInvalidRating)
	require.Zero(t, product.NumReviews)
}

func TestDecrementStock_FloorCheck(t *testing.T) {
	product := NewPlaceholder(uuid.New())
	product.CountInStock = 3

	require.NoError(t, product.DecrementStock(2))
	require.Equal(t, 1, product.CountInStock)

	require.ErrorIs(t, product.DecrementStock(2), ErrInsufficientStock)
	require.Equal(t, 1, product.CountInStock)
}

func TestValidate_RejectsNegativePriceAndStock(t *testing.T) {
	product := NewPlaceholder(uuid.New())
	product.Price = -1
	require.ErrorIs(t, product.Validate(), ErrNegativePrice)

	product.Price = 0
	product.CountInStock = -1
	require.ErrorIs(t, product.Validate(), ErrNegativeStock)
}

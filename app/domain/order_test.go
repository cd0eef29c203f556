package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookbazaar/app/domain"
)

func TestNewOrder(t *testing.T) {
	userID := uuid.New()
	items := []domain.OrderItem{
		{BookID: "b-1", Title: "Dune", Price: 12.00, Quantity: 2},
		{BookID: "b-2", Title: "Hyperion", Price: 8.50, Quantity: 1},
	}

	order, err := domain.NewOrder(userID, items)
	require.NoError(t, err)

	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, domain.OrderStatusPlaced, order.Status)
	assert.InDelta(t, 32.50, order.Total, 0.0001)
	assert.Len(t, order.Items, 2)
	assert.False(t, order.CreatedAt.IsZero())
}

func TestNewOrder_Invalid(t *testing.T) {
	userID := uuid.New()

	t.Run("missing user id", func(t *testing.T) {
		_, err := domain.NewOrder(uuid.Nil, []domain.OrderItem{{BookID: "b-1", Price: 1, Quantity: 1}})
		assert.Error(t, err)
	})

	t.Run("empty items", func(t *testing.T) {
		_, err := domain.NewOrder(userID, nil)
		assert.Error(t, err)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		_, err := domain.NewOrder(userID, []domain.OrderItem{{BookID: "b-1", Price: 1, Quantity: 0}})
		assert.Error(t, err)
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := domain.NewOrder(userID, []domain.OrderItem{{BookID: "b-1", Price: -1, Quantity: 1}})
		assert.Error(t, err)
	})
}

func TestNewReview(t *testing.T) {
	bookID := uuid.New()
	userID := uuid.New()

	review, err := domain.NewReview(bookID, userID, "alice", 4, "solid read")
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, "alice", review.Username)

	_, err = domain.NewReview(bookID, userID, "alice", 0, "")
	assert.Error(t, err)

	_, err = domain.NewReview(bookID, userID, "alice", 6, "")
	assert.Error(t, err)

	_, err = domain.NewReview(uuid.Nil, userID, "alice", 3, "")
	assert.Error(t, err)
}

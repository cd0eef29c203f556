package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the fulfilment state of an order
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderItem is one purchased line of an order. Price is the unit price
// at the time the order was placed.
type OrderItem struct {
	ID       string  `json:"id"`
	BookID   string  `json:"bookId"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Order represents a placed order.
type Order struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"userId"`
	Status    OrderStatus `json:"status"`
	Total     float64     `json:"total"`
	Items     []OrderItem `json:"items"`
	CreatedAt time.Time   `json:"createdAt"`
}

// NewOrder creates an order from priced items with validation
func NewOrder(userID uuid.UUID, items []OrderItem) (*Order, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id is required")
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}

	total := 0.0
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("order item quantity must be positive: %d", item.Quantity)
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("order item price must not be negative: %f", item.Price)
		}
		total += item.Price * float64(item.Quantity)
	}

	return &Order{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    OrderStatusPlaced,
		Total:     total,
		Items:     items,
		CreatedAt: time.Now(),
	}, nil
}

// OrderRequestItem is one requested line of an order before the server
// re-prices it from the catalog.
type OrderRequestItem struct {
	BookID   string `json:"bookId"`
	Quantity int    `json:"quantity"`
}

package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// MinQuantity is the floor for any cart line item quantity.
const MinQuantity = 1

// CartItem is one book's presence in a cart. ID is the server-assigned
// line item identifier, distinct from the book identifier.
type CartItem struct {
	ID       string  `json:"id"`
	BookID   string  `json:"bookId"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

// Validate checks the line item invariants
func (i *CartItem) Validate() error {
	if i.BookID == "" {
		return fmt.Errorf("book id is required")
	}

	if i.Price < 0 {
		return fmt.Errorf("price must not be negative: %f", i.Price)
	}

	if i.Quantity < MinQuantity {
		return fmt.Errorf("quantity must be at least %d: %d", MinQuantity, i.Quantity)
	}

	return nil
}

// ClampQuantity raises a requested quantity to the floor
func ClampQuantity(quantity int) int {
	if quantity < MinQuantity {
		return MinQuantity
	}
	return quantity
}

// TotalItems sums the quantities across all line items
func TotalItems(items []CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums unit price times quantity across all line items
func TotalPrice(items []CartItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// CartLine is the server-side persistence form of a cart line item.
type CartLine struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"userId"`
	BookID   uuid.UUID `json:"bookId"`
	Quantity int       `json:"quantity"`
}

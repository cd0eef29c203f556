package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Book represents a catalog entry.
type Book struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genre         string    `json:"genre"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	Stock         int       `json:"stock"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	AverageRating *float64  `json:"averageRating,omitempty"`
	ReviewCount   *int      `json:"reviewCount,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewBook creates a new book with validation
func NewBook(title, author, genre string, price float64, stock int) (*Book, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}

	if author == "" {
		return nil, fmt.Errorf("author is required")
	}

	if price < 0 {
		return nil, fmt.Errorf("price must not be negative: %f", price)
	}

	if stock < 0 {
		return nil, fmt.Errorf("stock must not be negative: %d", stock)
	}

	now := time.Now()

	return &Book{
		ID:        uuid.New(),
		Title:     title,
		Author:    author,
		Genre:     genre,
		Price:     price,
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// InStock returns true if at least the requested quantity is available
func (b *Book) InStock(quantity int) bool {
	return b.Stock >= quantity
}

// BookInput carries the writable fields of a book for admin create and
// update operations.
type BookInput struct {
	Title       string  `json:"title" validate:"required"`
	Author      string  `json:"author" validate:"required"`
	Genre       string  `json:"genre"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	ImageURL    string  `json:"imageUrl"`
}

// BookFilter narrows catalog listings. Zero values mean "no constraint".
type BookFilter struct {
	Search   string
	Genre    string
	MinPrice float64
	MaxPrice float64
}

// IsEmpty returns true when no filter constraint is set
func (f BookFilter) IsEmpty() bool {
	return f.Search == "" && f.Genre == "" && f.MinPrice == 0 && f.MaxPrice == 0
}

package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Rating bounds for reviews
const (
	MinRating = 1
	MaxRating = 5
)

// Review represents a user's review of a book.
type Review struct {
	ID        uuid.UUID `json:"id"`
	BookID    uuid.UUID `json:"bookId"`
	UserID    uuid.UUID `json:"userId"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewReview creates a review with validation
func NewReview(bookID, userID uuid.UUID, username string, rating int, comment string) (*Review, error) {
	if bookID == uuid.Nil {
		return nil, fmt.Errorf("book id is required")
	}

	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id is required")
	}

	if rating < MinRating || rating > MaxRating {
		return nil, fmt.Errorf("rating must be between %d and %d: %d", MinRating, MaxRating, rating)
	}

	return &Review{
		ID:        uuid.New(),
		BookID:    bookID,
		UserID:    userID,
		Username:  username,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}, nil
}

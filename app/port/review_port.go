package port

//go:generate mockgen -source=review_port.go -destination=../mocks/mock_review_port.go

import (
	"context"

	"github.com/google/uuid"

	"bookbazaar/app/domain"
)

// ReviewUsecase defines review business logic interface
type ReviewUsecase interface {
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]domain.Review, error)
	Create(ctx context.Context, bookID uuid.UUID, author *domain.User, rating int, comment string) (*domain.Review, error)
	Delete(ctx context.Context, reviewID uuid.UUID, requester *domain.User) error
}

// ReviewRepository defines review data access interface
type ReviewRepository interface {
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]domain.Review, error)
	GetByID(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error)
	Create(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, reviewID uuid.UUID) error
}

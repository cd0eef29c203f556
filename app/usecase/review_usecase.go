package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"bookbazaar/app/domain"
	"bookbazaar/app/port"
)

// ReviewUseCase implements review business logic
type ReviewUseCase struct {
	reviews port.ReviewRepository
	books   port.BookRepository
	logger  *slog.Logger
}

// NewReviewUseCase creates a new ReviewUseCase instance
func NewReviewUseCase(reviews port.ReviewRepository, books port.BookRepository, logger *slog.Logger) *ReviewUseCase {
	return &ReviewUseCase{
		reviews: reviews,
		books:   books,
		logger:  logger.With("component", "review_usecase"),
	}
}

// ListByBook returns a book's reviews
func (uc *ReviewUseCase) ListByBook(ctx context.Context, bookID uuid.UUID) ([]domain.Review, error) {
	return uc.reviews.ListByBook(ctx, bookID)
}

// Create adds a review for a book. The book must exist.
func (uc *ReviewUseCase) Create(ctx context.Context, bookID uuid.UUID, author *domain.User, rating int, comment string) (*domain.Review, error) {
	if _, err := uc.books.GetByID(ctx, bookID); err != nil {
		return nil, err
	}

	review, err := domain.NewReview(bookID, author.ID, author.Username, rating, comment)
	if err != nil {
		return nil, err
	}

	if err := uc.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes a review. Only its author or an admin may do so.
func (uc *ReviewUseCase) Delete(ctx context.Context, reviewID uuid.UUID, requester *domain.User) error {
	review, err := uc.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.UserID != requester.ID && !requester.IsAdmin {
		return domain.ErrForbidden
	}

	return uc.reviews.Delete(ctx, reviewID)
}

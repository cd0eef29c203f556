package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"bookbazaar/app/domain"
	"bookbazaar/app/port"
)

// ReviewRepository implements port.ReviewRepository for PostgreSQL
type ReviewRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewReviewRepository creates a new PostgreSQL review repository
func NewReviewRepository(db DatabaseIface, logger *slog.Logger) port.ReviewRepository {
	return &ReviewRepository{
		db:     db,
		logger: logger.With("component", "review_repository"),
	}
}

// ListByBook returns a book's reviews, newest first
func (r *ReviewRepository) ListByBook(ctx context.Context, bookID uuid.UUID) ([]domain.Review, error) {
	query := `
		SELECT id, book_id, user_id, username, rating, comment, created_at
		FROM reviews
		WHERE book_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(&review.ID, &review.BookID, &review.UserID,
			&review.Username, &review.Rating, &review.Comment, &review.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reviews: %w", err)
	}
	return reviews, nil
}

// GetByID fetches one review
func (r *ReviewRepository) GetByID(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error) {
	query := `
		SELECT id, book_id, user_id, username, rating, comment, created_at
		FROM reviews
		WHERE id = $1`

	var review domain.Review
	err := r.db.QueryRow(ctx, query, reviewID).Scan(&review.ID, &review.BookID,
		&review.UserID, &review.Username, &review.Rating, &review.Comment, &review.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

// Create inserts a new review
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, book_id, user_id, username, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		review.ID, review.BookID, review.UserID, review.Username,
		review.Rating, review.Comment, review.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	r.logger.Info("review created", "review_id", review.ID, "book_id", review.BookID)
	return nil
}

// Delete removes a review
func (r *ReviewRepository) Delete(ctx context.Context, reviewID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

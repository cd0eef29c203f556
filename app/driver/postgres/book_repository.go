package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"bookbazaar/app/domain"
	"bookbazaar/app/port"
)

// BookRepository implements port.BookRepository for PostgreSQL
type BookRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewBookRepository creates a new PostgreSQL book repository
func NewBookRepository(db DatabaseIface, logger *slog.Logger) port.BookRepository {
	return &BookRepository{
		db:     db,
		logger: logger.With("component", "book_repository"),
	}
}

const bookColumns = `
	b.id, b.title, b.author, b.genre, b.description, b.price, b.stock, b.image_url,
	b.created_at, b.updated_at,
	AVG(r.rating) AS average_rating,
	COUNT(r.id) AS review_count`

// List returns catalog books matching the filter, newest first. Rating
// aggregates come from a left join so unreviewed books still appear.
func (r *BookRepository) List(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error) {
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		idx := len(args)
		conditions = append(conditions, fmt.Sprintf("(b.title ILIKE $%d OR b.author ILIKE $%d)", idx, idx))
	}
	if filter.Genre != "" {
		args = append(args, filter.Genre)
		conditions = append(conditions, fmt.Sprintf("b.genre = $%d", len(args)))
	}
	if filter.MinPrice > 0 {
		args = append(args, filter.MinPrice)
		conditions = append(conditions, fmt.Sprintf("b.price >= $%d", len(args)))
	}
	if filter.MaxPrice > 0 {
		args = append(args, filter.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("b.price <= $%d", len(args)))
	}

	query := `SELECT ` + bookColumns + `
		FROM books b
		LEFT JOIN reviews r ON r.book_id = b.id`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += `
		GROUP BY b.id
		ORDER BY b.created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read books: %w", err)
	}
	return books, nil
}

// GetByID fetches one book with its rating aggregates
func (r *BookRepository) GetByID(ctx context.Context, bookID uuid.UUID) (*domain.Book, error) {
	query := `SELECT ` + bookColumns + `
		FROM books b
		LEFT JOIN reviews r ON r.book_id = b.id
		WHERE b.id = $1
		GROUP BY b.id`

	book, err := scanBook(r.db.QueryRow(ctx, query, bookID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return book, nil
}

// Create inserts a new book
func (r *BookRepository) Create(ctx context.Context, book *domain.Book) error {
	query := `
		INSERT INTO books (id, title, author, genre, description, price, stock, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		book.ID, book.Title, book.Author, book.Genre, book.Description,
		book.Price, book.Stock, book.ImageURL, book.CreatedAt, book.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}

	r.logger.Info("book created", "book_id", book.ID, "title", book.Title)
	return nil
}

// Update replaces the writable fields of a book
func (r *BookRepository) Update(ctx context.Context, book *domain.Book) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, genre = $3, description = $4,
		    price = $5, stock = $6, image_url = $7, updated_at = $8
		WHERE id = $9`

	tag, err := r.db.Exec(ctx, query,
		book.Title, book.Author, book.Genre, book.Description,
		book.Price, book.Stock, book.ImageURL, book.UpdatedAt, book.ID)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a book. Cart lines and reviews go with it via
// foreign-key cascade.
func (r *BookRepository) Delete(ctx context.Context, bookID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, bookID)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	r.logger.Info("book deleted", "book_id", bookID)
	return nil
}

func scanBook(row pgx.Row) (*domain.Book, error) {
	var book domain.Book
	var avgRating *float64
	var reviewCount int

	err := row.Scan(&book.ID, &book.Title, &book.Author, &book.Genre, &book.Description,
		&book.Price, &book.Stock, &book.ImageURL, &book.CreatedAt, &book.UpdatedAt,
		&avgRating, &reviewCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan book: %w", err)
	}

	if reviewCount > 0 {
		book.AverageRating = avgRating
		book.ReviewCount = &reviewCount
	}
	return &book, nil
}

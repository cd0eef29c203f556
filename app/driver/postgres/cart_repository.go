package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"bookbazaar/app/domain"
	"bookbazaar/app/port"
)

// CartRepository implements port.CartRepository for PostgreSQL
type CartRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewCartRepository creates a new PostgreSQL cart repository
func NewCartRepository(db DatabaseIface, logger *slog.Logger) port.CartRepository {
	return &CartRepository{
		db:     db,
		logger: logger.With("component", "cart_repository"),
	}
}

// ListItems returns the user's cart lines joined with book details,
// oldest line first so the order is stable across reloads.
func (r *CartRepository) ListItems(ctx context.Context, userID uuid.UUID) ([]domain.CartItem, error) {
	query := `
		SELECT c.id, c.book_id, b.title, b.author, b.price, c.quantity, b.image_url
		FROM cart_items c
		JOIN books b ON b.id = c.book_id
		WHERE c.user_id = $1
		ORDER BY c.created_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		var id, bookID uuid.UUID
		if err := rows.Scan(&id, &bookID, &item.Title, &item.Author,
			&item.Price, &item.Quantity, &item.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		item.ID = id.String()
		item.BookID = bookID.String()
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cart items: %w", err)
	}
	return items, nil
}

// UpsertLine adds quantity to the user's line for a book, creating the
// line when absent. Adding an already-carted book merges instead of
// duplicating.
func (r *CartRepository) UpsertLine(ctx context.Context, userID, bookID uuid.UUID, quantity int) error {
	query := `
		INSERT INTO cart_items (id, user_id, book_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, book_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`

	if _, err := r.db.Exec(ctx, query, uuid.New(), userID, bookID, quantity); err != nil {
		return fmt.Errorf("failed to upsert cart line: %w", err)
	}
	return nil
}

// SetQuantity replaces a line's quantity. The user filter keeps one
// user from editing another's line.
func (r *CartRepository) SetQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) error {
	query := `UPDATE cart_items SET quantity = $1 WHERE id = $2 AND user_id = $3`

	tag, err := r.db.Exec(ctx, query, quantity, lineID, userID)
	if err != nil {
		return fmt.Errorf("failed to set cart quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteLine removes one line from the user's cart
func (r *CartRepository) DeleteLine(ctx context.Context, userID, lineID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, lineID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete cart line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Clear removes every line of the user's cart
func (r *CartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	r.logger.Info("cart cleared", "user_id", userID, "lines", strconv.FormatInt(tag.RowsAffected(), 10))
	return nil
}

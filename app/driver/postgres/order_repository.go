package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"bookbazaar/app/domain"
	"bookbazaar/app/port"
)

// OrderRepository implements port.OrderRepository for PostgreSQL
type OrderRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewOrderRepository creates a new PostgreSQL order repository
func NewOrderRepository(db DatabaseIface, logger *slog.Logger) port.OrderRepository {
	return &OrderRepository{
		db:     db,
		logger: logger.With("component", "order_repository"),
	}
}

// Create reserves stock and persists an order with its lines in one
// transaction. A line whose book has too little stock left aborts the
// whole order with domain.ErrOutOfStock, restoring earlier reservations.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	orderQuery := `
		INSERT INTO orders (id, user_id, status, total, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := tx.Exec(ctx, orderQuery,
		order.ID, order.UserID, order.Status, order.Total, order.CreatedAt); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	stockQuery := `
		UPDATE books
		SET stock = stock - $1
		WHERE id = $2 AND stock >= $1`

	itemQuery := `
		INSERT INTO order_items (id, order_id, book_id, title, author, price, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, item := range order.Items {
		tag, err := tx.Exec(ctx, stockQuery, item.Quantity, item.BookID)
		if err != nil {
			return fmt.Errorf("failed to reserve stock: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrOutOfStock
		}

		if _, err := tx.Exec(ctx, itemQuery,
			item.ID, order.ID, item.BookID, item.Title, item.Author,
			item.Price, item.Quantity); err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	r.logger.Info("order created", "order_id", order.ID, "user_id", order.UserID, "total", order.Total)
	return nil
}

// ListByUser returns the user's orders, newest first, with their lines
func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	orderQuery := `
		SELECT id, user_id, status, total, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, orderQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.Status,
			&order.Total, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	for i := range orders {
		items, err := r.listItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *OrderRepository) listItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	query := `
		SELECT id, book_id, title, author, price, quantity
		FROM order_items
		WHERE order_id = $1`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		var id, bookID uuid.UUID
		if err := rows.Scan(&id, &bookID, &item.Title, &item.Author,
			&item.Price, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		item.ID = id.String()
		item.BookID = bookID.String()
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order items: %w", err)
	}
	return items, nil
}

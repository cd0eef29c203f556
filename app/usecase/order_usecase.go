package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"bookbazaar/app/domain"
	"bookbazaar/app/port"
	apperrors "bookbazaar/app/utils/errors"
)

// OrderUseCase implements order business logic
type OrderUseCase struct {
	orders port.OrderRepository
	books  port.BookRepository
	carts  port.CartRepository
	logger *slog.Logger
}

// NewOrderUseCase creates a new OrderUseCase instance
func NewOrderUseCase(orders port.OrderRepository, books port.BookRepository, carts port.CartRepository, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{
		orders: orders,
		books:  books,
		carts:  carts,
		logger: logger.With("component", "order_usecase"),
	}
}

// PlaceOrder creates an order from the requested lines. Prices come
// from the current catalog, never from the request. Stock is reserved
// inside the order-creation transaction, so a failing line restores
// reservations made for earlier lines. The user's cart is emptied on
// success.
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, userID uuid.UUID, items []domain.OrderRequestItem) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeEmptyOrder, "Order must contain at least one item")
	}

	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, req := range items {
		bookID, err := uuid.Parse(req.BookID)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid book id: " + req.BookID)
		}

		quantity := domain.ClampQuantity(req.Quantity)

		book, err := uc.books.GetByID(ctx, bookID)
		if err != nil {
			return nil, err
		}

		if !book.InStock(quantity) {
			return nil, domain.ErrOutOfStock
		}

		orderItems = append(orderItems, domain.OrderItem{
			ID:       uuid.New().String(),
			BookID:   book.ID.String(),
			Title:    book.Title,
			Author:   book.Author,
			Price:    book.Price,
			Quantity: quantity,
		})
	}

	order, err := domain.NewOrder(userID, orderItems)
	if err != nil {
		return nil, err
	}

	if err := uc.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := uc.carts.Clear(ctx, userID); err != nil {
		uc.logger.Warn("failed to clear cart after order", "user_id", userID, "error", err)
	}

	uc.logger.Info("order placed", "order_id", order.ID, "user_id", userID, "total", order.Total)
	return order, nil
}

// ListOrders returns the user's order history, newest first
func (uc *OrderUseCase) ListOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	return uc.orders.ListByUser(ctx, userID)
}

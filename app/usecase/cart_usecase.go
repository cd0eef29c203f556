package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"bookbazaar/app/domain"
	"bookbazaar/app/port"
)

// CartUseCase implements cart business logic
type CartUseCase struct {
	carts  port.CartRepository
	books  port.BookRepository
	logger *slog.Logger
}

// NewCartUseCase creates a new CartUseCase instance
func NewCartUseCase(carts port.CartRepository, books port.BookRepository, logger *slog.Logger) *CartUseCase {
	return &CartUseCase{
		carts:  carts,
		books:  books,
		logger: logger.With("component", "cart_usecase"),
	}
}

// Items returns the user's cart lines with book details
func (uc *CartUseCase) Items(ctx context.Context, userID uuid.UUID) ([]domain.CartItem, error) {
	return uc.carts.ListItems(ctx, userID)
}

// AddItem adds quantity of a book to the user's cart. Adding a book
// already in the cart merges into the existing line.
func (uc *CartUseCase) AddItem(ctx context.Context, userID, bookID uuid.UUID, quantity int) error {
	quantity = domain.ClampQuantity(quantity)

	book, err := uc.books.GetByID(ctx, bookID)
	if err != nil {
		return err
	}
	if !book.InStock(quantity) {
		return domain.ErrOutOfStock
	}

	return uc.carts.UpsertLine(ctx, userID, bookID, quantity)
}

// UpdateQuantity sets a cart line's quantity, clamped to the floor
func (uc *CartUseCase) UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) error {
	return uc.carts.SetQuantity(ctx, userID, lineID, domain.ClampQuantity(quantity))
}

// RemoveItem deletes one line from the user's cart
func (uc *CartUseCase) RemoveItem(ctx context.Context, userID, lineID uuid.UUID) error {
	return uc.carts.DeleteLine(ctx, userID, lineID)
}

// Clear empties the user's cart
func (uc *CartUseCase) Clear(ctx context.Context, userID uuid.UUID) error {
	return uc.carts.Clear(ctx, userID)
}

package port

//go:generate mockgen -source=cart_port.go -destination=../mocks/mock_cart_port.go

import (
	"context"

	"github.com/google/uuid"

	"bookbazaar/app/domain"
)

// CartUsecase defines cart business logic interface
type CartUsecase interface {
	Items(ctx context.Context, userID uuid.UUID) ([]domain.CartItem, error)
	AddItem(ctx context.Context, userID, bookID uuid.UUID, quantity int) error
	UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, userID, lineID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

// CartRepository defines cart data access interface
type CartRepository interface {
	ListItems(ctx context.Context, userID uuid.UUID) ([]domain.CartItem, error)
	UpsertLine(ctx context.Context, userID, bookID uuid.UUID, quantity int) error
	SetQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) error
	DeleteLine(ctx context.Context, userID, lineID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

package port

//go:generate mockgen -source=order_port.go -destination=../mocks/mock_order_port.go

import (
	"context"

	"github.com/google/uuid"

	"bookbazaar/app/domain"
)

// OrderUsecase defines order business logic interface
type OrderUsecase interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, items []domain.OrderRequestItem) (*domain.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
}

// OrderRepository defines order data access interface
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
}

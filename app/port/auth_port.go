package port

//go:generate mockgen -source=auth_port.go -destination=../mocks/mock_auth_port.go

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bookbazaar/app/domain"
)

// AuthUsecase defines authentication business logic interface
type AuthUsecase interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GenerateAPIKey(ctx context.Context, userID uuid.UUID) (string, error)
	UserByAPIKey(ctx context.Context, apiKey string) (*domain.User, error)
}

// UserRepository defines user data access interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.User, error)
	SetAPIKey(ctx context.Context, userID uuid.UUID, apiKey string) error
	RecordLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}

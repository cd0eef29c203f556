// Package port defines the interfaces the client-side stores depend on.
package port

//go:generate mockgen -source=port.go -destination=../mocks/mock_port.go -package=mocks

import (
	"context"

	"bookbazaar/app/domain"
)

// AuthAPI is the remote authentication surface consumed by the session
// manager.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, username, email, password string) (string, error)
	Me(ctx context.Context, token string) (*domain.Identity, error)
	GenerateAPIKey(ctx context.Context, token string) (string, error)
}

// CartAPI is the remote cart surface consumed by the cart synchronizer.
type CartAPI interface {
	FetchCart(ctx context.Context, token string) ([]domain.CartItem, error)
	AddItem(ctx context.Context, token, bookID string, quantity int) error
	UpdateItem(ctx context.Context, token, itemID string, quantity int) error
	RemoveItem(ctx context.Context, token, itemID string) error
}

// CredentialStore persists session credentials across process restarts.
// Get returns an empty string, not an error, when the entry is absent.
type CredentialStore interface {
	Get(ctx context.Context, name string) (string, error)
	Set(ctx context.Context, name, value string) error
	Delete(ctx context.Context, name string) error
	Close() error
}

// Notifier surfaces short-lived user-facing notifications.
type Notifier interface {
	Success(title, description string)
	Error(title, description string)
}

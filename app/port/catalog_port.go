package port

//go:generate mockgen -source=catalog_port.go -destination=../mocks/mock_catalog_port.go

import (
	"context"

	"github.com/google/uuid"

	"bookbazaar/app/domain"
)

// CatalogUsecase defines catalog business logic interface
type CatalogUsecase interface {
	ListBooks(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error)
	GetBook(ctx context.Context, bookID uuid.UUID) (*domain.Book, error)
	CreateBook(ctx context.Context, input domain.BookInput) (*domain.Book, error)
	UpdateBook(ctx context.Context, bookID uuid.UUID, input domain.BookInput) (*domain.Book, error)
	DeleteBook(ctx context.Context, bookID uuid.UUID) error
}

// BookRepository defines book data access interface
type BookRepository interface {
	List(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error)
	GetByID(ctx context.Context, bookID uuid.UUID) (*domain.Book, error)
	Create(ctx context.Context, book *domain.Book) error
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, bookID uuid.UUID) error
}

// CatalogCache defines the read-through cache for catalog listings.
// A miss is (nil, false, nil); cache failures are reported but callers
// treat them as misses.
type CatalogCache interface {
	GetBooks(ctx context.Context, key string) ([]domain.Book, bool, error)
	SetBooks(ctx context.Context, key string, books []domain.Book) error
	InvalidateBooks(ctx context.Context) error
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"bookbazaar/app/domain"
	"bookbazaar/app/port"
)

// CatalogUseCase implements catalog business logic with a read-through
// listing cache. Cache failures never fail a request; the repository is
// the source of truth.
type CatalogUseCase struct {
	books  port.BookRepository
	cache  port.CatalogCache
	logger *slog.Logger
}

// NewCatalogUseCase creates a new CatalogUseCase instance. Cache may be
// nil when caching is disabled.
func NewCatalogUseCase(books port.BookRepository, cache port.CatalogCache, logger *slog.Logger) *CatalogUseCase {
	return &CatalogUseCase{
		books:  books,
		cache:  cache,
		logger: logger.With("component", "catalog_usecase"),
	}
}

// ListBooks returns books matching the filter, served from cache when
// possible.
func (uc *CatalogUseCase) ListBooks(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error) {
	key := cacheKey(filter)

	if uc.cache != nil {
		books, hit, err := uc.cache.GetBooks(ctx, key)
		if err != nil {
			uc.logger.Warn("cache read failed", "key", key, "error", err)
		} else if hit {
			return books, nil
		}
	}

	books, err := uc.books.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetBooks(ctx, key, books); err != nil {
			uc.logger.Warn("cache write failed", "key", key, "error", err)
		}
	}
	return books, nil
}

// GetBook returns one book by id
func (uc *CatalogUseCase) GetBook(ctx context.Context, bookID uuid.UUID) (*domain.Book, error) {
	return uc.books.GetByID(ctx, bookID)
}

// CreateBook adds a book to the catalog
func (uc *CatalogUseCase) CreateBook(ctx context.Context, input domain.BookInput) (*domain.Book, error) {
	book, err := domain.NewBook(input.Title, input.Author, input.Genre, input.Price, input.Stock)
	if err != nil {
		return nil, err
	}
	book.Description = input.Description
	book.ImageURL = input.ImageURL

	if err := uc.books.Create(ctx, book); err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	return book, nil
}

// UpdateBook replaces the writable fields of a book
func (uc *CatalogUseCase) UpdateBook(ctx context.Context, bookID uuid.UUID, input domain.BookInput) (*domain.Book, error) {
	book, err := uc.books.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	book.Title = input.Title
	book.Author = input.Author
	book.Genre = input.Genre
	book.Description = input.Description
	book.Price = input.Price
	book.Stock = input.Stock
	book.ImageURL = input.ImageURL
	book.UpdatedAt = time.Now()

	if err := uc.books.Update(ctx, book); err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	return book, nil
}

// DeleteBook removes a book from the catalog
func (uc *CatalogUseCase) DeleteBook(ctx context.Context, bookID uuid.UUID) error {
	if err := uc.books.Delete(ctx, bookID); err != nil {
		return err
	}

	uc.invalidate(ctx)
	return nil
}

func (uc *CatalogUseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.InvalidateBooks(ctx); err != nil {
		uc.logger.Warn("cache invalidation failed", "error", err)
	}
}

// cacheKey derives a stable cache key from the filter fields
func cacheKey(filter domain.BookFilter) string {
	if filter.IsEmpty() {
		return "all"
	}
	return fmt.Sprintf("s=%s&g=%s&min=%g&max=%g",
		filter.Search, filter.Genre, filter.MinPrice, filter.MaxPrice)
}

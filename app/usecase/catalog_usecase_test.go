package usecase

import (
	"context"
	"testing"

	"bookbazaar/app/domain"
	mock_port "bookbazaar/app/mocks"
	"bookbazaar/app/utils/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newCatalogUsecase(t *testing.T) (*CatalogUseCase, *mock_port.MockBookRepository, *mock_port.MockCatalogCache) {
	t.Helper()
	ctrl := gomock.NewController(t)

	books := mock_port.NewMockBookRepository(ctrl)
	cache := mock_port.NewMockCatalogCache(ctrl)

	testLogger, err := logger.New("debug")
	require.NoError(t, err)

	return NewCatalogUseCase(books, cache, testLogger), books, cache
}

func catalogBook(t *testing.T) *domain.Book {
	t.Helper()

	book, err := domain.NewBook("Dune", "Frank Herbert", "Sci-Fi", 9.99, 12)
	require.NoError(t, err)
	return book
}

func TestCatalogUsecase_ListBooks(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the repository", func(t *testing.T) {
		uc, _, cache := newCatalogUsecase(t)
		cached := []domain.Book{*catalogBook(t)}

		cache.EXPECT().GetBooks(gomock.Any(), "all").Return(cached, true, nil)

		books, err := uc.ListBooks(ctx, domain.BookFilter{})
		require.NoError(t, err)
		assert.Equal(t, cached, books)
	})

	t.Run("cache miss fills the cache from the repository", func(t *testing.T) {
		uc, books, cache := newCatalogUsecase(t)
		listed := []domain.Book{*catalogBook(t)}

		cache.EXPECT().GetBooks(gomock.Any(), "all").Return(nil, false, nil)
		books.EXPECT().List(gomock.Any(), domain.BookFilter{}).Return(listed, nil)
		cache.EXPECT().SetBooks(gomock.Any(), "all", listed).Return(nil)

		got, err := uc.ListBooks(ctx, domain.BookFilter{})
		require.NoError(t, err)
		assert.Equal(t, listed, got)
	})

	t.Run("cache failure degrades to the repository", func(t *testing.T) {
		uc, books, cache := newCatalogUsecase(t)
		listed := []domain.Book{*catalogBook(t)}

		cache.EXPECT().GetBooks(gomock.Any(), "all").Return(nil, false, assert.AnError)
		books.EXPECT().List(gomock.Any(), domain.BookFilter{}).Return(listed, nil)
		cache.EXPECT().SetBooks(gomock.Any(), "all", listed).Return(assert.AnError)

		got, err := uc.ListBooks(ctx, domain.BookFilter{})
		require.NoError(t, err)
		assert.Equal(t, listed, got)
	})

	t.Run("filters get their own cache key", func(t *testing.T) {
		uc, books, cache := newCatalogUsecase(t)
		filter := domain.BookFilter{Genre: "Sci-Fi", MaxPrice: 20}

		cache.EXPECT().GetBooks(gomock.Any(), cacheKey(filter)).Return(nil, false, nil)
		books.EXPECT().List(gomock.Any(), filter).Return(nil, nil)
		cache.EXPECT().SetBooks(gomock.Any(), cacheKey(filter), gomock.Any()).Return(nil)

		_, err := uc.ListBooks(ctx, filter)
		require.NoError(t, err)
		assert.NotEqual(t, "all", cacheKey(filter))
	})

	t.Run("nil cache goes straight to the repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		books := mock_port.NewMockBookRepository(ctrl)
		testLogger, err := logger.New("debug")
		require.NoError(t, err)
		uc := NewCatalogUseCase(books, nil, testLogger)

		books.EXPECT().List(gomock.Any(), domain.BookFilter{}).Return(nil, nil)

		_, err = uc.ListBooks(ctx, domain.BookFilter{})
		assert.NoError(t, err)
	})
}

func TestCatalogUsecase_CreateBook(t *testing.T) {
	ctx := context.Background()
	uc, books, cache := newCatalogUsecase(t)

	input := domain.BookInput{
		Title: "Dune", Author: "Frank Herbert", Genre: "Sci-Fi",
		Description: "A classic", Price: 9.99, Stock: 12, ImageURL: "https://img.example/dune.jpg",
	}

	books.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	cache.EXPECT().InvalidateBooks(gomock.Any()).Return(nil)

	book, err := uc.CreateBook(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "A classic", book.Description)
	assert.Equal(t, "https://img.example/dune.jpg", book.ImageURL)
}

func TestCatalogUsecase_UpdateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("updates fields and invalidates the cache", func(t *testing.T) {
		uc, books, cache := newCatalogUsecase(t)
		existing := catalogBook(t)

		books.EXPECT().GetByID(gomock.Any(), existing.ID).Return(existing, nil)
		books.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		cache.EXPECT().InvalidateBooks(gomock.Any()).Return(nil)

		updated, err := uc.UpdateBook(ctx, existing.ID, domain.BookInput{
			Title: "Dune Messiah", Author: "Frank Herbert", Genre: "Sci-Fi", Price: 11.99, Stock: 7,
		})
		require.NoError(t, err)
		assert.Equal(t, "Dune Messiah", updated.Title)
		assert.Equal(t, 7, updated.Stock)
	})

	t.Run("unknown book surfaces ErrNotFound", func(t *testing.T) {
		uc, books, _ := newCatalogUsecase(t)
		bookID := uuid.New()

		books.EXPECT().GetByID(gomock.Any(), bookID).Return(nil, domain.ErrNotFound)

		_, err := uc.UpdateBook(ctx, bookID, domain.BookInput{Title: "x", Author: "y"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCatalogUsecase_DeleteBook(t *testing.T) {
	ctx := context.Background()
	uc, books, cache := newCatalogUsecase(t)
	bookID := uuid.New()

	books.EXPECT().Delete(gomock.Any(), bookID).Return(nil)
	cache.EXPECT().InvalidateBooks(gomock.Any()).Return(nil)

	assert.NoError(t, uc.DeleteBook(ctx, bookID))
}

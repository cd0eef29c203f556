package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookbazaar/app/domain"
	"bookbazaar/app/utils/logger"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	testLogger, err := logger.New("debug")
	require.NoError(t, err)

	return NewWithClient(client, 5*time.Minute, testLogger), mr
}

func sampleBooks(t *testing.T) []domain.Book {
	t.Helper()

	book, err := domain.NewBook("Dune", "Frank Herbert", "Sci-Fi", 9.99, 12)
	require.NoError(t, err)
	return []domain.Book{*book}
}

func TestCache_RoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	err := cache.SetBooks(ctx, "all", sampleBooks(t))
	require.NoError(t, err)

	books, hit, err := cache.GetBooks(ctx, "all")
	require.NoError(t, err)
	assert.True(t, hit)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
}

func TestCache_Miss(t *testing.T) {
	cache, _ := newTestCache(t)

	books, hit, err := cache.GetBooks(context.Background(), "all")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, books)
}

func TestCache_CorruptEntryBehavesLikeMiss(t *testing.T) {
	cache, mr := newTestCache(t)

	mr.Set(keyPrefix+"all", "not json")

	_, hit, err := cache.GetBooks(context.Background(), "all")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCache_EntryExpires(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetBooks(ctx, "all", sampleBooks(t)))

	mr.FastForward(6 * time.Minute)

	_, hit, err := cache.GetBooks(ctx, "all")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCache_InvalidateBooks(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetBooks(ctx, "all", sampleBooks(t)))
	require.NoError(t, cache.SetBooks(ctx, "genre=Sci-Fi", sampleBooks(t)))

	require.NoError(t, cache.InvalidateBooks(ctx))

	_, hit, err := cache.GetBooks(ctx, "all")
	require.NoError(t, err)
	assert.False(t, hit)

	// Invalidating an empty cache is fine
	assert.NoError(t, cache.InvalidateBooks(ctx))
}

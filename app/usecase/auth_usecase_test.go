package usecase

import (
	"context"
	"testing"
	"time"

	"bookbazaar/app/domain"
	mock_port "bookbazaar/app/mocks"
	"bookbazaar/app/utils/logger"
	"bookbazaar/app/utils/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newAuthUsecase(t *testing.T, adminEmail string) (*AuthUseCase, *mock_port.MockUserRepository, *security.TokenIssuer) {
	t.Helper()
	ctrl := gomock.NewController(t)

	users := mock_port.NewMockUserRepository(ctrl)

	tokens, err := security.NewTokenIssuer("test-secret-0123456789", "bookbazaar-test", time.Hour)
	require.NoError(t, err)

	testLogger, err := logger.New("debug")
	require.NoError(t, err)

	return NewAuthUseCase(users, tokens, adminEmail, testLogger), users, tokens
}

func storedUser(t *testing.T, password string) *domain.User {
	t.Helper()

	hash, err := security.HashPassword(password)
	require.NoError(t, err)

	user, err := domain.NewUser("reader", "reader@example.com", hash)
	require.NoError(t, err)
	return user
}

func TestAuthUsecase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the user and issues a verifiable token", func(t *testing.T) {
		uc, users, tokens := newAuthUsecase(t, "")

		var created *domain.User
		users.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *domain.User) error {
				created = u
				return nil
			})

		token, err := uc.Register(ctx, "reader", "reader@example.com", "secretpass")
		require.NoError(t, err)

		require.NotNil(t, created)
		assert.False(t, created.IsAdmin)
		assert.NotEqual(t, "secretpass", created.PasswordHash)

		claims, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, created.ID.String(), claims.Subject)
		assert.Equal(t, "reader", claims.Username)
	})

	t.Run("the configured admin email gets admin rights", func(t *testing.T) {
		uc, users, _ := newAuthUsecase(t, "admin@example.com")

		var created *domain.User
		users.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *domain.User) error {
				created = u
				return nil
			})

		_, err := uc.Register(ctx, "boss", "Admin@Example.com", "secretpass")
		require.NoError(t, err)
		assert.True(t, created.IsAdmin)
	})

	t.Run("duplicate account surfaces ErrUserExists", func(t *testing.T) {
		uc, users, _ := newAuthUsecase(t, "")

		users.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(domain.ErrUserExists)

		_, err := uc.Register(ctx, "reader", "reader@example.com", "secretpass")
		assert.ErrorIs(t, err, domain.ErrUserExists)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a token and record the login", func(t *testing.T) {
		uc, users, tokens := newAuthUsecase(t, "")
		user := storedUser(t, "secretpass")

		users.EXPECT().GetByEmail(gomock.Any(), "reader@example.com").Return(user, nil)
		users.EXPECT().RecordLogin(gomock.Any(), user.ID, gomock.Any()).Return(nil)

		token, err := uc.Login(ctx, "reader@example.com", "secretpass")
		require.NoError(t, err)

		claims, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.Subject)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		uc, users, _ := newAuthUsecase(t, "")
		user := storedUser(t, "secretpass")

		users.EXPECT().GetByEmail(gomock.Any(), "reader@example.com").Return(user, nil)

		_, err := uc.Login(ctx, "reader@example.com", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown account looks the same as a wrong password", func(t *testing.T) {
		uc, users, _ := newAuthUsecase(t, "")

		users.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, domain.ErrNotFound)

		_, err := uc.Login(ctx, "nobody@example.com", "secretpass")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestAuthUsecase_GenerateAPIKey(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and returns a fresh key", func(t *testing.T) {
		uc, users, _ := newAuthUsecase(t, "")
		user := storedUser(t, "secretpass")

		var stored string
		users.EXPECT().
			SetAPIKey(gomock.Any(), user.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ interface{}, key string) error {
				stored = key
				return nil
			})

		key, err := uc.GenerateAPIKey(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, stored, key)
		assert.True(t, len(key) > 10)
		assert.Contains(t, key, "bzk_")
	})

	t.Run("store failure surfaces and issues nothing", func(t *testing.T) {
		uc, users, _ := newAuthUsecase(t, "")
		user := storedUser(t, "secretpass")

		users.EXPECT().
			SetAPIKey(gomock.Any(), user.ID, gomock.Any()).
			Return(domain.ErrNotFound)

		_, err := uc.GenerateAPIKey(ctx, user.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAuthUsecase_UserByAPIKey(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves the key owner", func(t *testing.T) {
		uc, users, _ := newAuthUsecase(t, "")
		user := storedUser(t, "secretpass")

		users.EXPECT().GetByAPIKey(gomock.Any(), "bzk_abc").Return(user, nil)

		got, err := uc.UserByAPIKey(ctx, "bzk_abc")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("empty key is rejected without a lookup", func(t *testing.T) {
		uc, _, _ := newAuthUsecase(t, "")

		_, err := uc.UserByAPIKey(ctx, "")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

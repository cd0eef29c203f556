package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bookbazaar/app/domain"
	mock_port "bookbazaar/app/mocks"
	"bookbazaar/app/utils/security"
)

func newTestMiddleware(t *testing.T, authUsecase *mock_port.MockAuthUsecase) (*AuthMiddleware, *security.TokenIssuer) {
	t.Helper()

	tokens, err := security.NewTokenIssuer("test-secret-0123456789", "bookbazaar-test", time.Hour)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewAuthMiddleware(tokens, authUsecase, logger), tokens
}

func runMiddleware(mw echo.MiddlewareFunc, req *http.Request) (echo.Context, *httptest.ResponseRecorder, error) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	var passed echo.Context
	err := mw(func(inner echo.Context) error {
		passed = inner
		return inner.NoContent(http.StatusOK)
	})(c)

	if passed != nil {
		c = passed
	}
	return c, rec, err
}

func TestRequireAuthValidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mw, tokens := newTestMiddleware(t, mock_port.NewMockAuthUsecase(ctrl))

	userID := uuid.New()
	token, err := tokens.Issue(userID.String(), "reader", "reader@example.com", true)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	c, rec, err := runMiddleware(mw.RequireAuth(), req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	user := CurrentUser(c)
	require.NotNil(t, user)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "reader", user.Username)
	assert.True(t, user.IsAdmin)
}

func TestRequireAuthRejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not a bearer scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "garbage token", header: "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mw, _ := newTestMiddleware(t, mock_port.NewMockAuthUsecase(ctrl))

			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}

			_, _, err := runMiddleware(mw.RequireAuth(), req)

			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
		})
	}
}

func TestRequireAuthRejectsTokenFromOtherSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mw, _ := newTestMiddleware(t, mock_port.NewMockAuthUsecase(ctrl))

	otherIssuer, err := security.NewTokenIssuer("different-secret-9876543210", "bookbazaar-test", time.Hour)
	require.NoError(t, err)
	token, err := otherIssuer.Issue(uuid.New().String(), "reader", "reader@example.com", false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	_, _, err = runMiddleware(mw.RequireAuth(), req)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name         string
		user         *domain.User
		expectedCode int
	}{
		{name: "admin passes", user: &domain.User{ID: uuid.New(), IsAdmin: true}, expectedCode: http.StatusOK},
		{name: "regular user forbidden", user: &domain.User{ID: uuid.New()}, expectedCode: http.StatusForbidden},
		{name: "anonymous unauthorized", user: nil, expectedCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mw, _ := newTestMiddleware(t, mock_port.NewMockAuthUsecase(ctrl))

			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/books", nil), rec)
			if tt.user != nil {
				c.Set(ContextKeyUser, tt.user)
			}

			err := mw.RequireAdmin()(func(inner echo.Context) error {
				return inner.NoContent(http.StatusOK)
			})(c)

			if tt.expectedCode == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
				return
			}

			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.expectedCode, httpErr.Code)
		})
	}
}

func TestOptionalAPIKey(t *testing.T) {
	t.Run("missing header passes anonymously", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mw, _ := newTestMiddleware(t, mock_port.NewMockAuthUsecase(ctrl))

		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		c, rec, err := runMiddleware(mw.OptionalAPIKey(), req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, CurrentUser(c))
	})

	t.Run("valid key resolves the owner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		owner := &domain.User{ID: uuid.New(), Username: "reader"}
		mockAuthUsecase := mock_port.NewMockAuthUsecase(ctrl)
		mockAuthUsecase.EXPECT().UserByAPIKey(gomock.Any(), "bzk_valid").Return(owner, nil)

		mw, _ := newTestMiddleware(t, mockAuthUsecase)

		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		req.Header.Set("X-API-Key", "bzk_valid")
		c, _, err := runMiddleware(mw.OptionalAPIKey(), req)

		require.NoError(t, err)
		assert.Equal(t, owner, CurrentUser(c))
	})

	t.Run("revoked key is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockAuthUsecase := mock_port.NewMockAuthUsecase(ctrl)
		mockAuthUsecase.EXPECT().UserByAPIKey(gomock.Any(), "bzk_stale").Return(nil, domain.ErrUnauthorized)

		mw, _ := newTestMiddleware(t, mockAuthUsecase)

		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		req.Header.Set("X-API-Key", "bzk_stale")
		_, _, err := runMiddleware(mw.OptionalAPIKey(), req)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}

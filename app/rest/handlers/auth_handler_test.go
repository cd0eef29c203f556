package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bookbazaar/app/domain"
	mock_port "bookbazaar/app/mocks"
	"bookbazaar/app/rest/middleware"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestAuthHandlerRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockSetup      func(m *mock_port.MockAuthUsecase)
		expectedStatus int
		expectedBody   func(*testing.T, []byte)
	}{
		{
			name: "valid registration returns token",
			body: `{"username":"reader","email":"reader@example.com","password":"Sup3rSecret!"}`,
			mockSetup: func(m *mock_port.MockAuthUsecase) {
				m.EXPECT().
					Register(gomock.Any(), "reader", "reader@example.com", "Sup3rSecret!").
					Return("issued-token", nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody: func(t *testing.T, body []byte) {
				var v tokenResponse
				require.NoError(t, json.Unmarshal(body, &v))
				assert.Equal(t, "issued-token", v.Token)
			},
		},
		{
			name: "duplicate email returns conflict",
			body: `{"username":"reader","email":"reader@example.com","password":"Sup3rSecret!"}`,
			mockSetup: func(m *mock_port.MockAuthUsecase) {
				m.EXPECT().
					Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", domain.ErrUserExists)
			},
			expectedStatus: http.StatusConflict,
			expectedBody: func(t *testing.T, body []byte) {
				var v ErrorResponse
				require.NoError(t, json.Unmarshal(body, &v))
				assert.NotEmpty(t, v.Message)
			},
		},
		{
			name:           "malformed email rejected before usecase",
			body:           `{"username":"reader","email":"not-an-email","password":"Sup3rSecret!"}`,
			mockSetup:      func(m *mock_port.MockAuthUsecase) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody: func(t *testing.T, body []byte) {
				var v ErrorResponse
				require.NoError(t, json.Unmarshal(body, &v))
				assert.NotEmpty(t, v.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAuthUsecase := mock_port.NewMockAuthUsecase(ctrl)
			tt.mockSetup(mockAuthUsecase)

			handler := NewAuthHandler(mockAuthUsecase, testLogger())
			c, rec := newJSONContext(http.MethodPost, "/auth/register", tt.body)

			require.NoError(t, handler.Register(c))
			require.Equal(t, tt.expectedStatus, rec.Code)
			tt.expectedBody(t, rec.Body.Bytes())
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		mockSetup       func(m *mock_port.MockAuthUsecase)
		expectedStatus  int
		expectedMessage string
	}{
		{
			name: "valid credentials return token",
			body: `{"email":"reader@example.com","password":"Sup3rSecret!"}`,
			mockSetup: func(m *mock_port.MockAuthUsecase) {
				m.EXPECT().
					Login(gomock.Any(), "reader@example.com", "Sup3rSecret!").
					Return("issued-token", nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "wrong password returns generic message",
			body: `{"email":"reader@example.com","password":"wrong"}`,
			mockSetup: func(m *mock_port.MockAuthUsecase) {
				m.EXPECT().
					Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", domain.ErrInvalidCredentials)
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid email or password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAuthUsecase := mock_port.NewMockAuthUsecase(ctrl)
			tt.mockSetup(mockAuthUsecase)

			handler := NewAuthHandler(mockAuthUsecase, testLogger())
			c, rec := newJSONContext(http.MethodPost, "/auth/login", tt.body)

			require.NoError(t, handler.Login(c))
			require.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedMessage != "" {
				var v ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
				assert.Equal(t, tt.expectedMessage, v.Message)
			}
		})
	}
}

func TestAuthHandlerMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	current := &domain.User{ID: userID, Username: "reader", Email: "reader@example.com"}

	mockAuthUsecase := mock_port.NewMockAuthUsecase(ctrl)
	mockAuthUsecase.EXPECT().
		Me(gomock.Any(), userID).
		Return(&domain.User{ID: userID, Username: "reader", Email: "reader@example.com", IsAdmin: true}, nil)

	handler := NewAuthHandler(mockAuthUsecase, testLogger())
	c, rec := newJSONContext(http.MethodGet, "/auth/me", "")
	c.Set(middleware.ContextKeyUser, current)

	require.NoError(t, handler.Me(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var identity domain.Identity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &identity))
	assert.Equal(t, userID.String(), identity.ID)
	assert.Equal(t, "reader", identity.Username)
	assert.True(t, identity.IsAdmin, "identity reflects storage, not the token claims")
}

func TestAuthHandlerMeWithoutUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewAuthHandler(mock_port.NewMockAuthUsecase(ctrl), testLogger())
	c, rec := newJSONContext(http.MethodGet, "/auth/me", "")

	require.NoError(t, handler.Me(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlerGenerateAPIKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	mockAuthUsecase := mock_port.NewMockAuthUsecase(ctrl)
	mockAuthUsecase.EXPECT().
		GenerateAPIKey(gomock.Any(), userID).
		Return("bzk_0123456789abcdef", nil)

	handler := NewAuthHandler(mockAuthUsecase, testLogger())
	c, rec := newJSONContext(http.MethodPost, "/auth/api-key", "")
	c.Set(middleware.ContextKeyUser, &domain.User{ID: userID})

	require.NoError(t, handler.GenerateAPIKey(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var v apiKeyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "bzk_0123456789abcdef", v.APIKey)
}

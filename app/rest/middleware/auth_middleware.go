package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bookbazaar/app/domain"
	"bookbazaar/app/port"
	"bookbazaar/app/utils/security"
)

// Context keys set by the auth middleware
const (
	ContextKeyUser = "user"
)

// AuthMiddleware provides token and API key authentication
type AuthMiddleware struct {
	tokens      *security.TokenIssuer
	authUsecase port.AuthUsecase
	logger      *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokens *security.TokenIssuer, authUsecase port.AuthUsecase, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:      tokens,
		authUsecase: authUsecase,
		logger:      logger,
	}
}

// RequireAuth rejects requests without a valid bearer token. The
// authenticated user is placed in the request context.
func (m *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearerToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			claims, err := m.tokens.Verify(token)
			if err != nil {
				m.logger.Debug("token verification failed", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ContextKeyUser, &domain.User{
				ID:       userID,
				Username: claims.Username,
				Email:    claims.Email,
				IsAdmin:  claims.IsAdmin,
			})

			return next(c)
		}
	}
}

// RequireAdmin rejects authenticated users without admin rights. It
// must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if !user.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}

// OptionalAPIKey resolves an X-API-Key header when present. A missing
// header passes through anonymously; a bad key is rejected so callers
// learn their key has been rotated.
func (m *AuthMiddleware) OptionalAPIKey() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			apiKey := c.Request().Header.Get("X-API-Key")
			if apiKey == "" {
				return next(c)
			}

			user, err := m.authUsecase.UserByAPIKey(c.Request().Context(), apiKey)
			if err != nil {
				m.logger.Debug("api key lookup failed", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid API key")
			}

			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user, or nil when anonymous
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(ContextKeyUser).(*domain.User)
	return user
}

func extractBearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"bookbazaar/app/domain"
	"bookbazaar/app/port"
	"bookbazaar/app/rest/middleware"
	"bookbazaar/app/utils/validator"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authUsecase port.AuthUsecase
	validator   *validator.Validator
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase port.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator.New(),
		logger:      logger,
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type apiKeyResponse struct {
	APIKey string `json:"apiKey"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validator.Validate(req); err != nil {
		return badRequest(c, err.Error())
	}

	token, err := h.authUsecase.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, tokenResponse{Token: token})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validator.Validate(req); err != nil {
		return badRequest(c, err.Error())
	}

	token, err := h.authUsecase.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Me handles GET /auth/me. The reply is the identity behind the token,
// re-read from storage so admin changes take effect without re-login.
func (h *AuthHandler) Me(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return writeError(c, h.logger, domain.ErrUnauthorized)
	}

	fresh, err := h.authUsecase.Me(c.Request().Context(), user.ID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, domain.Identity{
		ID:       fresh.ID.String(),
		Username: fresh.Username,
		Email:    fresh.Email,
		IsAdmin:  fresh.IsAdmin,
	})
}

// GenerateAPIKey handles POST /auth/api-key
func (h *AuthHandler) GenerateAPIKey(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return writeError(c, h.logger, domain.ErrUnauthorized)
	}

	key, err := h.authUsecase.GenerateAPIKey(c.Request().Context(), user.ID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, apiKeyResponse{APIKey: key})
}

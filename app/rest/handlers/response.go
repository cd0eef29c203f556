package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"bookbazaar/app/domain"
	apperrors "bookbazaar/app/utils/errors"
)

// ErrorResponse is the JSON body of every error reply. Clients read the
// message field for user-facing text.
type ErrorResponse struct {
	Message string `json:"message"`
}

// writeError maps an error to its HTTP reply. Domain sentinels carry
// fixed texts; AppErrors carry their own message and status; anything
// else is an opaque 500.
func writeError(c echo.Context, logger *slog.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Message: "Not found"})
	case errors.Is(err, domain.ErrUserExists):
		return c.JSON(http.StatusConflict, ErrorResponse{Message: "An account with this email or username already exists"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid email or password"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication required"})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Message: "You are not allowed to do that"})
	case errors.Is(err, domain.ErrOutOfStock):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Not enough stock available"})
	}

	if appErr, ok := apperrors.AsAppError(err); ok {
		return c.JSON(appErr.StatusCode, ErrorResponse{Message: appErr.Message})
	}

	logger.Error("request failed", "error", err, "path", c.Path())
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Message: message})
}

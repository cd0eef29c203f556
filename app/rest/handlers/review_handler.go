package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bookbazaar/app/domain"
	"bookbazaar/app/port"
	"bookbazaar/app/rest/middleware"
)

// ReviewHandler handles review HTTP requests
type ReviewHandler struct {
	reviewUsecase port.ReviewUsecase
	logger        *slog.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewUsecase port.ReviewUsecase, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewUsecase: reviewUsecase,
		logger:        logger,
	}
}

type createReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ListByBook handles GET /books/:id/reviews
func (h *ReviewHandler) ListByBook(c echo.Context) error {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid book id")
	}

	reviews, err := h.reviewUsecase.ListByBook(c.Request().Context(), bookID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return c.JSON(http.StatusOK, reviews)
}

// Create handles POST /books/:id/reviews
func (h *ReviewHandler) Create(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return writeError(c, h.logger, domain.ErrUnauthorized)
	}

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid book id")
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return badRequest(c, "Rating must be between 1 and 5")
	}

	review, err := h.reviewUsecase.Create(c.Request().Context(), bookID, user, req.Rating, req.Comment)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, review)
}

// Delete handles DELETE /reviews/:reviewId
func (h *ReviewHandler) Delete(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return writeError(c, h.logger, domain.ErrUnauthorized)
	}

	reviewID, err := uuid.Parse(c.Param("reviewId"))
	if err != nil {
		return badRequest(c, "Invalid review id")
	}

	if err := h.reviewUsecase.Delete(c.Request().Context(), reviewID, user); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

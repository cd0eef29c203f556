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

// CartHandler handles cart HTTP requests
type CartHandler struct {
	cartUsecase port.CartUsecase
	logger      *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartUsecase port.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		cartUsecase: cartUsecase,
		logger:      logger,
	}
}

type cartResponse struct {
	Items []domain.CartItem `json:"items"`
}

type addCartRequest struct {
	BookID   string `json:"bookId"`
	Quantity int    `json:"quantity"`
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

// Get handles GET /cart
func (h *CartHandler) Get(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return writeError(c, h.logger, domain.ErrUnauthorized)
	}

	return h.respondWithCart(c, user.ID)
}

// Add handles POST /cart
func (h *CartHandler) Add(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return writeError(c, h.logger, domain.ErrUnauthorized)
	}

	var req addCartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		return badRequest(c, "Invalid book id")
	}

	if err := h.cartUsecase.AddItem(c.Request().Context(), user.ID, bookID, req.Quantity); err != nil {
		return writeError(c, h.logger, err)
	}

	return h.respondWithCart(c, user.ID)
}

// Update handles PUT /cart/:itemId
func (h *CartHandler) Update(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return writeError(c, h.logger, domain.ErrUnauthorized)
	}

	lineID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return badRequest(c, "Invalid cart item id")
	}

	var req updateCartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.cartUsecase.UpdateQuantity(c.Request().Context(), user.ID, lineID, req.Quantity); err != nil {
		return writeError(c, h.logger, err)
	}

	return h.respondWithCart(c, user.ID)
}

// Remove handles DELETE /cart/:itemId
func (h *CartHandler) Remove(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return writeError(c, h.logger, domain.ErrUnauthorized)
	}

	lineID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return badRequest(c, "Invalid cart item id")
	}

	if err := h.cartUsecase.RemoveItem(c.Request().Context(), user.ID, lineID); err != nil {
		return writeError(c, h.logger, err)
	}

	return h.respondWithCart(c, user.ID)
}

// respondWithCart replies with the user's full cart so clients can
// mirror server state from any mutation response.
func (h *CartHandler) respondWithCart(c echo.Context, userID uuid.UUID) error {
	items, err := h.cartUsecase.Items(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return c.JSON(http.StatusOK, cartResponse{Items: items})
}

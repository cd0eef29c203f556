package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"bookbazaar/app/domain"
	"bookbazaar/app/port"
	"bookbazaar/app/rest/middleware"
)

// OrderHandler handles order HTTP requests
type OrderHandler struct {
	orderUsecase port.OrderUsecase
	logger       *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderUsecase port.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderUsecase: orderUsecase,
		logger:       logger,
	}
}

type placeOrderRequest struct {
	Items []domain.OrderRequestItem `json:"items"`
}

// Place handles POST /orders
func (h *OrderHandler) Place(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return writeError(c, h.logger, domain.ErrUnauthorized)
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	order, err := h.orderUsecase.PlaceOrder(c.Request().Context(), user.ID, req.Items)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, order)
}

// List handles GET /orders
func (h *OrderHandler) List(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return writeError(c, h.logger, domain.ErrUnauthorized)
	}

	orders, err := h.orderUsecase.ListOrders(c.Request().Context(), user.ID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}

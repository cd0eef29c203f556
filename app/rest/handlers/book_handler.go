package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bookbazaar/app/domain"
	"bookbazaar/app/port"
	"bookbazaar/app/utils/validator"
)

// BookHandler handles catalog HTTP requests
type BookHandler struct {
	catalogUsecase port.CatalogUsecase
	validator      *validator.Validator
	logger         *slog.Logger
}

// NewBookHandler creates a new book handler
func NewBookHandler(catalogUsecase port.CatalogUsecase, logger *slog.Logger) *BookHandler {
	return &BookHandler{
		catalogUsecase: catalogUsecase,
		validator:      validator.New(),
		logger:         logger,
	}
}

// List handles GET /books
func (h *BookHandler) List(c echo.Context) error {
	filter := domain.BookFilter{
		Search: c.QueryParam("search"),
		Genre:  c.QueryParam("genre"),
	}

	if raw := c.QueryParam("minPrice"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return badRequest(c, "minPrice must be a number")
		}
		filter.MinPrice = price
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return badRequest(c, "maxPrice must be a number")
		}
		filter.MaxPrice = price
	}

	books, err := h.catalogUsecase.ListBooks(c.Request().Context(), filter)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	if books == nil {
		books = []domain.Book{}
	}
	return c.JSON(http.StatusOK, books)
}

// Get handles GET /books/:id
func (h *BookHandler) Get(c echo.Context) error {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid book id")
	}

	book, err := h.catalogUsecase.GetBook(c.Request().Context(), bookID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, book)
}

// Create handles POST /books (admin)
func (h *BookHandler) Create(c echo.Context) error {
	var input domain.BookInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validator.Validate(input); err != nil {
		return badRequest(c, err.Error())
	}

	book, err := h.catalogUsecase.CreateBook(c.Request().Context(), input)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, book)
}

// Update handles PUT /books/:id (admin)
func (h *BookHandler) Update(c echo.Context) error {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid book id")
	}

	var input domain.BookInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validator.Validate(input); err != nil {
		return badRequest(c, err.Error())
	}

	book, err := h.catalogUsecase.UpdateBook(c.Request().Context(), bookID, input)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, book)
}

// Delete handles DELETE /books/:id (admin)
func (h *BookHandler) Delete(c echo.Context) error {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid book id")
	}

	if err := h.catalogUsecase.DeleteBook(c.Request().Context(), bookID); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

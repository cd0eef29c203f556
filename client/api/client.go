// Package api provides a typed HTTP client for the BookBazaar REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"bookbazaar/app/domain"
)

// APIError is a rejected request: a response was received with a
// non-success status. Message carries the server's error text when the
// body provided one.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api returned status %d", e.StatusCode)
}

// Client talks to the BookBazaar API over JSON/HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a new API client
func New(baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid API base URL: %s", baseURL)
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type apiKeyResponse struct {
	APIKey string `json:"apiKey"`
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

type placeOrderRequest struct {
	Items []domain.OrderRequestItem `json:"items"`
}

type createReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// BookInput is the payload for admin catalog mutations.
type BookInput struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Genre       string  `json:"genre"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// Login authenticates with email and password and returns a session token
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", auth{}, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register creates an account and returns a session token
func (c *Client) Register(ctx context.Context, username, email, password string) (string, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", auth{}, registerRequest{Username: username, Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Me fetches the identity the token belongs to
func (c *Client) Me(ctx context.Context, token string) (*domain.Identity, error) {
	var identity domain.Identity
	if err := c.do(ctx, http.MethodGet, "/auth/me", auth{token: token}, nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// GenerateAPIKey requests a new API key, replacing any prior key
func (c *Client) GenerateAPIKey(ctx context.Context, token string) (string, error) {
	var resp apiKeyResponse
	if err := c.do(ctx, http.MethodPost, "/auth/api-key", auth{token: token}, nil, &resp); err != nil {
		return "", err
	}
	return resp.APIKey, nil
}

// FetchCart returns the server's current cart line items
func (c *Client) FetchCart(ctx context.Context, token string) ([]domain.CartItem, error) {
	var resp cartResponse
	if err := c.do(ctx, http.MethodGet, "/cart", auth{token: token}, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// AddItem adds quantity units of a book to the cart
func (c *Client) AddItem(ctx context.Context, token, bookID string, quantity int) error {
	return c.do(ctx, http.MethodPost, "/cart", auth{token: token}, addCartRequest{BookID: bookID, Quantity: quantity}, nil)
}

// UpdateItem sets the quantity of an existing cart line item
func (c *Client) UpdateItem(ctx context.Context, token, itemID string, quantity int) error {
	return c.do(ctx, http.MethodPut, "/cart/"+url.PathEscape(itemID), auth{token: token}, updateCartRequest{Quantity: quantity}, nil)
}

// RemoveItem deletes a cart line item
func (c *Client) RemoveItem(ctx context.Context, token, itemID string) error {
	return c.do(ctx, http.MethodDelete, "/cart/"+url.PathEscape(itemID), auth{token: token}, nil, nil)
}

// PlaceOrder places an order for the given items
func (c *Client) PlaceOrder(ctx context.Context, token string, items []domain.OrderRequestItem) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodPost, "/orders", auth{token: token}, placeOrderRequest{Items: items}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns the caller's orders, newest first
func (c *Client) ListOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders", auth{token: token}, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListBooks returns catalog entries matching the filter. Catalog reads
// authenticate with the API key when one is set.
func (c *Client) ListBooks(ctx context.Context, apiKey string, filter domain.BookFilter) ([]domain.Book, error) {
	path := "/books"
	if !filter.IsEmpty() {
		params := url.Values{}
		if filter.Search != "" {
			params.Set("search", filter.Search)
		}
		if filter.Genre != "" {
			params.Set("genre", filter.Genre)
		}
		if filter.MinPrice > 0 {
			params.Set("minPrice", fmt.Sprintf("%g", filter.MinPrice))
		}
		if filter.MaxPrice > 0 {
			params.Set("maxPrice", fmt.Sprintf("%g", filter.MaxPrice))
		}
		path += "?" + params.Encode()
	}

	var books []domain.Book
	if err := c.do(ctx, http.MethodGet, path, auth{apiKey: apiKey}, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// GetBook returns a single catalog entry
func (c *Client) GetBook(ctx context.Context, apiKey, id string) (*domain.Book, error) {
	var book domain.Book
	if err := c.do(ctx, http.MethodGet, "/books/"+url.PathEscape(id), auth{apiKey: apiKey}, nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook adds a catalog entry (admin only)
func (c *Client) CreateBook(ctx context.Context, token string, input BookInput) (*domain.Book, error) {
	var book domain.Book
	if err := c.do(ctx, http.MethodPost, "/books", auth{token: token}, input, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateBook updates a catalog entry (admin only)
func (c *Client) UpdateBook(ctx context.Context, token, id string, input BookInput) (*domain.Book, error) {
	var book domain.Book
	if err := c.do(ctx, http.MethodPut, "/books/"+url.PathEscape(id), auth{token: token}, input, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// DeleteBook removes a catalog entry (admin only)
func (c *Client) DeleteBook(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/books/"+url.PathEscape(id), auth{token: token}, nil, nil)
}

// ListReviews returns the reviews for a book
func (c *Client) ListReviews(ctx context.Context, apiKey, bookID string) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := c.do(ctx, http.MethodGet, "/books/"+url.PathEscape(bookID)+"/reviews", auth{apiKey: apiKey}, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview adds a review for a book
func (c *Client) CreateReview(ctx context.Context, token, bookID string, rating int, comment string) error {
	return c.do(ctx, http.MethodPost, "/books/"+url.PathEscape(bookID)+"/reviews", auth{token: token}, createReviewRequest{Rating: rating, Comment: comment}, nil)
}

// DeleteReview removes the caller's review
func (c *Client) DeleteReview(ctx context.Context, token, reviewID string) error {
	return c.do(ctx, http.MethodDelete, "/reviews/"+url.PathEscape(reviewID), auth{token: token}, nil, nil)
}

// auth selects the authentication header for a request. Token wins when
// both are set.
type auth struct {
	token  string
	apiKey string
}

// do executes one JSON request against the API. A transport-level
// failure comes back as a wrapped error; a non-2xx response comes back
// as *APIError carrying the body's message field when present.
func (c *Client) do(ctx context.Context, method, path string, a auth, reqBody, respBody interface{}) error {
	var bodyReader io.Reader
	if reqBody != nil {
		payload, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	switch {
	case a.token != "":
		req.Header.Set("Authorization", "Bearer "+a.token)
	case a.apiKey != "":
		req.Header.Set("X-API-Key", a.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.errorFromResponse(resp)
	}

	if respBody == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// errorFromResponse builds an APIError from a non-2xx response.
func (c *Client) errorFromResponse(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Message
	}

	if c.logger != nil {
		c.logger.Debug("api request rejected",
			"status", resp.StatusCode,
			"message", apiErr.Message)
	}

	return apiErr
}

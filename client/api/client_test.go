package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookbazaar/app/domain"
)

func TestNew(t *testing.T) {
	t.Run("creates client with valid URL", func(t *testing.T) {
		client, err := New("http://localhost:5000", 5*time.Second, nil)

		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("rejects invalid URL", func(t *testing.T) {
		_, err := New("not a url", 5*time.Second, nil)
		assert.Error(t, err)

		_, err = New("", 5*time.Second, nil)
		assert.Error(t, err)
	})
}

func TestClient_Login(t *testing.T) {
	t.Run("successful login returns token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/login", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "alice@example.com", body["email"])
			assert.Equal(t, "correcthorse", body["password"])

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"token": "session-token"})
		}))
		defer server.Close()

		client, err := New(server.URL, 5*time.Second, nil)
		require.NoError(t, err)

		token, err := client.Login(context.Background(), "alice@example.com", "correcthorse")
		require.NoError(t, err)
		assert.Equal(t, "session-token", token)
	})

	t.Run("rejected login carries server message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
		}))
		defer server.Close()

		client, err := New(server.URL, 5*time.Second, nil)
		require.NoError(t, err)

		_, err = client.Login(context.Background(), "alice@example.com", "wrong")
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, "invalid credentials", apiErr.Message)
	})

	t.Run("network failure is not an APIError", func(t *testing.T) {
		client, err := New("http://127.0.0.1:1", 100*time.Millisecond, nil)
		require.NoError(t, err)

		_, err = client.Login(context.Background(), "alice@example.com", "pw")
		require.Error(t, err)

		var apiErr *APIError
		assert.NotErrorAs(t, err, &apiErr)
	})
}

func TestClient_Me(t *testing.T) {
	t.Run("sends bearer token and decodes identity", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/me", r.URL.Path)
			assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"id":       "user-1",
				"username": "alice",
				"email":    "alice@example.com",
				"isAdmin":  true,
			})
		}))
		defer server.Close()

		client, err := New(server.URL, 5*time.Second, nil)
		require.NoError(t, err)

		identity, err := client.Me(context.Background(), "session-token")
		require.NoError(t, err)
		assert.Equal(t, "user-1", identity.ID)
		assert.Equal(t, "alice", identity.Username)
		assert.True(t, identity.IsAdmin)
	})

	t.Run("401 is an APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client, err := New(server.URL, 5*time.Second, nil)
		require.NoError(t, err)

		_, err = client.Me(context.Background(), "stale-token")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})
}

func TestClient_Cart(t *testing.T) {
	t.Run("fetch cart decodes items envelope", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/cart", r.URL.Path)
			assert.Equal(t, http.MethodGet, r.Method)

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{"id": "li-1", "bookId": "b-1", "title": "Dune", "author": "Herbert", "price": 9.99, "quantity": 2},
				},
			})
		}))
		defer server.Close()

		client, err := New(server.URL, 5*time.Second, nil)
		require.NoError(t, err)

		items, err := client.FetchCart(context.Background(), "session-token")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "li-1", items[0].ID)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("add item posts book id and quantity", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/cart", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "b-1", body["bookId"])
			assert.EqualValues(t, 1, body["quantity"])

			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client, err := New(server.URL, 5*time.Second, nil)
		require.NoError(t, err)

		assert.NoError(t, client.AddItem(context.Background(), "session-token", "b-1", 1))
	})

	t.Run("update and remove target the line item path", func(t *testing.T) {
		var gotPath, gotMethod string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotMethod = r.Method
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client, err := New(server.URL, 5*time.Second, nil)
		require.NoError(t, err)

		require.NoError(t, client.UpdateItem(context.Background(), "tok", "li-9", 3))
		assert.Equal(t, "/cart/li-9", gotPath)
		assert.Equal(t, http.MethodPut, gotMethod)

		require.NoError(t, client.RemoveItem(context.Background(), "tok", "li-9"))
		assert.Equal(t, "/cart/li-9", gotPath)
		assert.Equal(t, http.MethodDelete, gotMethod)
	})
}

func TestClient_ListBooks(t *testing.T) {
	t.Run("sends filter params and api key header", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/books", r.URL.Path)
			assert.Equal(t, "dune", r.URL.Query().Get("search"))
			assert.Equal(t, "scifi", r.URL.Query().Get("genre"))
			assert.Equal(t, "5", r.URL.Query().Get("minPrice"))
			assert.Equal(t, "bzk_abc", r.Header.Get("X-API-Key"))
			assert.Empty(t, r.Header.Get("Authorization"))

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]map[string]any{
				{"id": "11111111-1111-4111-8111-111111111111", "title": "Dune", "author": "Herbert", "genre": "scifi", "price": 9.99, "stock": 3},
			})
		}))
		defer server.Close()

		client, err := New(server.URL, 5*time.Second, nil)
		require.NoError(t, err)

		books, err := client.ListBooks(context.Background(), "bzk_abc", domain.BookFilter{
			Search:   "dune",
			Genre:    "scifi",
			MinPrice: 5,
		})
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Dune", books[0].Title)
	})

	t.Run("no filter means bare path and no auth headers", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/books", r.URL.Path)
			assert.Empty(t, r.URL.RawQuery)
			assert.Empty(t, r.Header.Get("X-API-Key"))

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]map[string]any{})
		}))
		defer server.Close()

		client, err := New(server.URL, 5*time.Second, nil)
		require.NoError(t, err)

		books, err := client.ListBooks(context.Background(), "", domain.BookFilter{})
		require.NoError(t, err)
		assert.Empty(t, books)
	})
}

func TestClient_PlaceOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body struct {
			Items []domain.OrderRequestItem `json:"items"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Items, 1)
		assert.Equal(t, "b-1", body.Items[0].BookID)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "22222222-2222-4222-8222-222222222222",
			"status": "placed",
			"total":  19.98,
		})
	}))
	defer server.Close()

	client, err := New(server.URL, 5*time.Second, nil)
	require.NoError(t, err)

	order, err := client.PlaceOrder(context.Background(), "tok", []domain.OrderRequestItem{
		{BookID: "b-1", Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPlaced, order.Status)
	assert.InDelta(t, 19.98, order.Total, 0.0001)
}

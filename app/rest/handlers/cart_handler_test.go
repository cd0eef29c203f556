package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bookbazaar/app/domain"
	mock_port "bookbazaar/app/mocks"
	"bookbazaar/app/rest/middleware"
)

func cartFixtureItems() []domain.CartItem {
	return []domain.CartItem{
		{ID: uuid.New().String(), BookID: uuid.New().String(), Title: "Dune", Author: "Frank Herbert", Price: 9.99, Quantity: 2},
	}
}

func TestCartHandlerGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	items := cartFixtureItems()

	mockCartUsecase := mock_port.NewMockCartUsecase(ctrl)
	mockCartUsecase.EXPECT().Items(gomock.Any(), userID).Return(items, nil)

	handler := NewCartHandler(mockCartUsecase, testLogger())
	c, rec := newJSONContext(http.MethodGet, "/cart", "")
	c.Set(middleware.ContextKeyUser, &domain.User{ID: userID})

	require.NoError(t, handler.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var v cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	require.Len(t, v.Items, 1)
	assert.Equal(t, "Dune", v.Items[0].Title)
}

func TestCartHandlerGetEmptyCartRepliesWithEmptyArray(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	mockCartUsecase := mock_port.NewMockCartUsecase(ctrl)
	mockCartUsecase.EXPECT().Items(gomock.Any(), userID).Return(nil, nil)

	handler := NewCartHandler(mockCartUsecase, testLogger())
	c, rec := newJSONContext(http.MethodGet, "/cart", "")
	c.Set(middleware.ContextKeyUser, &domain.User{ID: userID})

	require.NoError(t, handler.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
}

func TestCartHandlerAdd(t *testing.T) {
	userID := uuid.New()
	bookID := uuid.New()

	tests := []struct {
		name           string
		body           string
		mockSetup      func(m *mock_port.MockCartUsecase)
		expectedStatus int
	}{
		{
			name: "add replies with full cart",
			body: fmt.Sprintf(`{"bookId":%q,"quantity":2}`, bookID),
			mockSetup: func(m *mock_port.MockCartUsecase) {
				m.EXPECT().AddItem(gomock.Any(), userID, bookID, 2).Return(nil)
				m.EXPECT().Items(gomock.Any(), userID).Return(cartFixtureItems(), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "out of stock returns bad request",
			body: fmt.Sprintf(`{"bookId":%q,"quantity":2}`, bookID),
			mockSetup: func(m *mock_port.MockCartUsecase) {
				m.EXPECT().AddItem(gomock.Any(), userID, bookID, 2).Return(domain.ErrOutOfStock)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed book id rejected",
			body:           `{"bookId":"nope","quantity":2}`,
			mockSetup:      func(m *mock_port.MockCartUsecase) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockCartUsecase := mock_port.NewMockCartUsecase(ctrl)
			tt.mockSetup(mockCartUsecase)

			handler := NewCartHandler(mockCartUsecase, testLogger())
			c, rec := newJSONContext(http.MethodPost, "/cart", tt.body)
			c.Set(middleware.ContextKeyUser, &domain.User{ID: userID})

			require.NoError(t, handler.Add(c))
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestCartHandlerUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	lineID := uuid.New()

	mockCartUsecase := mock_port.NewMockCartUsecase(ctrl)
	mockCartUsecase.EXPECT().UpdateQuantity(gomock.Any(), userID, lineID, 3).Return(nil)
	mockCartUsecase.EXPECT().Items(gomock.Any(), userID).Return(cartFixtureItems(), nil)

	handler := NewCartHandler(mockCartUsecase, testLogger())
	c, rec := newJSONContext(http.MethodPut, "/cart/"+lineID.String(), `{"quantity":3}`)
	c.SetParamNames("itemId")
	c.SetParamValues(lineID.String())
	c.Set(middleware.ContextKeyUser, &domain.User{ID: userID})

	require.NoError(t, handler.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCartHandlerRemove(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	lineID := uuid.New()

	mockCartUsecase := mock_port.NewMockCartUsecase(ctrl)
	mockCartUsecase.EXPECT().RemoveItem(gomock.Any(), userID, lineID).Return(nil)
	mockCartUsecase.EXPECT().Items(gomock.Any(), userID).Return(nil, nil)

	handler := NewCartHandler(mockCartUsecase, testLogger())
	c, rec := newJSONContext(http.MethodDelete, "/cart/"+lineID.String(), "")
	c.SetParamNames("itemId")
	c.SetParamValues(lineID.String())
	c.Set(middleware.ContextKeyUser, &domain.User{ID: userID})

	require.NoError(t, handler.Remove(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
}

func TestCartHandlerRemoveUnknownLine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	lineID := uuid.New()

	mockCartUsecase := mock_port.NewMockCartUsecase(ctrl)
	mockCartUsecase.EXPECT().RemoveItem(gomock.Any(), userID, lineID).Return(domain.ErrNotFound)

	handler := NewCartHandler(mockCartUsecase, testLogger())
	c, rec := newJSONContext(http.MethodDelete, "/cart/"+lineID.String(), "")
	c.SetParamNames("itemId")
	c.SetParamValues(lineID.String())
	c.Set(middleware.ContextKeyUser, &domain.User{ID: userID})

	require.NoError(t, handler.Remove(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

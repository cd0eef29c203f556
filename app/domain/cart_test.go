package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bookbazaar/app/domain"
)

func TestCartItem_Validate(t *testing.T) {
	tests := []struct {
		name    string
		item    domain.CartItem
		wantErr bool
	}{
		{
			name:    "valid item",
			item:    domain.CartItem{ID: "li-1", BookID: "b-1", Title: "Dune", Price: 9.99, Quantity: 2},
			wantErr: false,
		},
		{
			name:    "missing book id",
			item:    domain.CartItem{ID: "li-1", Price: 9.99, Quantity: 1},
			wantErr: true,
		},
		{
			name:    "negative price",
			item:    domain.CartItem{ID: "li-1", BookID: "b-1", Price: -0.01, Quantity: 1},
			wantErr: true,
		},
		{
			name:    "zero quantity",
			item:    domain.CartItem{ID: "li-1", BookID: "b-1", Price: 9.99, Quantity: 0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClampQuantity(t *testing.T) {
	assert.Equal(t, 1, domain.ClampQuantity(0))
	assert.Equal(t, 1, domain.ClampQuantity(-5))
	assert.Equal(t, 1, domain.ClampQuantity(1))
	assert.Equal(t, 7, domain.ClampQuantity(7))
}

func TestCartTotals(t *testing.T) {
	items := []domain.CartItem{
		{ID: "li-1", BookID: "b-1", Price: 10.00, Quantity: 2},
		{ID: "li-2", BookID: "b-2", Price: 5.50, Quantity: 1},
	}

	assert.Equal(t, 3, domain.TotalItems(items))
	assert.InDelta(t, 25.50, domain.TotalPrice(items), 0.0001)
}

func TestCartTotals_Empty(t *testing.T) {
	assert.Equal(t, 0, domain.TotalItems(nil))
	assert.Zero(t, domain.TotalPrice(nil))
}

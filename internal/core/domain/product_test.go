package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct_Success(t *testing.T) {
	p, err := NewProduct("Widget", "a widget", 10, 1050, 400)
	require.NoError(t, err)

	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, 10, p.Stock)
	assert.Equal(t, Cents(1050), p.PriceCents)
	assert.Equal(t, Cents(400), p.CostPriceCents)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestNewProduct_Validation(t *testing.T) {
	tests := []struct {
		name    string
		product string
		stock   int
		price   Cents
		cost    Cents
		wantErr error
	}{
		{"empty name", "", 1, 100, 50, ErrEmptyProductName},
		{"negative stock", "Widget", -1, 100, 50, ErrNegativeStock},
		{"negative price", "Widget", 1, -100, 50, ErrNegativePrice},
		{"negative cost price", "Widget", 1, 100, -50, ErrNegativePrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct(tt.product, "", tt.stock, tt.price, tt.cost)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProduct_Reserve(t *testing.T) {
	p, err := NewProduct("Widget", "", 5, 100, 50)
	require.NoError(t, err)

	require.NoError(t, p.Reserve(3))
	assert.Equal(t, 2, p.Stock)

	err = p.Reserve(3)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 2, p.Stock)

	assert.ErrorIs(t, p.Reserve(0), ErrInvalidQuantity)
	assert.ErrorIs(t, p.Reserve(-1), ErrInvalidQuantity)
}

func TestProduct_Release(t *testing.T) {
	p, err := NewProduct("Widget", "", 1, 100, 50)
	require.NoError(t, err)

	require.NoError(t, p.Release(4))
	assert.Equal(t, 5, p.Stock)

	assert.ErrorIs(t, p.Release(0), ErrInvalidQuantity)
}

func TestProduct_Adjust(t *testing.T) {
	p, err := NewProduct("Widget", "", 2, 100, 50)
	require.NoError(t, err)

	// A line holding 3 units may grow up to stock+old = 5.
	require.NoError(t, p.Adjust(3, 5))
	assert.Equal(t, 0, p.Stock)

	// Shrinking the line returns units to stock.
	require.NoError(t, p.Adjust(5, 1))
	assert.Equal(t, 4, p.Stock)

	err = p.Adjust(1, 6)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 4, p.Stock)

	assert.ErrorIs(t, p.Adjust(1, 0), ErrInvalidQuantity)
}

func TestCents_String(t *testing.T) {
	assert.Equal(t, "12.50", Cents(1250).String())
	assert.Equal(t, "0.05", Cents(5).String())
	assert.Equal(t, "0.00", Cents(0).String())
	assert.Equal(t, "-3.07", Cents(-307).String())
	assert.Equal(t, "100.00", Cents(10000).String())
}

func TestCents_MulQuantity(t *testing.T) {
	assert.Equal(t, Cents(3000), Cents(1000).MulQuantity(3))
	assert.Equal(t, Cents(0), Cents(1000).MulQuantity(0))
}

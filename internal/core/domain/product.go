// Package domain contains the core entities of the storefront.
package domain

import (
	"errors"
	"time"
)

// =============================================================================
// Product Errors
// =============================================================================

var (
	ErrEmptyProductName   = errors.New("product name must not be empty")
	ErrNegativeStock      = errors.New("stock must not be negative")
	ErrNegativePrice      = errors.New("price must not be negative")
	ErrInsufficientStock  = errors.New("not enough stock")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
)

// =============================================================================
// Product
// =============================================================================

// Product is a catalog item with tracked stock.
type Product struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Stock          int       `json:"stock"`
	PriceCents     Cents     `json:"price_cents"`
	CostPriceCents Cents     `json:"cost_price_cents"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewProduct creates a product after validating its fields.
func NewProduct(name, description string, stock int, priceCents, costPriceCents Cents) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyProductName
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}
	if priceCents < 0 || costPriceCents < 0 {
		return nil, ErrNegativePrice
	}

	now := time.Now().UTC()
	return &Product{
		Name:           name,
		Description:    description,
		Stock:          stock,
		PriceCents:     priceCents,
		CostPriceCents: costPriceCents,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Reserve removes qty units from stock for an order line.
func (p *Product) Reserve(qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if qty > p.Stock {
		return ErrInsufficientStock
	}
	p.Stock -= qty
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// Release returns qty units to stock, e.g. on cancellation.
func (p *Product) Release(qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	p.Stock += qty
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// Adjust moves the reserved quantity for an existing order line from old to
// new, checking availability against stock plus what the line already holds.
func (p *Product) Adjust(oldQty, newQty int) error {
	if newQty <= 0 {
		return ErrInvalidQuantity
	}
	if newQty > p.Stock+oldQty {
		return ErrInsufficientStock
	}
	p.Stock = p.Stock + oldQty - newQty
	p.UpdatedAt = time.Now().UTC()
	return nil
}

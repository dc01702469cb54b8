package domain

import (
	"errors"
	"time"
)

// =============================================================================
// Order Errors
// =============================================================================

var (
	ErrNoLines           = errors.New("order must contain at least one line")
	ErrDuplicateLine     = errors.New("order contains the same product twice")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrOrderNotEditable  = errors.New("completed or cancelled orders cannot be changed")
)

// =============================================================================
// Order Status
// =============================================================================

type OrderStatus string

const (
	OrderStable    OrderStatus = "stable"
	OrderCancelled OrderStatus = "cancelled"
	OrderCompleted OrderStatus = "completed"
)

// validTransitions defines the allowed status transitions.
// Cancelled and completed are terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderStable:    {OrderCancelled, OrderCompleted},
	OrderCancelled: {},
	OrderCompleted: {},
}

// ValidateTransition checks if a status transition is allowed.
func ValidateTransition(from, to OrderStatus) error {
	allowed, exists := validTransitions[from]
	if !exists {
		return ErrInvalidTransition
	}
	for _, s := range allowed {
		if s == to {
			return nil
		}
	}
	return ErrInvalidTransition
}

// =============================================================================
// Order
// =============================================================================

// OrderLine is one product position within an order. UnitPriceCents captures
// the catalog price at the time the order was placed.
type OrderLine struct {
	ID             int64 `json:"id"`
	ProductID      int64 `json:"product_id"`
	ProductName    string `json:"product_name,omitempty"`
	Quantity       int   `json:"quantity"`
	UnitPriceCents Cents `json:"unit_price_cents"`
}

// Order is a customer order with stock-reserving lines.
type Order struct {
	ID         int64       `json:"id"`
	CustomerID int64       `json:"customer_id"`
	Status     OrderStatus `json:"status"`
	Lines      []OrderLine `json:"lines"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// NewOrder creates a stable order for a customer from validated lines.
func NewOrder(customerID int64, lines []OrderLine) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	seen := make(map[int64]bool, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if seen[l.ProductID] {
			return nil, ErrDuplicateLine
		}
		seen[l.ProductID] = true
	}

	now := time.Now().UTC()
	return &Order{
		CustomerID: customerID,
		Status:     OrderStable,
		Lines:      lines,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Transition attempts to move the order to a new status.
func (o *Order) Transition(to OrderStatus) error {
	if err := ValidateTransition(o.Status, to); err != nil {
		return err
	}
	o.Status = to
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// Editable reports whether the order's lines may still be changed.
func (o *Order) Editable() bool {
	return o.Status == OrderStable
}

// LineFor returns the line for the given product, if any.
func (o *Order) LineFor(productID int64) (*OrderLine, bool) {
	for i := range o.Lines {
		if o.Lines[i].ProductID == productID {
			return &o.Lines[i], true
		}
	}
	return nil, false
}

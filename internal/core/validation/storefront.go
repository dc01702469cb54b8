package validation

import (
	"fmt"
	"time"

	"github.com/storekit/storefront/internal/core/domain"
)

// =============================================================================
// Product Validation Functions
// =============================================================================

// ValidateCreateProductFields validates required fields for product creation.
// Returns the field name and error message if validation fails.
// Returns empty strings if all fields are valid.
func ValidateCreateProductFields(name string, stock int, priceCents, costPriceCents int64) (field, message string) {
	if name == "" {
		return "name", "name is required"
	}
	if stock < 0 {
		return "stock", "stock must not be negative"
	}
	if priceCents < 0 {
		return "price_cents", "price_cents must not be negative"
	}
	if costPriceCents < 0 {
		return "cost_price_cents", "cost_price_cents must not be negative"
	}
	return "", ""
}

// =============================================================================
// Order Validation Functions
// =============================================================================

// OrderLineInput is the minimal line shape handlers pass in for validation.
type OrderLineInput struct {
	ProductID int64
	Quantity  int
}

// ValidateOrderLines validates the line items of an order request.
// Returns the field name and error message if validation fails.
func ValidateOrderLines(lines []OrderLineInput) (field, message string) {
	if len(lines) == 0 {
		return "lines", "order must contain at least one line"
	}
	seen := make(map[int64]bool, len(lines))
	for i, l := range lines {
		if l.ProductID <= 0 {
			return fmt.Sprintf("lines[%d].product_id", i), "product_id is required"
		}
		if l.Quantity <= 0 {
			return fmt.Sprintf("lines[%d].quantity", i), "quantity must be positive"
		}
		if seen[l.ProductID] {
			return fmt.Sprintf("lines[%d].product_id", i), "duplicate product in order"
		}
		seen[l.ProductID] = true
	}
	return "", ""
}

// CanEditOrder checks if an order's lines may still be changed.
// Returns whether the edit is allowed and an optional reason if not.
func CanEditOrder(status domain.OrderStatus) (allowed bool, reason string) {
	if status != domain.OrderStable {
		return false, "completed or cancelled orders cannot be changed"
	}
	return true, ""
}

// CanCancelOrder checks if an order can be cancelled.
func CanCancelOrder(status domain.OrderStatus) (allowed bool, reason string) {
	if err := domain.ValidateTransition(status, domain.OrderCancelled); err != nil {
		return false, fmt.Sprintf("%s orders cannot be cancelled", status)
	}
	return true, ""
}

// CanCompleteOrder checks if an order can be completed.
func CanCompleteOrder(status domain.OrderStatus) (allowed bool, reason string) {
	if err := domain.ValidateTransition(status, domain.OrderCompleted); err != nil {
		return false, fmt.Sprintf("%s orders cannot be completed", status)
	}
	return true, ""
}

// =============================================================================
// Report Validation Functions
// =============================================================================

// ValidateReportRequest validates a summary report request.
// The name is optional; dates are required and must be ordered.
func ValidateReportRequest(firstDate, secondDate time.Time, name string) (field, message string) {
	if firstDate.IsZero() {
		return "first_date", "first_date is required"
	}
	if secondDate.IsZero() {
		return "second_date", "second_date is required"
	}
	if firstDate.After(secondDate) {
		return "first_date", "first_date must not be after second_date"
	}
	if len(name) > 255 {
		return "name", "name exceeds 255 characters"
	}
	return "", ""
}

// =============================================================================
// Customer Validation Functions
// =============================================================================

// ValidateCreateCustomerFields validates required fields for customer creation.
func ValidateCreateCustomerFields(username, password string) (field, message string) {
	if username == "" {
		return "username", "username is required"
	}
	if len(password) < 8 {
		return "password", "password must be at least 8 characters"
	}
	return "", ""
}

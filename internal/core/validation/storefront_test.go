package validation

import (
	"testing"
	"time"

	"github.com/storekit/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidateCreateProductFields(t *testing.T) {
	tests := []struct {
		name      string
		product   string
		stock     int
		price     int64
		cost      int64
		wantField string
	}{
		{"valid", "Widget", 5, 100, 50, ""},
		{"missing name", "", 5, 100, 50, "name"},
		{"negative stock", "Widget", -1, 100, 50, "stock"},
		{"negative price", "Widget", 5, -1, 50, "price_cents"},
		{"negative cost", "Widget", 5, 100, -1, "cost_price_cents"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, msg := ValidateCreateProductFields(tt.product, tt.stock, tt.price, tt.cost)
			assert.Equal(t, tt.wantField, field)
			if tt.wantField != "" {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestValidateOrderLines(t *testing.T) {
	field, _ := ValidateOrderLines(nil)
	assert.Equal(t, "lines", field)

	field, _ = ValidateOrderLines([]OrderLineInput{{ProductID: 0, Quantity: 1}})
	assert.Equal(t, "lines[0].product_id", field)

	field, _ = ValidateOrderLines([]OrderLineInput{{ProductID: 1, Quantity: 0}})
	assert.Equal(t, "lines[0].quantity", field)

	field, msg := ValidateOrderLines([]OrderLineInput{
		{ProductID: 1, Quantity: 1},
		{ProductID: 1, Quantity: 2},
	})
	assert.Equal(t, "lines[1].product_id", field)
	assert.Equal(t, "duplicate product in order", msg)

	field, _ = ValidateOrderLines([]OrderLineInput{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 2},
	})
	assert.Empty(t, field)
}

func TestCanEditOrder(t *testing.T) {
	allowed, _ := CanEditOrder(domain.OrderStable)
	assert.True(t, allowed)

	allowed, reason := CanEditOrder(domain.OrderCompleted)
	assert.False(t, allowed)
	assert.Equal(t, "completed or cancelled orders cannot be changed", reason)

	allowed, _ = CanEditOrder(domain.OrderCancelled)
	assert.False(t, allowed)
}

func TestCanCancelOrder(t *testing.T) {
	allowed, _ := CanCancelOrder(domain.OrderStable)
	assert.True(t, allowed)

	allowed, reason := CanCancelOrder(domain.OrderCompleted)
	assert.False(t, allowed)
	assert.Equal(t, "completed orders cannot be cancelled", reason)
}

func TestCanCompleteOrder(t *testing.T) {
	allowed, _ := CanCompleteOrder(domain.OrderStable)
	assert.True(t, allowed)

	allowed, reason := CanCompleteOrder(domain.OrderCancelled)
	assert.False(t, allowed)
	assert.Equal(t, "cancelled orders cannot be completed", reason)
}

func TestValidateReportRequest(t *testing.T) {
	first := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	second := first.AddDate(0, 1, 0)

	field, _ := ValidateReportRequest(first, second, "march")
	assert.Empty(t, field)

	field, _ = ValidateReportRequest(time.Time{}, second, "")
	assert.Equal(t, "first_date", field)

	field, _ = ValidateReportRequest(first, time.Time{}, "")
	assert.Equal(t, "second_date", field)

	field, msg := ValidateReportRequest(second, first, "")
	assert.Equal(t, "first_date", field)
	assert.Equal(t, "first_date must not be after second_date", msg)

	long := make([]byte, 256)
	for i := range long {
		long[i] = 'x'
	}
	field, _ = ValidateReportRequest(first, second, string(long))
	assert.Equal(t, "name", field)
}

func TestValidateCreateCustomerFields(t *testing.T) {
	field, _ := ValidateCreateCustomerFields("alice", "longenough")
	assert.Empty(t, field)

	field, _ = ValidateCreateCustomerFields("", "longenough")
	assert.Equal(t, "username", field)

	field, _ = ValidateCreateCustomerFields("alice", "short")
	assert.Equal(t, "password", field)
}

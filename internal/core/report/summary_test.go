package report

import (
	"bytes"
	"testing"

	"github.com/storekit/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Anvil", PriceCents: 1000, CostPriceCents: 400},
		{ID: 2, Name: "Widget", PriceCents: 250, CostPriceCents: 100},
		{ID: 3, Name: "Gadget", PriceCents: 9999, CostPriceCents: 5000},
	}
}

func TestBuildSummary_Aggregation(t *testing.T) {
	activity := []domain.OrderActivity{
		{ProductID: 1, ProductName: "Anvil", Quantity: 2, UnitPriceCents: 1000, UnitCostCents: 400, Status: domain.OrderCompleted},
		{ProductID: 1, ProductName: "Anvil", Quantity: 1, UnitPriceCents: 1000, UnitCostCents: 400, Status: domain.OrderCompleted},
		{ProductID: 1, ProductName: "Anvil", Quantity: 4, UnitPriceCents: 1000, UnitCostCents: 400, Status: domain.OrderCancelled},
		{ProductID: 2, ProductName: "Widget", Quantity: 3, UnitPriceCents: 250, UnitCostCents: 100, Status: domain.OrderCancelled},
	}

	rows := BuildSummary(testCatalog(), activity)
	require.Len(t, rows, 3)

	// Sorted by product name.
	assert.Equal(t, "Anvil", rows[0].Product)
	assert.Equal(t, "Gadget", rows[1].Product)
	assert.Equal(t, "Widget", rows[2].Product)

	anvil := rows[0]
	assert.Equal(t, 3, anvil.Sold)
	assert.Equal(t, 4, anvil.Returned)
	assert.Equal(t, domain.Cents(3000), anvil.RevenueCents)
	assert.Equal(t, domain.Cents(1800), anvil.ProfitCents)

	// No completed activity means zero revenue even with returns.
	widget := rows[2]
	assert.Equal(t, 0, widget.Sold)
	assert.Equal(t, 3, widget.Returned)
	assert.Equal(t, domain.Cents(0), widget.RevenueCents)

	// Untouched products still get a row.
	gadget := rows[1]
	assert.Equal(t, 0, gadget.Sold)
	assert.Equal(t, 0, gadget.Returned)
}

func TestBuildSummary_UnknownProduct(t *testing.T) {
	// A line for a product no longer in the catalog is still reported.
	activity := []domain.OrderActivity{
		{ProductID: 42, ProductName: "Retired", Quantity: 1, UnitPriceCents: 500, UnitCostCents: 200, Status: domain.OrderCompleted},
	}

	rows := BuildSummary(testCatalog()[:1], activity)
	require.Len(t, rows, 2)
	assert.Equal(t, "Anvil", rows[0].Product)
	assert.Equal(t, "Retired", rows[1].Product)
	assert.Equal(t, 1, rows[1].Sold)
	assert.Equal(t, domain.Cents(500), rows[1].RevenueCents)
}

func TestBuildSummary_Empty(t *testing.T) {
	rows := BuildSummary(nil, nil)
	assert.Empty(t, rows)
}

func TestWriteCSV(t *testing.T) {
	rows := []Row{
		{Product: "Anvil", RevenueCents: 3000, ProfitCents: 1800, Sold: 3, Returned: 4},
		{Product: "Widget", RevenueCents: 0, ProfitCents: 0, Sold: 0, Returned: 3},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	expected := "product,revenue,profit,sold,returned\n" +
		"Anvil,30.00,18.00,3,4\n" +
		"Widget,0.00,0.00,0,3\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "product,revenue,profit,sold,returned\n", buf.String())
}

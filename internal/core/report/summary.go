// Package report builds per-product sales summaries over a reporting window.
//
// All functions are pure: the caller supplies the catalog and the order
// activity, the package aggregates and renders. No I/O happens here.
package report

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/storekit/storefront/internal/core/domain"
)

// =============================================================================
// Summary Rows
// =============================================================================

// Row is one product's aggregated figures over the reporting window.
type Row struct {
	Product      string
	RevenueCents domain.Cents
	ProfitCents  domain.Cents
	Sold         int
	Returned     int
}

// BuildSummary aggregates order activity into one row per catalog product.
// Every product appears, with zeros when it saw no activity in the window.
// Completed lines contribute quantity-weighted revenue and profit and count
// as sold; cancelled lines count as returned. Rows are ordered by product
// name for stable output.
func BuildSummary(products []domain.Product, activity []domain.OrderActivity) []Row {
	byID := make(map[int64]int, len(products))
	rows := make([]Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, Row{Product: p.Name})
		byID[p.ID] = len(rows) - 1
	}

	for _, a := range activity {
		idx, ok := byID[a.ProductID]
		if !ok {
			// Product removed from the catalog after ordering; still report it.
			rows = append(rows, Row{Product: a.ProductName})
			idx = len(rows) - 1
			byID[a.ProductID] = idx
		}
		row := &rows[idx]

		switch a.Status {
		case domain.OrderCompleted:
			row.Sold += a.Quantity
			row.RevenueCents += a.UnitPriceCents.MulQuantity(a.Quantity)
			row.ProfitCents += (a.UnitPriceCents - a.UnitCostCents).MulQuantity(a.Quantity)
		case domain.OrderCancelled:
			row.Returned += a.Quantity
		}
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Product < rows[j].Product })
	return rows
}

// =============================================================================
// CSV Rendering
// =============================================================================

// csvHeader matches the column order consumers of the report expect.
var csvHeader = []string{"product", "revenue", "profit", "sold", "returned"}

// WriteCSV renders summary rows as CSV with a header line. Monetary columns
// are rendered as plain decimals ("12.50").
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Product,
			r.RevenueCents.String(),
			r.ProfitCents.String(),
			strconv.Itoa(r.Sold),
			strconv.Itoa(r.Returned),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Package validation provides pure validation functions for API handlers.
//
// All functions here are pure (no I/O, no side effects). Handlers call them
// before touching the store and translate failures into 400/409 responses.
//
//   - ValidateCreateProductFields: required fields for product creation
//   - ValidateOrderLines: shape of an order's line items
//   - ValidateReportRequest: report date range and optional name
//   - CanEditOrder: whether an order's lines may still change
package validation

package api

import "time"

// =============================================================================
// Request Types
// =============================================================================

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Stock          int    `json:"stock"`
	PriceCents     int64  `json:"price_cents"`
	CostPriceCents int64  `json:"cost_price_cents"`
}

// BulkCreateProductsRequest is the request body for bulk product creation.
type BulkCreateProductsRequest struct {
	Products []CreateProductRequest `json:"products"`
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Stock          int    `json:"stock"`
	PriceCents     int64  `json:"price_cents"`
	CostPriceCents int64  `json:"cost_price_cents"`
}

// OrderLineRequest is one product position in an order request.
type OrderLineRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderRequest is the request body for creating an order.
type CreateOrderRequest struct {
	CustomerID int64              `json:"customer_id"`
	Lines      []OrderLineRequest `json:"lines"`
}

// UpdateOrderRequest is the request body for changing an order's lines.
type UpdateOrderRequest struct {
	Lines []OrderLineRequest `json:"lines"`
}

// CreateCustomerRequest is the request body for creating a customer.
type CreateCustomerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// CreateReportRequest is the request body for requesting a summary report.
type CreateReportRequest struct {
	Name       string    `json:"name,omitempty"`
	FirstDate  time.Time `json:"first_date"`
	SecondDate time.Time `json:"second_date"`
}

// =============================================================================
// Response Types
// =============================================================================

// ProductResponse is the response for product operations.
type ProductResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Stock          int       `json:"stock"`
	PriceCents     int64     `json:"price_cents"`
	CostPriceCents int64     `json:"cost_price_cents"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// OrderLineResponse is one line in an order response.
type OrderLineResponse struct {
	ID             int64  `json:"id"`
	ProductID      int64  `json:"product_id"`
	ProductName    string `json:"product_name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// OrderResponse is the response for order operations.
type OrderResponse struct {
	ID         int64               `json:"id"`
	CustomerID int64               `json:"customer_id"`
	Status     string              `json:"status"`
	Lines      []OrderLineResponse `json:"lines"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// CustomerResponse is the response for customer operations. The password
// hash never appears here.
type CustomerResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportResponse is the response for report operations.
type ReportResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	FirstDate  time.Time `json:"first_date"`
	SecondDate time.Time `json:"second_date"`
	FilePath   string    `json:"file_path,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ReportAcceptedResponse is returned when a report task has been queued.
type ReportAcceptedResponse struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// ListProductsResponse is the response for listing products.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// ListOrdersResponse is the response for listing orders.
type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// ListCustomersResponse is the response for listing customers.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Total     int                `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

// ListReportsResponse is the response for listing reports.
type ListReportsResponse struct {
	Reports []ReportResponse `json:"reports"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// ErrorResponse is the error response format.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse is the readiness check response.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

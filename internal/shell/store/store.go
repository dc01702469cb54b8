package store

import (
	"context"
	"time"

	"github.com/storekit/storefront/internal/core/domain"
)

// =============================================================================
// Store Interface
// =============================================================================

// Store defines the persistence interface for storefront entities.
type Store interface {
	// Product operations
	CreateProduct(ctx context.Context, product *domain.Product) error
	CreateProducts(ctx context.Context, products []*domain.Product) error
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	ListProducts(ctx context.Context, opts ListOptions) ([]domain.Product, error)

	// Customer operations
	CreateCustomer(ctx context.Context, customer *domain.Customer) error
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	ListCustomers(ctx context.Context, opts ListOptions) ([]domain.Customer, error)

	// Order operations
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context, opts ListOptions) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	UpdateOrderLines(ctx context.Context, orderID int64, lines []domain.OrderLine) error

	// Report operations
	CreateReport(ctx context.Context, report *domain.SummaryReport) error
	GetReport(ctx context.Context, id int64) (*domain.SummaryReport, error)
	GetReportByName(ctx context.Context, name string) (*domain.SummaryReport, error)
	ListReports(ctx context.Context, opts ListOptions) ([]domain.SummaryReport, error)

	// Reporting query: order lines of cancelled or completed orders whose
	// updated_at falls inside [from, to].
	ListOrderActivity(ctx context.Context, from, to time.Time) ([]domain.OrderActivity, error)

	// Transaction support
	WithTx(ctx context.Context, fn func(Store) error) error

	// Lifecycle
	Close() error
}

// =============================================================================
// Options
// =============================================================================

// ListOptions defines pagination options.
type ListOptions struct {
	Limit  int
	Offset int
}

// DefaultListOptions returns default list options.
func DefaultListOptions() ListOptions {
	return ListOptions{
		Limit:  100,
		Offset: 0,
	}
}

// Normalize ensures list options have valid values.
func (o ListOptions) Normalize() ListOptions {
	if o.Limit <= 0 {
		o.Limit = 100
	}
	if o.Limit > 1000 {
		o.Limit = 1000
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}

package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/storekit/storefront/internal/core/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// =============================================================================
// Executor Interface - Shared by DB and Transaction
// =============================================================================

// executor abstracts database operations that can be performed on both
// a database connection and a transaction.
type executor interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowxContext(ctx context.Context, query string, args ...any) *sqlx.Row
	Rebind(query string) string
}

// =============================================================================
// PostgresStore
// =============================================================================

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a new Postgres store and runs migrations.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, NewStoreError("NewPostgresStore", "", "", "failed to open database", ErrConnectionFailed)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, NewStoreError("NewPostgresStore", "", "", "failed to ping database", ErrConnectionFailed)
	}

	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, NewStoreError("NewPostgresStore", "", "", err.Error(), ErrMigrationFailed)
	}

	return &PostgresStore{db: db}, nil
}

// runMigrations runs database migrations using embedded SQL files.
func runMigrations(db *sql.DB) error {
	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// Error Mapping
// =============================================================================

// Postgres error codes we translate into sentinel errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapError translates driver errors into StoreErrors carrying a sentinel.
func mapError(op, entity, id string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			return NewStoreError(op, entity, id, "already exists", ErrDuplicateName)
		case pgForeignKeyViolation:
			return NewStoreError(op, entity, id, "referenced entity does not exist", ErrForeignKey)
		}
	}
	return NewStoreError(op, entity, id, err.Error(), err)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// =============================================================================
// Product Operations
// =============================================================================

// productRow represents a product row in the database.
type productRow struct {
	ID             int64     `db:"id"`
	Name           string    `db:"name"`
	Description    string    `db:"description"`
	Stock          int       `db:"stock"`
	PriceCents     int64     `db:"price_cents"`
	CostPriceCents int64     `db:"cost_price_cents"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r *productRow) toDomain() domain.Product {
	return domain.Product{
		ID:             r.ID,
		Name:           r.Name,
		Description:    r.Description,
		Stock:          r.Stock,
		PriceCents:     domain.Cents(r.PriceCents),
		CostPriceCents: domain.Cents(r.CostPriceCents),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func (s *PostgresStore) CreateProduct(ctx context.Context, product *domain.Product) error {
	return createProduct(ctx, s.db, product)
}

// CreateProducts inserts all products in a single transaction.
func (s *PostgresStore) CreateProducts(ctx context.Context, products []*domain.Product) error {
	return s.WithTx(ctx, func(tx Store) error {
		return tx.CreateProducts(ctx, products)
	})
}

func (s *PostgresStore) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return getProduct(ctx, s.db, id)
}

func (s *PostgresStore) UpdateProduct(ctx context.Context, product *domain.Product) error {
	return updateProduct(ctx, s.db, product)
}

func (s *PostgresStore) ListProducts(ctx context.Context, opts ListOptions) ([]domain.Product, error) {
	return listProducts(ctx, s.db, opts)
}

// =============================================================================
// Customer Operations
// =============================================================================

// customerRow represents a customer row in the database.
type customerRow struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r *customerRow) toDomain() domain.Customer {
	return domain.Customer{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

func (s *PostgresStore) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	return createCustomer(ctx, s.db, customer)
}

func (s *PostgresStore) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return getCustomer(ctx, s.db, id)
}

func (s *PostgresStore) ListCustomers(ctx context.Context, opts ListOptions) ([]domain.Customer, error) {
	return listCustomers(ctx, s.db, opts)
}

// =============================================================================
// Order Operations
// =============================================================================

// orderRow represents an order row in the database.
type orderRow struct {
	ID         int64     `db:"id"`
	CustomerID int64     `db:"customer_id"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// orderLineRow represents an order line joined with the product name.
type orderLineRow struct {
	ID             int64  `db:"id"`
	OrderID        int64  `db:"order_id"`
	ProductID      int64  `db:"product_id"`
	ProductName    string `db:"product_name"`
	Quantity       int    `db:"quantity"`
	UnitPriceCents int64  `db:"unit_price_cents"`
}

func (r *orderLineRow) toDomain() domain.OrderLine {
	return domain.OrderLine{
		ID:             r.ID,
		ProductID:      r.ProductID,
		ProductName:    r.ProductName,
		Quantity:       r.Quantity,
		UnitPriceCents: domain.Cents(r.UnitPriceCents),
	}
}

func (s *PostgresStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	return createOrder(ctx, s.db, order)
}

func (s *PostgresStore) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return getOrder(ctx, s.db, id)
}

func (s *PostgresStore) ListOrders(ctx context.Context, opts ListOptions) ([]domain.Order, error) {
	return listOrders(ctx, s.db, opts)
}

func (s *PostgresStore) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	return updateOrderStatus(ctx, s.db, id, status)
}

func (s *PostgresStore) UpdateOrderLines(ctx context.Context, orderID int64, lines []domain.OrderLine) error {
	return updateOrderLines(ctx, s.db, orderID, lines)
}

// =============================================================================
// Report Operations
// =============================================================================

// reportRow represents a summary report row in the database.
type reportRow struct {
	ID         int64     `db:"id"`
	Name       string    `db:"name"`
	FirstDate  time.Time `db:"first_date"`
	SecondDate time.Time `db:"second_date"`
	FilePath   string    `db:"file_path"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r *reportRow) toDomain() domain.SummaryReport {
	return domain.SummaryReport{
		ID:         r.ID,
		Name:       r.Name,
		FirstDate:  r.FirstDate,
		SecondDate: r.SecondDate,
		FilePath:   r.FilePath,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func (s *PostgresStore) CreateReport(ctx context.Context, report *domain.SummaryReport) error {
	return createReport(ctx, s.db, report)
}

func (s *PostgresStore) GetReport(ctx context.Context, id int64) (*domain.SummaryReport, error) {
	return getReport(ctx, s.db, id)
}

func (s *PostgresStore) GetReportByName(ctx context.Context, name string) (*domain.SummaryReport, error) {
	return getReportByName(ctx, s.db, name)
}

func (s *PostgresStore) ListReports(ctx context.Context, opts ListOptions) ([]domain.SummaryReport, error) {
	return listReports(ctx, s.db, opts)
}

func (s *PostgresStore) ListOrderActivity(ctx context.Context, from, to time.Time) ([]domain.OrderActivity, error) {
	return listOrderActivity(ctx, s.db, from, to)
}

// =============================================================================
// Transaction Support
// =============================================================================

func (s *PostgresStore) WithTx(ctx context.Context, fn func(Store) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return NewStoreError("WithTx", "", "", "failed to begin transaction", ErrTxFailed)
	}

	txS := &txPostgresStore{tx: tx}

	if err := fn(txS); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return NewStoreError("WithTx", "", "", fmt.Sprintf("rollback failed after error: %v", err), ErrTxFailed)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return NewStoreError("WithTx", "", "", "failed to commit transaction", ErrTxFailed)
	}

	return nil
}

// =============================================================================
// Transaction Store
// =============================================================================

// txPostgresStore implements Store within a transaction.
type txPostgresStore struct {
	tx *sqlx.Tx
}

func (s *txPostgresStore) CreateProduct(ctx context.Context, product *domain.Product) error {
	return createProduct(ctx, s.tx, product)
}

func (s *txPostgresStore) CreateProducts(ctx context.Context, products []*domain.Product) error {
	for _, p := range products {
		if err := createProduct(ctx, s.tx, p); err != nil {
			return err
		}
	}
	return nil
}

func (s *txPostgresStore) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return getProduct(ctx, s.tx, id)
}

func (s *txPostgresStore) UpdateProduct(ctx context.Context, product *domain.Product) error {
	return updateProduct(ctx, s.tx, product)
}

func (s *txPostgresStore) ListProducts(ctx context.Context, opts ListOptions) ([]domain.Product, error) {
	return listProducts(ctx, s.tx, opts)
}

func (s *txPostgresStore) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	return createCustomer(ctx, s.tx, customer)
}

func (s *txPostgresStore) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return getCustomer(ctx, s.tx, id)
}

func (s *txPostgresStore) ListCustomers(ctx context.Context, opts ListOptions) ([]domain.Customer, error) {
	return listCustomers(ctx, s.tx, opts)
}

func (s *txPostgresStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	return createOrder(ctx, s.tx, order)
}

func (s *txPostgresStore) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return getOrder(ctx, s.tx, id)
}

func (s *txPostgresStore) ListOrders(ctx context.Context, opts ListOptions) ([]domain.Order, error) {
	return listOrders(ctx, s.tx, opts)
}

func (s *txPostgresStore) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	return updateOrderStatus(ctx, s.tx, id, status)
}

func (s *txPostgresStore) UpdateOrderLines(ctx context.Context, orderID int64, lines []domain.OrderLine) error {
	return updateOrderLines(ctx, s.tx, orderID, lines)
}

func (s *txPostgresStore) CreateReport(ctx context.Context, report *domain.SummaryReport) error {
	return createReport(ctx, s.tx, report)
}

func (s *txPostgresStore) GetReport(ctx context.Context, id int64) (*domain.SummaryReport, error) {
	return getReport(ctx, s.tx, id)
}

func (s *txPostgresStore) GetReportByName(ctx context.Context, name string) (*domain.SummaryReport, error) {
	return getReportByName(ctx, s.tx, name)
}

func (s *txPostgresStore) ListReports(ctx context.Context, opts ListOptions) ([]domain.SummaryReport, error) {
	return listReports(ctx, s.tx, opts)
}

func (s *txPostgresStore) ListOrderActivity(ctx context.Context, from, to time.Time) ([]domain.OrderActivity, error) {
	return listOrderActivity(ctx, s.tx, from, to)
}

func (s *txPostgresStore) WithTx(ctx context.Context, fn func(Store) error) error {
	// Already in a transaction, just run the function
	return fn(s)
}

func (s *txPostgresStore) Close() error {
	// No-op for tx store
	return nil
}

// =============================================================================
// Shared Implementation Functions
// =============================================================================

func createProduct(ctx context.Context, exec executor, product *domain.Product) error {
	query := `
		INSERT INTO products (name, description, stock, price_cents, cost_price_cents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := exec.QueryRowxContext(ctx, query,
		product.Name,
		product.Description,
		product.Stock,
		int64(product.PriceCents),
		int64(product.CostPriceCents),
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		return mapError("CreateProduct", "product", product.Name, err)
	}

	return nil
}

func getProduct(ctx context.Context, exec executor, id int64) (*domain.Product, error) {
	query := `SELECT * FROM products WHERE id = $1`

	var row productRow
	err := exec.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetProduct", "product", formatID(id), "product not found", ErrNotFound)
		}
		return nil, NewStoreError("GetProduct", "product", formatID(id), err.Error(), err)
	}

	p := row.toDomain()
	return &p, nil
}

func updateProduct(ctx context.Context, exec executor, product *domain.Product) error {
	query := `
		UPDATE products SET
			name = $1,
			description = $2,
			stock = $3,
			price_cents = $4,
			cost_price_cents = $5,
			updated_at = $6
		WHERE id = $7`

	res, err := exec.ExecContext(ctx, query,
		product.Name,
		product.Description,
		product.Stock,
		int64(product.PriceCents),
		int64(product.CostPriceCents),
		product.UpdatedAt,
		product.ID,
	)
	if err != nil {
		return mapError("UpdateProduct", "product", formatID(product.ID), err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return NewStoreError("UpdateProduct", "product", formatID(product.ID), err.Error(), err)
	}
	if affected == 0 {
		return NewStoreError("UpdateProduct", "product", formatID(product.ID), "product not found", ErrNotFound)
	}

	return nil
}

func listProducts(ctx context.Context, exec executor, opts ListOptions) ([]domain.Product, error) {
	opts = opts.Normalize()
	query := `SELECT * FROM products ORDER BY id LIMIT $1 OFFSET $2`

	var rows []productRow
	if err := exec.SelectContext(ctx, &rows, query, opts.Limit, opts.Offset); err != nil {
		return nil, NewStoreError("ListProducts", "product", "", err.Error(), err)
	}

	products := make([]domain.Product, 0, len(rows))
	for i := range rows {
		products = append(products, rows[i].toDomain())
	}
	return products, nil
}

func createCustomer(ctx context.Context, exec executor, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := exec.QueryRowxContext(ctx, query,
		customer.Username,
		customer.Email,
		customer.PasswordHash,
		customer.CreatedAt,
	).Scan(&customer.ID)
	if err != nil {
		return mapError("CreateCustomer", "customer", customer.Username, err)
	}

	return nil
}

func getCustomer(ctx context.Context, exec executor, id int64) (*domain.Customer, error) {
	query := `SELECT * FROM customers WHERE id = $1`

	var row customerRow
	err := exec.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetCustomer", "customer", formatID(id), "customer not found", ErrNotFound)
		}
		return nil, NewStoreError("GetCustomer", "customer", formatID(id), err.Error(), err)
	}

	c := row.toDomain()
	return &c, nil
}

func listCustomers(ctx context.Context, exec executor, opts ListOptions) ([]domain.Customer, error) {
	opts = opts.Normalize()
	query := `SELECT * FROM customers ORDER BY id LIMIT $1 OFFSET $2`

	var rows []customerRow
	if err := exec.SelectContext(ctx, &rows, query, opts.Limit, opts.Offset); err != nil {
		return nil, NewStoreError("ListCustomers", "customer", "", err.Error(), err)
	}

	customers := make([]domain.Customer, 0, len(rows))
	for i := range rows {
		customers = append(customers, rows[i].toDomain())
	}
	return customers, nil
}

func createOrder(ctx context.Context, exec executor, order *domain.Order) error {
	query := `
		INSERT INTO orders (customer_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := exec.QueryRowxContext(ctx, query,
		order.CustomerID,
		string(order.Status),
		order.CreatedAt,
		order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		return mapError("CreateOrder", "order", "", err)
	}

	if err := insertOrderLines(ctx, exec, order.ID, order.Lines); err != nil {
		return err
	}

	return nil
}

func insertOrderLines(ctx context.Context, exec executor, orderID int64, lines []domain.OrderLine) error {
	query := `
		INSERT INTO order_lines (order_id, product_id, quantity, unit_price_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	for i := range lines {
		err := exec.QueryRowxContext(ctx, query,
			orderID,
			lines[i].ProductID,
			lines[i].Quantity,
			int64(lines[i].UnitPriceCents),
		).Scan(&lines[i].ID)
		if err != nil {
			return mapError("CreateOrder", "order line", formatID(orderID), err)
		}
	}
	return nil
}

func getOrder(ctx context.Context, exec executor, id int64) (*domain.Order, error) {
	query := `SELECT * FROM orders WHERE id = $1`

	var row orderRow
	err := exec.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetOrder", "order", formatID(id), "order not found", ErrNotFound)
		}
		return nil, NewStoreError("GetOrder", "order", formatID(id), err.Error(), err)
	}

	lines, err := selectOrderLines(ctx, exec, []int64{id})
	if err != nil {
		return nil, err
	}

	order := domain.Order{
		ID:         row.ID,
		CustomerID: row.CustomerID,
		Status:     domain.OrderStatus(row.Status),
		Lines:      make([]domain.OrderLine, 0, len(lines)),
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	for i := range lines {
		order.Lines = append(order.Lines, lines[i].toDomain())
	}
	return &order, nil
}

func listOrders(ctx context.Context, exec executor, opts ListOptions) ([]domain.Order, error) {
	opts = opts.Normalize()
	query := `SELECT * FROM orders ORDER BY id LIMIT $1 OFFSET $2`

	var rows []orderRow
	if err := exec.SelectContext(ctx, &rows, query, opts.Limit, opts.Offset); err != nil {
		return nil, NewStoreError("ListOrders", "order", "", err.Error(), err)
	}
	if len(rows) == 0 {
		return []domain.Order{}, nil
	}

	ids := make([]int64, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
	}

	lines, err := selectOrderLines(ctx, exec, ids)
	if err != nil {
		return nil, err
	}
	byOrder := make(map[int64][]domain.OrderLine, len(rows))
	for i := range lines {
		byOrder[lines[i].OrderID] = append(byOrder[lines[i].OrderID], lines[i].toDomain())
	}

	orders := make([]domain.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, domain.Order{
			ID:         rows[i].ID,
			CustomerID: rows[i].CustomerID,
			Status:     domain.OrderStatus(rows[i].Status),
			Lines:      byOrder[rows[i].ID],
			CreatedAt:  rows[i].CreatedAt,
			UpdatedAt:  rows[i].UpdatedAt,
		})
	}
	return orders, nil
}

// selectOrderLines loads the lines for a set of orders, joined with the
// product name for display.
func selectOrderLines(ctx context.Context, exec executor, orderIDs []int64) ([]orderLineRow, error) {
	query, args, err := sqlx.In(`
		SELECT ol.id, ol.order_id, ol.product_id, p.name AS product_name,
		       ol.quantity, ol.unit_price_cents
		FROM order_lines ol
		JOIN products p ON p.id = ol.product_id
		WHERE ol.order_id IN (?)
		ORDER BY ol.id`, orderIDs)
	if err != nil {
		return nil, NewStoreError("GetOrder", "order line", "", err.Error(), err)
	}

	var rows []orderLineRow
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), args...); err != nil {
		return nil, NewStoreError("GetOrder", "order line", "", err.Error(), err)
	}
	return rows, nil
}

func updateOrderStatus(ctx context.Context, exec executor, id int64, status domain.OrderStatus) error {
	query := `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`

	res, err := exec.ExecContext(ctx, query, string(status), time.Now().UTC(), id)
	if err != nil {
		return mapError("UpdateOrderStatus", "order", formatID(id), err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return NewStoreError("UpdateOrderStatus", "order", formatID(id), err.Error(), err)
	}
	if affected == 0 {
		return NewStoreError("UpdateOrderStatus", "order", formatID(id), "order not found", ErrNotFound)
	}

	return nil
}

// updateOrderLines replaces an order's lines and bumps its updated_at.
// Callers run this inside WithTx together with the stock adjustments.
func updateOrderLines(ctx context.Context, exec executor, orderID int64, lines []domain.OrderLine) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM order_lines WHERE order_id = $1`, orderID); err != nil {
		return mapError("UpdateOrderLines", "order line", formatID(orderID), err)
	}

	if err := insertOrderLines(ctx, exec, orderID, lines); err != nil {
		return err
	}

	res, err := exec.ExecContext(ctx, `UPDATE orders SET updated_at = $1 WHERE id = $2`, time.Now().UTC(), orderID)
	if err != nil {
		return mapError("UpdateOrderLines", "order", formatID(orderID), err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return NewStoreError("UpdateOrderLines", "order", formatID(orderID), err.Error(), err)
	}
	if affected == 0 {
		return NewStoreError("UpdateOrderLines", "order", formatID(orderID), "order not found", ErrNotFound)
	}

	return nil
}

func createReport(ctx context.Context, exec executor, report *domain.SummaryReport) error {
	query := `
		INSERT INTO summary_reports (name, first_date, second_date, file_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := exec.QueryRowxContext(ctx, query,
		report.Name,
		report.FirstDate,
		report.SecondDate,
		report.FilePath,
		report.CreatedAt,
		report.UpdatedAt,
	).Scan(&report.ID)
	if err != nil {
		return mapError("CreateReport", "report", report.Name, err)
	}

	return nil
}

func getReport(ctx context.Context, exec executor, id int64) (*domain.SummaryReport, error) {
	query := `SELECT * FROM summary_reports WHERE id = $1`

	var row reportRow
	err := exec.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetReport", "report", formatID(id), "report not found", ErrNotFound)
		}
		return nil, NewStoreError("GetReport", "report", formatID(id), err.Error(), err)
	}

	r := row.toDomain()
	return &r, nil
}

func getReportByName(ctx context.Context, exec executor, name string) (*domain.SummaryReport, error) {
	query := `SELECT * FROM summary_reports WHERE name = $1`

	var row reportRow
	err := exec.GetContext(ctx, &row, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetReportByName", "report", name, "report not found", ErrNotFound)
		}
		return nil, NewStoreError("GetReportByName", "report", name, err.Error(), err)
	}

	r := row.toDomain()
	return &r, nil
}

func listReports(ctx context.Context, exec executor, opts ListOptions) ([]domain.SummaryReport, error) {
	opts = opts.Normalize()
	query := `SELECT * FROM summary_reports ORDER BY id LIMIT $1 OFFSET $2`

	var rows []reportRow
	if err := exec.SelectContext(ctx, &rows, query, opts.Limit, opts.Offset); err != nil {
		return nil, NewStoreError("ListReports", "report", "", err.Error(), err)
	}

	reports := make([]domain.SummaryReport, 0, len(rows))
	for i := range rows {
		reports = append(reports, rows[i].toDomain())
	}
	return reports, nil
}

// activityRow represents one order line inside a reporting window.
type activityRow struct {
	ProductID      int64  `db:"product_id"`
	ProductName    string `db:"product_name"`
	Quantity       int    `db:"quantity"`
	UnitPriceCents int64  `db:"unit_price_cents"`
	UnitCostCents  int64  `db:"unit_cost_cents"`
	Status         string `db:"status"`
}

func listOrderActivity(ctx context.Context, exec executor, from, to time.Time) ([]domain.OrderActivity, error) {
	query := `
		SELECT ol.product_id, p.name AS product_name, ol.quantity,
		       ol.unit_price_cents, p.cost_price_cents AS unit_cost_cents,
		       o.status
		FROM order_lines ol
		JOIN orders o ON o.id = ol.order_id
		JOIN products p ON p.id = ol.product_id
		WHERE o.updated_at >= $1 AND o.updated_at <= $2
		  AND o.status IN ('cancelled', 'completed')
		ORDER BY ol.id`

	var rows []activityRow
	if err := exec.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, NewStoreError("ListOrderActivity", "order line", "", err.Error(), err)
	}

	activity := make([]domain.OrderActivity, 0, len(rows))
	for i := range rows {
		activity = append(activity, domain.OrderActivity{
			ProductID:      rows[i].ProductID,
			ProductName:    rows[i].ProductName,
			Quantity:       rows[i].Quantity,
			UnitPriceCents: domain.Cents(rows[i].UnitPriceCents),
			UnitCostCents:  domain.Cents(rows[i].UnitCostCents),
			Status:         domain.OrderStatus(rows[i].Status),
		})
	}
	return activity, nil
}

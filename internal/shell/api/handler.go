// Package api provides HTTP handlers for the storefront API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/storekit/storefront/internal/core/domain"
	"github.com/storekit/storefront/internal/core/validation"
	"github.com/storekit/storefront/internal/shell/api/openapi"
	"github.com/storekit/storefront/internal/shell/reports"
	"github.com/storekit/storefront/internal/shell/store"
	"github.com/storekit/storefront/internal/shell/tasks"
)

// =============================================================================
// Handler
// =============================================================================

// Handler provides HTTP handlers for the API.
type Handler struct {
	store   store.Store
	queue   tasks.Enqueuer
	archive *reports.Archive
	logger  *slog.Logger
	spec    *openapi.Generator
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, queue tasks.Enqueuer, archive *reports.Archive, l *slog.Logger) *Handler {
	if l == nil {
		l = slog.Default()
	}

	spec := openapi.NewGenerator(
		openapi.WithTitle("Storefront API"),
		openapi.WithVersion("1.0.0"),
		openapi.WithDescription("Product catalog, orders and sales summary reports"),
	)
	spec.RegisterResource(openapi.ResourceInfo{
		Name: "products", Model: ProductResponse{},
		SupportsList: true, SupportsGet: true, SupportsCreate: true, SupportsUpdate: true,
	})
	spec.RegisterResource(openapi.ResourceInfo{
		Name: "orders", Model: OrderResponse{},
		SupportsList: true, SupportsGet: true, SupportsCreate: true, SupportsUpdate: true,
		Actions: []string{"cancel", "complete"},
	})
	spec.RegisterResource(openapi.ResourceInfo{
		Name: "customers", Model: CustomerResponse{},
		SupportsList: true, SupportsCreate: true,
	})
	spec.RegisterResource(openapi.ResourceInfo{
		Name: "reports", Model: ReportResponse{},
		SupportsList: true, SupportsGet: true, SupportsCreate: true,
	})

	return &Handler{
		store:   s,
		queue:   queue,
		archive: archive,
		logger:  l,
		spec:    spec,
	}
}

// Routes returns the router with all routes configured.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.requestIDHeader)

	// Health endpoints
	r.Get("/health", h.handleHealth)
	r.Get("/ready", h.handleReady)

	// API documentation
	r.Get("/openapi.json", h.spec.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(h.jsonContentType)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.handleListProducts)
			r.Post("/", h.handleCreateProduct)
			r.Post("/bulk", h.handleBulkCreateProducts)
			r.Get("/{id}", h.handleGetProduct)
			r.Put("/{id}", h.handleUpdateProduct)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.handleListOrders)
			r.Post("/", h.handleCreateOrder)
			r.Get("/{id}", h.handleGetOrder)
			r.Put("/{id}", h.handleUpdateOrder)
			r.Post("/{id}/cancel", h.handleCancelOrder)
			r.Post("/{id}/complete", h.handleCompleteOrder)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", h.handleListCustomers)
			r.Post("/", h.handleCreateCustomer)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/", h.handleListReports)
			r.Post("/", h.handleCreateReport)
			r.Get("/download", h.handleDownloadReportByName)
			r.Get("/{id}", h.handleGetReport)
			r.Get("/{id}/download", h.handleDownloadReport)
		})
	})

	return r
}

// =============================================================================
// Middleware
// =============================================================================

// jsonContentType sets Content-Type header to application/json.
func (h *Handler) jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// requestIDHeader copies the request ID to the response header.
func (h *Handler) requestIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			w.Header().Set("X-Request-ID", reqID)
		}
		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// Health Handlers
// =============================================================================

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	ready := true

	if _, err := h.store.ListProducts(r.Context(), store.ListOptions{Limit: 1}); err != nil {
		checks["database"] = "failed"
		ready = false
	} else {
		checks["database"] = "ok"
	}

	if err := h.queue.Ping(); err != nil {
		checks["queue"] = "failed"
		ready = false
	} else {
		checks["queue"] = "ok"
	}

	if !ready {
		h.writeJSON(w, http.StatusServiceUnavailable, ReadyResponse{
			Status: "not_ready",
			Checks: checks,
		})
		return
	}

	h.writeJSON(w, http.StatusOK, ReadyResponse{
		Status: "ready",
		Checks: checks,
	})
}

// =============================================================================
// Product Handlers
// =============================================================================

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	if field, msg := validation.ValidateCreateProductFields(req.Name, req.Stock, req.PriceCents, req.CostPriceCents); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	product, err := domain.NewProduct(req.Name, req.Description, req.Stock, domain.Cents(req.PriceCents), domain.Cents(req.CostPriceCents))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), "validation_error")
		return
	}

	if err := h.store.CreateProduct(r.Context(), product); err != nil {
		h.logger.Error("failed to create product", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create product", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusCreated, productToResponse(product))
}

func (h *Handler) handleBulkCreateProducts(w http.ResponseWriter, r *http.Request) {
	var req BulkCreateProductsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}
	if len(req.Products) == 0 {
		h.writeError(w, http.StatusBadRequest, "products must not be empty", "validation_error")
		return
	}

	products := make([]*domain.Product, 0, len(req.Products))
	for i, p := range req.Products {
		if field, msg := validation.ValidateCreateProductFields(p.Name, p.Stock, p.PriceCents, p.CostPriceCents); field != "" {
			h.writeError(w, http.StatusBadRequest, "products["+strconv.Itoa(i)+"]: "+msg, "validation_error")
			return
		}
		product, err := domain.NewProduct(p.Name, p.Description, p.Stock, domain.Cents(p.PriceCents), domain.Cents(p.CostPriceCents))
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "products["+strconv.Itoa(i)+"]: "+err.Error(), "validation_error")
			return
		}
		products = append(products, product)
	}

	if err := h.store.CreateProducts(r.Context(), products); err != nil {
		h.logger.Error("failed to bulk create products", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create products", "internal_error")
		return
	}

	resp := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, productToResponse(p))
	}
	h.writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	product, err := h.store.GetProduct(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "product not found", "product_not_found")
			return
		}
		h.logger.Error("failed to get product", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get product", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, productToResponse(product))
}

func (h *Handler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	if field, msg := validation.ValidateCreateProductFields(req.Name, req.Stock, req.PriceCents, req.CostPriceCents); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	product, err := h.store.GetProduct(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "product not found", "product_not_found")
			return
		}
		h.logger.Error("failed to get product", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get product", "internal_error")
		return
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Stock = req.Stock
	product.PriceCents = domain.Cents(req.PriceCents)
	product.CostPriceCents = domain.Cents(req.CostPriceCents)
	product.UpdatedAt = time.Now().UTC()

	if err := h.store.UpdateProduct(r.Context(), product); err != nil {
		h.logger.Error("failed to update product", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to update product", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, productToResponse(product))
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	opts := h.listOptions(r)

	products, err := h.store.ListProducts(r.Context(), opts)
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list products", "internal_error")
		return
	}

	resp := ListProductsResponse{
		Products: make([]ProductResponse, 0, len(products)),
		Total:    len(products),
		Limit:    opts.Limit,
		Offset:   opts.Offset,
	}
	for i := range products {
		resp.Products = append(resp.Products, productToResponse(&products[i]))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Customer Handlers
// =============================================================================

func (h *Handler) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	if field, msg := validation.ValidateCreateCustomerFields(req.Username, req.Password); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create customer", "internal_error")
		return
	}

	customer, err := domain.NewCustomer(req.Username, req.Email, string(hash))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), "validation_error")
		return
	}

	if err := h.store.CreateCustomer(r.Context(), customer); err != nil {
		if isDuplicate(err) {
			h.writeError(w, http.StatusConflict, "username already taken", "username_exists")
			return
		}
		h.logger.Error("failed to create customer", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create customer", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusCreated, customerToResponse(customer))
}

func (h *Handler) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	opts := h.listOptions(r)

	customers, err := h.store.ListCustomers(r.Context(), opts)
	if err != nil {
		h.logger.Error("failed to list customers", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list customers", "internal_error")
		return
	}

	resp := ListCustomersResponse{
		Customers: make([]CustomerResponse, 0, len(customers)),
		Total:     len(customers),
		Limit:     opts.Limit,
		Offset:    opts.Offset,
	}
	for i := range customers {
		resp.Customers = append(resp.Customers, customerToResponse(&customers[i]))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Helpers
// =============================================================================

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode JSON", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message, code string) {
	h.writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// parseID reads the {id} URL parameter, writing a 400 response when invalid.
func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, http.StatusBadRequest, "invalid id", "validation_error")
		return 0, false
	}
	return id, true
}

// listOptions reads pagination parameters from the query string.
func (h *Handler) listOptions(r *http.Request) store.ListOptions {
	opts := store.DefaultListOptions()
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Offset = n
		}
	}
	return opts.Normalize()
}

func productToResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Stock:          p.Stock,
		PriceCents:     int64(p.PriceCents),
		CostPriceCents: int64(p.CostPriceCents),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func customerToResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Username:  c.Username,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}

func orderToResponse(o *domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Status:     string(o.Status),
		Lines:      make([]OrderLineResponse, 0, len(o.Lines)),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, OrderLineResponse{
			ID:             l.ID,
			ProductID:      l.ProductID,
			ProductName:    l.ProductName,
			Quantity:       l.Quantity,
			UnitPriceCents: int64(l.UnitPriceCents),
		})
	}
	return resp
}

func reportToResponse(rep *domain.SummaryReport) ReportResponse {
	return ReportResponse{
		ID:         rep.ID,
		Name:       rep.Name,
		FirstDate:  rep.FirstDate,
		SecondDate: rep.SecondDate,
		FilePath:   rep.FilePath,
		CreatedAt:  rep.CreatedAt,
		UpdatedAt:  rep.UpdatedAt,
	}
}

// isNotFound checks if an error is a not found error.
func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

// isDuplicate checks if an error is a unique constraint violation.
func isDuplicate(err error) bool {
	return errors.Is(err, store.ErrDuplicateName)
}

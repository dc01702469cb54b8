package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/storekit/storefront/internal/core/domain"
	"github.com/storekit/storefront/internal/core/validation"
	"github.com/storekit/storefront/internal/shell/store"
)

// =============================================================================
// Request Failures
// =============================================================================

// requestError carries an HTTP status and error code out of a transaction
// closure so the handler can translate store-level failures into responses.
type requestError struct {
	Status  int
	Message string
	Code    string
}

func (e *requestError) Error() string {
	return e.Message
}

func newRequestError(status int, message, code string) *requestError {
	return &requestError{Status: status, Message: message, Code: code}
}

// writeRequestError writes a requestError if err carries one, otherwise a 500.
func (h *Handler) writeRequestError(w http.ResponseWriter, err error, op string) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		h.writeError(w, reqErr.Status, reqErr.Message, reqErr.Code)
		return
	}
	h.logger.Error(op, "error", err)
	h.writeError(w, http.StatusInternalServerError, op, "internal_error")
}

// =============================================================================
// Order Handlers
// =============================================================================

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	if req.CustomerID <= 0 {
		h.writeError(w, http.StatusBadRequest, "customer_id is required", "validation_error")
		return
	}
	lines := make([]validation.OrderLineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, validation.OrderLineInput{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	if field, msg := validation.ValidateOrderLines(lines); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	if _, err := h.store.GetCustomer(r.Context(), req.CustomerID); err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "customer not found", "customer_not_found")
			return
		}
		h.logger.Error("failed to get customer", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create order", "internal_error")
		return
	}

	var order *domain.Order
	err := h.store.WithTx(r.Context(), func(tx store.Store) error {
		orderLines := make([]domain.OrderLine, 0, len(req.Lines))

		// Reserve stock line by line; any failure rolls everything back.
		for _, l := range req.Lines {
			product, err := tx.GetProduct(r.Context(), l.ProductID)
			if err != nil {
				if isNotFound(err) {
					return newRequestError(http.StatusNotFound, "product not found", "product_not_found")
				}
				return err
			}
			if err := product.Reserve(l.Quantity); err != nil {
				if errors.Is(err, domain.ErrInsufficientStock) {
					return newRequestError(http.StatusConflict, "not enough stock for product "+product.Name, "insufficient_stock")
				}
				return newRequestError(http.StatusBadRequest, err.Error(), "validation_error")
			}
			if err := tx.UpdateProduct(r.Context(), product); err != nil {
				return err
			}
			orderLines = append(orderLines, domain.OrderLine{
				ProductID:      product.ID,
				ProductName:    product.Name,
				Quantity:       l.Quantity,
				UnitPriceCents: product.PriceCents,
			})
		}

		var err error
		order, err = domain.NewOrder(req.CustomerID, orderLines)
		if err != nil {
			return newRequestError(http.StatusBadRequest, err.Error(), "validation_error")
		}
		return tx.CreateOrder(r.Context(), order)
	})
	if err != nil {
		h.writeRequestError(w, err, "failed to create order")
		return
	}

	h.writeJSON(w, http.StatusCreated, orderToResponse(order))
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	order, err := h.store.GetOrder(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "order not found", "order_not_found")
			return
		}
		h.logger.Error("failed to get order", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get order", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, orderToResponse(order))
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	opts := h.listOptions(r)

	orders, err := h.store.ListOrders(r.Context(), opts)
	if err != nil {
		h.logger.Error("failed to list orders", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list orders", "internal_error")
		return
	}

	resp := ListOrdersResponse{
		Orders: make([]OrderResponse, 0, len(orders)),
		Total:  len(orders),
		Limit:  opts.Limit,
		Offset: opts.Offset,
	}
	for i := range orders {
		resp.Orders = append(resp.Orders, orderToResponse(&orders[i]))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// handleUpdateOrder replaces the lines of a stable order. Every line already
// on the order must appear in the request; quantities are adjusted against
// current stock counting what the order already reserves.
func (h *Handler) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	lines := make([]validation.OrderLineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, validation.OrderLineInput{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	if field, msg := validation.ValidateOrderLines(lines); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	var order *domain.Order
	err := h.store.WithTx(r.Context(), func(tx store.Store) error {
		var err error
		order, err = tx.GetOrder(r.Context(), id)
		if err != nil {
			if isNotFound(err) {
				return newRequestError(http.StatusNotFound, "order not found", "order_not_found")
			}
			return err
		}

		if allowed, reason := validation.CanEditOrder(order.Status); !allowed {
			return newRequestError(http.StatusConflict, reason, "order_not_editable")
		}

		requested := make(map[int64]int, len(req.Lines))
		for _, l := range req.Lines {
			requested[l.ProductID] = l.Quantity
		}
		for _, existing := range order.Lines {
			if _, ok := requested[existing.ProductID]; !ok {
				return newRequestError(http.StatusBadRequest, "existing order lines cannot be removed", "validation_error")
			}
		}

		newLines := make([]domain.OrderLine, 0, len(req.Lines))
		for _, l := range req.Lines {
			product, err := tx.GetProduct(r.Context(), l.ProductID)
			if err != nil {
				if isNotFound(err) {
					return newRequestError(http.StatusNotFound, "product not found", "product_not_found")
				}
				return err
			}

			oldQty := 0
			unitPrice := product.PriceCents
			if existing, ok := order.LineFor(l.ProductID); ok {
				oldQty = existing.Quantity
				unitPrice = existing.UnitPriceCents
			}

			if err := product.Adjust(oldQty, l.Quantity); err != nil {
				if errors.Is(err, domain.ErrInsufficientStock) {
					return newRequestError(http.StatusConflict, "not enough stock for product "+product.Name, "insufficient_stock")
				}
				return newRequestError(http.StatusBadRequest, err.Error(), "validation_error")
			}
			if err := tx.UpdateProduct(r.Context(), product); err != nil {
				return err
			}

			newLines = append(newLines, domain.OrderLine{
				ProductID:      product.ID,
				ProductName:    product.Name,
				Quantity:       l.Quantity,
				UnitPriceCents: unitPrice,
			})
		}

		if err := tx.UpdateOrderLines(r.Context(), order.ID, newLines); err != nil {
			return err
		}

		order, err = tx.GetOrder(r.Context(), order.ID)
		return err
	})
	if err != nil {
		h.writeRequestError(w, err, "failed to update order")
		return
	}

	h.writeJSON(w, http.StatusOK, orderToResponse(order))
}

// handleCancelOrder cancels a stable order and restores the reserved stock.
func (h *Handler) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var order *domain.Order
	err := h.store.WithTx(r.Context(), func(tx store.Store) error {
		var err error
		order, err = tx.GetOrder(r.Context(), id)
		if err != nil {
			if isNotFound(err) {
				return newRequestError(http.StatusNotFound, "order not found", "order_not_found")
			}
			return err
		}

		if allowed, reason := validation.CanCancelOrder(order.Status); !allowed {
			return newRequestError(http.StatusConflict, reason, "invalid_transition")
		}

		for _, line := range order.Lines {
			product, err := tx.GetProduct(r.Context(), line.ProductID)
			if err != nil {
				return err
			}
			if err := product.Release(line.Quantity); err != nil {
				return err
			}
			if err := tx.UpdateProduct(r.Context(), product); err != nil {
				return err
			}
		}

		if err := tx.UpdateOrderStatus(r.Context(), order.ID, domain.OrderCancelled); err != nil {
			return err
		}
		order.Status = domain.OrderCancelled
		return nil
	})
	if err != nil {
		h.writeRequestError(w, err, "failed to cancel order")
		return
	}

	h.writeJSON(w, http.StatusOK, orderToResponse(order))
}

// handleCompleteOrder marks a stable order as completed. Stock is untouched;
// the units were already reserved at creation.
func (h *Handler) handleCompleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	order, err := h.store.GetOrder(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "order not found", "order_not_found")
			return
		}
		h.logger.Error("failed to get order", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to complete order", "internal_error")
		return
	}

	if allowed, reason := validation.CanCompleteOrder(order.Status); !allowed {
		h.writeError(w, http.StatusConflict, reason, "invalid_transition")
		return
	}

	if err := h.store.UpdateOrderStatus(r.Context(), order.ID, domain.OrderCompleted); err != nil {
		h.logger.Error("failed to complete order", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to complete order", "internal_error")
		return
	}
	order.Status = domain.OrderCompleted

	h.writeJSON(w, http.StatusOK, orderToResponse(order))
}

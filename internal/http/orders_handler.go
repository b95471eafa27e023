package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type OrderReader interface {
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, customerID *uuid.UUID) ([]*domain.Order, error)
}

type CustomerLookup interface {
	GetCustomerByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
}

type OrdersHandler struct {
	orders    OrderReader
	customers CustomerLookup
	timeout   time.Duration
}

// NewOrdersHandler builds the order read endpoints. customers may be nil, in which
// case orders are returned without the embedded customer.
func NewOrdersHandler(orders OrderReader, customers CustomerLookup, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		orders:    orders,
		customers: customers,
		timeout:   timeout,
	}
}

type ListOrdersResponse struct {
	Success bool       `json:"success"`
	Orders  []OrderDTO `json:"orders"`
}

type GetOrderResponse struct {
	Success bool     `json:"success"`
	Order   OrderDTO `json:"order"`
}

// ListOrders handles GET /api/v1/orders?customer_id=
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	var customerID *uuid.UUID
	if raw := r.URL.Query().Get("customer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "customer_id must be a valid UUID")
			return
		}
		customerID = &id
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := h.orders.ListOrders(ctx, customerID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	customers := make(map[uuid.UUID]*domain.Customer)
	dtos := make([]OrderDTO, 0, len(orders))
	for _, o := range orders {
		dto, err := h.withCustomer(ctx, o, customers)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		dtos = append(dtos, dto)
	}
	respondJSON(w, http.StatusOK, ListOrdersResponse{Success: true, Orders: dtos})
}

// GetOrder handles GET /api/v1/orders/{order_id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "order_id must be a valid UUID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	order, err := h.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	dto, err := h.withCustomer(ctx, order, make(map[uuid.UUID]*domain.Customer))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, GetOrderResponse{Success: true, Order: dto})
}

// withCustomer converts an order and embeds its customer, resolving each id once per request.
func (h *OrdersHandler) withCustomer(ctx context.Context, o *domain.Order, seen map[uuid.UUID]*domain.Customer) (OrderDTO, error) {
	dto := convertOrder(o)
	if h.customers == nil || o.CustomerID == nil {
		return dto, nil
	}

	c, ok := seen[*o.CustomerID]
	if !ok {
		var err error
		c, err = h.customers.GetCustomerByID(ctx, *o.CustomerID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return OrderDTO{}, err
		}
		seen[*o.CustomerID] = c
	}
	dto.Customer = convertCustomer(c)
	return dto, nil
}

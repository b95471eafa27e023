package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fjod/go_pos/internal/domain"
)

type CustomerService interface {
	FindByPhone(ctx context.Context, phone string) (*domain.Customer, bool, error)
	Register(ctx context.Context, in domain.NewCustomer) (*domain.Customer, error)
}

type CustomerHandler struct {
	customers CustomerService
	timeout   time.Duration
}

func NewCustomerHandler(customers CustomerService, timeout time.Duration) *CustomerHandler {
	return &CustomerHandler{
		customers: customers,
		timeout:   timeout,
	}
}

type CreateCustomerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	IsMember  bool   `json:"is_member"`
}

type CustomerLookupResponse struct {
	Customer   *CustomerDTO `json:"customer"`
	IsExisting bool         `json:"is_existing"`
}

// Lookup handles GET /api/v1/customers?phone=
// A phone with no customer is a normal answer, not a 404.
func (h *CustomerHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "phone is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	c, found, err := h.customers.FindByPhone(ctx, phone)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, CustomerLookupResponse{
		Customer:   convertCustomer(c),
		IsExisting: found,
	})
}

// Create handles POST /api/v1/customers
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	c, err := h.customers.Register(ctx, domain.NewCustomer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		IsMember:  req.IsMember,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, convertCustomer(c))
}

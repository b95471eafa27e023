package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fjod/go_pos/internal/checkout"
	"github.com/fjod/go_pos/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CheckoutHandler struct {
	checkout checkout.CheckoutService
	timeout  time.Duration
}

func NewCheckoutHandler(svc checkout.CheckoutService, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: svc,
		timeout:  timeout,
	}
}

type CartItemRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Price     *decimal.Decimal `json:"price"`
}

type CheckoutRequest struct {
	CustomerID    string            `json:"customer_id"`
	CustomerEmail string            `json:"customer_email"`
	Items         []CartItemRequest `json:"items"`
	PaymentMethod string            `json:"payment_method"`
}

type CheckoutResponse struct {
	Success       bool              `json:"success"`
	Order         OrderDTO          `json:"order"`
	TransactionID string            `json:"transaction_id"`
	RepricedItems []RepricedItemDTO `json:"repriced_items"`
}

type PreviewResponse struct {
	Items         []OrderItemDTO    `json:"items"`
	Tier          string            `json:"tier"`
	Subtotal      string            `json:"subtotal"`
	Discount      string            `json:"discount"`
	Tax           string            `json:"tax"`
	Total         string            `json:"total"`
	RepricedItems []RepricedItemDTO `json:"repriced_items"`
}

// Checkout handles POST /api/v1/orders
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	request, ok := decodeCheckoutRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp, err := h.checkout.Checkout(ctx, request)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, CheckoutResponse{
		Success:       true,
		Order:         convertOrder(resp.Order),
		TransactionID: resp.TransactionID,
		RepricedItems: convertRepriced(resp.Repriced),
	})
}

// Preview handles POST /api/v1/pricing/preview
func (h *CheckoutHandler) Preview(w http.ResponseWriter, r *http.Request) {
	request, ok := decodeCheckoutRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	preview, err := h.checkout.Preview(ctx, request)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, PreviewResponse{
		Items:         convertItems(preview.Items),
		Tier:          preview.Tier.String(),
		Subtotal:      money(preview.Subtotal),
		Discount:      money(preview.Discount),
		Tax:           money(preview.Tax),
		Total:         money(preview.Total),
		RepricedItems: convertRepriced(preview.Repriced),
	})
}

func decodeCheckoutRequest(w http.ResponseWriter, r *http.Request) (*domain.CheckoutRequest, bool) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return nil, false
	}

	request := &domain.CheckoutRequest{
		CustomerEmail: req.CustomerEmail,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		Items:         make([]domain.CartLine, 0, len(req.Items)),
	}
	if req.CustomerID != "" {
		id, err := uuid.Parse(req.CustomerID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "validation_error", "customer_id must be a valid UUID")
			return nil, false
		}
		request.CustomerID = &id
	}
	for _, item := range req.Items {
		request.Items = append(request.Items, domain.CartLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return request, true
}

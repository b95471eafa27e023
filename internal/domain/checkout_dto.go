package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one line of the client cart. Price is the client's preview, nil when none was
// sent, and is never persisted.
type CartLine struct {
	ProductID string
	Quantity  int
	Price     *decimal.Decimal
}

type CheckoutRequest struct {
	CustomerID    *uuid.UUID
	CustomerEmail string
	Items         []CartLine
	PaymentMethod PaymentMethod
}

// RepricedLine reports a cart line whose preview price differs from the catalog.
type RepricedLine struct {
	ProductID   string
	ClientPrice decimal.Decimal
	Price       decimal.Decimal
}

type CheckoutResponse struct {
	Order         *Order
	TransactionID string
	Status        CheckoutStatus
	Repriced      []RepricedLine
}

// PricingPreview is the authoritative breakdown shown before payment.
type PricingPreview struct {
	Items    []OrderItem
	Tier     CustomerTier
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
	Repriced []RepricedLine
}

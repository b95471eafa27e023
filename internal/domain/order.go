package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultCurrency = "INR"

type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "completed"
)

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodUPI  PaymentMethod = "upi"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodUPI:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}

// OrderItem is the price snapshot of one line, frozen when the order is created.
type OrderItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

// Order is append-only. Pricing fields are never recomputed after creation.
type Order struct {
	ID            uuid.UUID
	CustomerID    *uuid.UUID
	Items         []OrderItem
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	Currency      string
	PaymentMethod PaymentMethod
	TransactionID string
	Status        OrderStatus
	CreatedAt     time.Time
}

// OrderSummary is the payload handed to the notification pipeline.
type OrderSummary struct {
	OrderID       string          `json:"order_id"`
	CustomerName  string          `json:"customer_name"`
	Email         string          `json:"email"`
	Items         []OrderItem     `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	TransactionID string          `json:"transaction_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

func NewOrderSummary(o *Order, customer *Customer, email string) OrderSummary {
	s := OrderSummary{
		OrderID:       o.ID.String(),
		Email:         email,
		Items:         o.Items,
		Subtotal:      o.Subtotal,
		Discount:      o.Discount,
		Tax:           o.Tax,
		Total:         o.Total,
		Currency:      o.Currency,
		PaymentMethod: o.PaymentMethod,
		TransactionID: o.TransactionID,
		CreatedAt:     o.CreatedAt,
	}
	if customer != nil {
		s.CustomerName = customer.FullName()
	}
	return s
}

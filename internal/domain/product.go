package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Products    []*Product `json:"products,omitempty"`
}

// Product is the authoritative catalog record. TaxRate is a percentage in [0,100].
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	CategoryID  string          `json:"category_id"`
	SKU         string          `json:"sku"`
	ImageURL    string          `json:"image_url"`
	CreatedAt   time.Time       `json:"created_at"`
}

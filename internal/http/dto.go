package http

import (
	"time"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/shopspring/decimal"
)

// money renders an amount with exactly two decimals.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type ProductDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	TaxRate     string `json:"tax_rate"`
	CategoryID  string `json:"category_id"`
	SKU         string `json:"sku"`
	ImageURL    string `json:"image_url"`
}

type CategoryDTO struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Products    []ProductDTO `json:"products"`
}

type CustomerDTO struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	IsMember  bool   `json:"is_member"`
	CreatedAt string `json:"created_at"`
}

type OrderItemDTO struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	TaxRate     string `json:"tax_rate"`
}

type OrderDTO struct {
	ID            string         `json:"id"`
	CustomerID    *string        `json:"customer_id"`
	Customer      *CustomerDTO   `json:"customer,omitempty"`
	Items         []OrderItemDTO `json:"items"`
	Subtotal      string         `json:"subtotal"`
	Discount      string         `json:"discount"`
	Tax           string         `json:"tax"`
	Total         string         `json:"total"`
	Currency      string         `json:"currency"`
	PaymentMethod string         `json:"payment_method"`
	TransactionID string         `json:"transaction_id"`
	Status        string         `json:"status"`
	CreatedAt     string         `json:"created_at"`
}

type RepricedItemDTO struct {
	ProductID   string `json:"product_id"`
	ClientPrice string `json:"client_price"`
	Price       string `json:"price"`
}

func convertProduct(p *domain.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       money(p.Price),
		TaxRate:     p.TaxRate.String(),
		CategoryID:  p.CategoryID,
		SKU:         p.SKU,
		ImageURL:    p.ImageURL,
	}
}

func convertProducts(products []*domain.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, convertProduct(p))
	}
	return dtos
}

func convertCustomer(c *domain.Customer) *CustomerDTO {
	if c == nil {
		return nil
	}
	return &CustomerDTO{
		ID:        c.ID.String(),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		Email:     c.Email,
		IsMember:  c.IsMember,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func convertItems(items []domain.OrderItem) []OrderItemDTO {
	dtos := make([]OrderItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, OrderItemDTO{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   money(item.UnitPrice),
			TaxRate:     item.TaxRate.String(),
		})
	}
	return dtos
}

func convertOrder(o *domain.Order) OrderDTO {
	dto := OrderDTO{
		ID:            o.ID.String(),
		Items:         convertItems(o.Items),
		Subtotal:      money(o.Subtotal),
		Discount:      money(o.Discount),
		Tax:           money(o.Tax),
		Total:         money(o.Total),
		Currency:      o.Currency,
		PaymentMethod: o.PaymentMethod.String(),
		TransactionID: o.TransactionID,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt.UTC().Format(time.RFC3339),
	}
	if o.CustomerID != nil {
		id := o.CustomerID.String()
		dto.CustomerID = &id
	}
	return dto
}

func convertRepriced(lines []domain.RepricedLine) []RepricedItemDTO {
	dtos := make([]RepricedItemDTO, 0, len(lines))
	for _, l := range lines {
		dtos = append(dtos, RepricedItemDTO{
			ProductID:   l.ProductID,
			ClientPrice: money(l.ClientPrice),
			Price:       money(l.Price),
		})
	}
	return dtos
}

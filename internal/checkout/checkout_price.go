package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	d "github.com/fjod/go_pos/internal/domain"
	"github.com/fjod/go_pos/internal/pricing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// pricedCart is a cart priced on authoritative data.
type pricedCart struct {
	customer  *d.Customer
	tier      d.CustomerTier
	items     []d.OrderItem
	breakdown pricing.Breakdown
	repriced  []d.RepricedLine
}

// Preview prices a cart without charging or persisting anything.
func (s *CheckoutServiceImpl) Preview(ctx context.Context, request *d.CheckoutRequest) (*d.PricingPreview, error) {
	if err := validateItems(request); err != nil {
		return nil, err
	}

	cart, err := s.price(ctx, request)
	if err != nil {
		return nil, err
	}

	return &d.PricingPreview{
		Items:    cart.items,
		Tier:     cart.tier,
		Subtotal: cart.breakdown.Subtotal,
		Discount: cart.breakdown.Discount,
		Tax:      cart.breakdown.Tax,
		Total:    cart.breakdown.Total,
		Repriced: cart.repriced,
	}, nil
}

func (s *CheckoutServiceImpl) price(ctx context.Context, request *d.CheckoutRequest) (*pricedCart, error) {
	ctx, span := s.tracer.Start(ctx, "checkout.price")
	defer span.End()

	cart, err := s.buildCart(ctx, request)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "pricing failed")
		return nil, err
	}
	span.SetAttributes(
		attribute.String("checkout.tier", cart.tier.String()),
		attribute.String("checkout.total", cart.breakdown.Total.StringFixed(2)),
	)
	return cart, nil
}

func (s *CheckoutServiceImpl) buildCart(ctx context.Context, request *d.CheckoutRequest) (*pricedCart, error) {
	cust, err := s.lookupCustomer(ctx, request)
	if err != nil {
		return nil, err
	}

	products, err := s.lookupProducts(ctx, request.Items)
	if err != nil {
		return nil, err
	}

	cart := &pricedCart{
		customer: cust,
		tier:     d.TierFor(cust),
		items:    make([]d.OrderItem, 0, len(request.Items)),
	}
	lines := make([]pricing.Line, 0, len(request.Items))
	for _, item := range request.Items {
		p := products[item.ProductID]
		lines = append(lines, pricing.Line{
			ProductID: p.ID,
			Quantity:  item.Quantity,
			UnitPrice: p.Price,
			TaxRate:   p.TaxRate,
		})
		cart.items = append(cart.items, d.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			SKU:         p.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   p.Price,
			TaxRate:     p.TaxRate,
		})
		if item.Price != nil && !item.Price.Equal(p.Price) {
			cart.repriced = append(cart.repriced, d.RepricedLine{
				ProductID:   p.ID,
				ClientPrice: *item.Price,
				Price:       p.Price,
			})
		}
	}

	breakdown, err := pricing.Calculate(lines, cart.tier)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %v", d.ErrValidation, err)
		}
		return nil, err
	}
	cart.breakdown = breakdown
	return cart, nil
}

// lookupCustomer returns nil for walk-in checkouts. A given but unknown id is NotFound.
func (s *CheckoutServiceImpl) lookupCustomer(ctx context.Context, request *d.CheckoutRequest) (*d.Customer, error) {
	if request.CustomerID == nil {
		return nil, nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.customer.timeout)
	defer cancel()

	c, err := s.customer.customers.GetCustomerByID(lookupCtx, *request.CustomerID)
	if errors.Is(err, d.ErrNotFound) {
		return nil, fmt.Errorf("%w: customer %s", d.ErrNotFound, request.CustomerID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: lookup customer: %v", d.ErrFailed, err)
	}
	return c, nil
}

// lookupProducts fetches each distinct product once and reports every id the catalog lacks.
func (s *CheckoutServiceImpl) lookupProducts(ctx context.Context, items []d.CartLine) (map[string]*d.Product, error) {
	ids := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.product.timeout)
	defer cancel()

	found, err := s.product.products.GetProductsByIDs(lookupCtx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup products: %v", d.ErrFailed, err)
	}

	byID := make(map[string]*d.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	var missing []string
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: products %s", d.ErrNotFound, strings.Join(missing, ", "))
	}
	return byID, nil
}

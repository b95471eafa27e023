package checkout

import (
	"fmt"

	"github.com/fjod/go_pos/internal/customer"
	d "github.com/fjod/go_pos/internal/domain"
)

func validateRequest(request *d.CheckoutRequest) error {
	if err := validateItems(request); err != nil {
		return err
	}
	if request.PaymentMethod == "" {
		return fmt.Errorf("%w: payment method is required", d.ErrValidation)
	}
	if !request.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: unsupported payment method %q", d.ErrValidation, request.PaymentMethod)
	}
	if request.CustomerEmail != "" && !customer.ValidEmail(request.CustomerEmail) {
		return fmt.Errorf("%w: invalid customer email", d.ErrValidation)
	}
	return nil
}

// validateItems checks the cart shape. Prices are checked later against the catalog.
func validateItems(request *d.CheckoutRequest) error {
	if request == nil || len(request.Items) == 0 {
		return fmt.Errorf("%w: items are required", d.ErrValidation)
	}
	for i, item := range request.Items {
		if item.ProductID == "" {
			return fmt.Errorf("%w: item %d has no product id", d.ErrValidation, i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item %d quantity must be positive, got %d", d.ErrValidation, i, item.Quantity)
		}
		if item.Price != nil && item.Price.IsNegative() {
			return fmt.Errorf("%w: item %d price must not be negative", d.ErrValidation, i)
		}
	}
	return nil
}

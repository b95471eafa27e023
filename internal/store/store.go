package store

import (
	"fmt"

	"github.com/fjod/go_pos/internal/domain"
)

// Errors wrap the domain kinds so callers can branch with errors.Is on either.
var (
	ErrProductNotFound  = fmt.Errorf("product %w", domain.ErrNotFound)
	ErrCustomerNotFound = fmt.Errorf("customer %w", domain.ErrNotFound)
	ErrCustomerExists   = fmt.Errorf("%w: customer with this phone already exists", domain.ErrConflict)
	ErrOrderNotFound    = fmt.Errorf("order %w", domain.ErrNotFound)
	ErrOrderExists      = fmt.Errorf("%w: order already recorded", domain.ErrConflict)
	ErrBrokenTotal      = fmt.Errorf("%w: total must equal subtotal - discount + tax", domain.ErrValidation)
)

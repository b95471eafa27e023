package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the checkout core. Wrap them with fmt.Errorf("%w: ...") and test with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrDeclined   = errors.New("payment declined")
	ErrFailed     = errors.New("checkout failed")
)

// DeclineError carries the gateway's refusal reason.
type DeclineError struct {
	Reason string
}

func (e *DeclineError) Error() string {
	return fmt.Sprintf("Payment failed: %v", e.Reason)
}

func (e *DeclineError) Is(target error) bool {
	return target == ErrDeclined
}

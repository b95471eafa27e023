package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeclineError_IsDeclined(t *testing.T) {
	err := fmt.Errorf("charge: %w", &DeclineError{Reason: "insufficient funds"})

	assert.ErrorIs(t, err, ErrDeclined)
	assert.NotErrorIs(t, err, ErrFailed)

	var decline *DeclineError
	assert.True(t, errors.As(err, &decline))
	assert.Equal(t, "insufficient funds", decline.Reason)
}

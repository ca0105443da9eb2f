package xerrors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorMatchesInvalidInput(t *testing.T) {
	err := fmt.Errorf("create customer: %w", NewValidationError("Validation failed", "a", "b"))

	assert.True(t, Is(err, ErrInvalidInput))
	assert.False(t, Is(err, ErrNotFound))

	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "Validation failed", ve.Message)
	assert.Equal(t, []string{"a", "b"}, ve.Errors)
	assert.Equal(t, "Validation failed: a; b", ve.Error())
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ctx"))

	err := Wrap(ErrConflict, "insert customer")
	assert.True(t, Is(err, ErrConflict))
	assert.Equal(t, "insert customer: conflict: resource already exists", err.Error())
}

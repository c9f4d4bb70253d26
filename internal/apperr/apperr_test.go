package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	errStock := Validation("insufficient stock")

	t.Run("Direct sentinel", func(t *testing.T) {
		assert.Equal(t, KindValidation, KindOf(errStock))
	})

	t.Run("Wrapped sentinel keeps kind and identity", func(t *testing.T) {
		wrapped := fmt.Errorf("add to cart: %w", errStock)
		assert.Equal(t, KindValidation, KindOf(wrapped))
		assert.True(t, errors.Is(wrapped, errStock))
	})

	t.Run("Plain error is internal", func(t *testing.T) {
		assert.Equal(t, KindInternal, KindOf(errors.New("db down")))
	})

	t.Run("Is helper", func(t *testing.T) {
		assert.True(t, Is(NotFound("x"), KindNotFound))
		assert.False(t, Is(nil, KindNotFound))
	})
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "forbidden", KindForbidden.String())
	assert.Equal(t, "internal", Kind(99).String())
}

package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExternalWrapsOnce(t *testing.T) {
	cause := context.DeadlineExceeded
	err := External("order gateway", cause)

	assert.True(t, IsExternal(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "order gateway: context deadline exceeded", err.Error())

	wrapped := fmt.Errorf("place order: %w", err)
	assert.Same(t, wrapped, External("catalog", wrapped))
	assert.Nil(t, External("catalog", nil))
}

func TestIsNotFound(t *testing.T) {
	err := fmt.Errorf("lookup: %w", &ErrNotFound{Resource: "product", ID: "p1"})
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(errors.New("boom")))
	assert.Equal(t, "product not found: p1", errors.Unwrap(err).Error())
}

// File: api/errors_test.go
// Author: momentics <momentics@gmail.com>

package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodeString(t *testing.T) {
	assert.Equal(t, "internal", ErrCodeInternal.String())
	assert.Equal(t, "allocation failed", ErrCodeAllocationFailed.String())
	assert.Equal(t, "code(42)", ErrorCode(42).String())
}

func TestErrorMatchesByCode(t *testing.T) {
	cause := NewError(ErrCodeResourceExhausted, "out of pages")
	err := fmt.Errorf("grow: %w", WrapError(ErrCodeAllocationFailed, "ring grow failed", cause).
		WithContext("id", 3))

	assert.True(t, errors.Is(err, ErrAllocationFailed))
	assert.True(t, errors.Is(err, ErrResourceExhausted))
	assert.False(t, errors.Is(err, ErrContractViolation))
	assert.Equal(t, ErrCodeAllocationFailed, CodeOf(err))
	assert.Equal(t, ErrCodeOK, CodeOf(nil))
	assert.Equal(t, ErrCodeInternal, CodeOf(errors.New("plain")))
	assert.Contains(t, err.Error(), "out of pages")
	assert.Contains(t, err.Error(), "id:3")
}

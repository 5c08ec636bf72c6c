package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindAndCode(t *testing.T) {
	err := NotFound("event_not_found", "Event not found")
	assert.Equal(t, KindNotFound, err.Kind)
	assert.Equal(t, "event_not_found", err.Code)
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindConflict))
}

func TestAsThroughWrapping(t *testing.T) {
	inner := Conflict("username_taken", "Username already exists")
	wrapped := fmt.Errorf("register: %w", inner)

	got, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "username_taken", got.Code)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.Equal(t, "Internal server error", err.Message)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

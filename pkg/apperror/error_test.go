package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	err := New(http.StatusConflict, "conflict", "already exists")
	assert.Equal(t, "conflict: already exists", err.Error())

	wrapped := err.WithInternal(errors.New("duplicate key"))
	assert.Equal(t, "conflict: already exists (duplicate key)", wrapped.Error())
	assert.Equal(t, "duplicate key", errors.Unwrap(wrapped).Error())
}

func TestWithMessageCopies(t *testing.T) {
	custom := ErrNotFound.WithMessage("lock not found")
	assert.Equal(t, "lock not found", custom.Message)
	assert.Equal(t, "Resource not found", ErrNotFound.Message, "sentinel must not be mutated")
	assert.Equal(t, ErrNotFound.Code, custom.Code)
	assert.Equal(t, ErrNotFound.HTTPStatus, custom.HTTPStatus)
}

func TestWithDetails(t *testing.T) {
	err := ErrCellLocked.WithDetails(map[string]any{"locked_by": "user-1"})
	assert.Equal(t, "user-1", err.Details["locked_by"])
	assert.Nil(t, ErrCellLocked.Details)
}

func TestIsConflict(t *testing.T) {
	assert.True(t, IsConflict(ErrConflict))
	assert.True(t, IsConflict(ErrCellLocked))
	assert.True(t, IsConflict(NewConflict("pair taken")))
	assert.False(t, IsConflict(ErrNotFound))
	assert.False(t, IsConflict(errors.New("plain")))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrNotFound))
	assert.True(t, IsNotFound(NewNotFound("relationship", "abc")))
	assert.False(t, IsNotFound(ErrConflict))
	assert.False(t, IsNotFound(nil))
}

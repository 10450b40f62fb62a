package pgutils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("connection refused"), false},
		{"sqlstate prefix", errors.New(`ERROR: duplicate key value violates unique constraint "cell_locks_pair_key" (SQLSTATE 23505)`), true},
		{"bare code", errors.New("pq: 23505 duplicate key"), true},
		{"foreign key is not unique", errors.New("SQLSTATE 23503"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueViolation(tt.err))
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(errors.New("SQLSTATE 23503")))
	assert.False(t, IsForeignKeyViolation(errors.New("SQLSTATE 23505")))
	assert.False(t, IsForeignKeyViolation(nil))
}

package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampInt(t *testing.T) {
	assert.Equal(t, 5, ClampInt(5, 0, 10))
	assert.Equal(t, 0, ClampInt(-3, 0, 10))
	assert.Equal(t, 10, ClampInt(42, 0, 10))
}

func TestClampFloat(t *testing.T) {
	assert.Equal(t, 16.67, ClampFloat(16.67, 0, 100))
	assert.Equal(t, 0.0, ClampFloat(-0.5, 0, 100))
	assert.Equal(t, 100.0, ClampFloat(101.4, 0, 100))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 20, ClampLimit(0, 20, 100), "zero uses default")
	assert.Equal(t, 20, ClampLimit(-1, 20, 100), "negative uses default")
	assert.Equal(t, 50, ClampLimit(50, 20, 100))
	assert.Equal(t, 100, ClampLimit(500, 20, 100), "capped at max")
}

package helpers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeDivide(t *testing.T) {
	assert.Equal(t, 2.0, SafeDivide(10, 5))
	assert.Equal(t, 0.0, SafeDivide(10, 0))
	assert.Equal(t, 0.0, SafeDivide(0, 0))
	assert.Equal(t, 0.0, SafeDivide(math.NaN(), 5))
	assert.Equal(t, 0.0, SafeDivide(10, math.NaN()))
	assert.Equal(t, 0.0, SafeDivide(math.Inf(1), 5))
	assert.Equal(t, 0.0, SafeDivide(10, math.Inf(-1)))
}

func TestFinite(t *testing.T) {
	assert.Equal(t, 1.5, Finite(1.5))
	assert.Equal(t, 0.0, Finite(math.NaN()))
	assert.Equal(t, 0.0, Finite(math.Inf(1)))
	assert.Equal(t, 0.0, Finite(math.Inf(-1)))
}

func TestSum(t *testing.T) {
	assert.Equal(t, 6.0, Sum([]float64{1, 2, 3}))
	assert.Equal(t, 0.0, Sum(nil))
}

func TestPositiveNegativeRatio(t *testing.T) {
	assert.Equal(t, 2.0, PositiveNegativeRatio([]float64{1, 2, 3, -1, 4, -2}))
	assert.Equal(t, 0.0, PositiveNegativeRatio([]float64{1, 2, 3}))
}

func TestAllValuesPositive(t *testing.T) {
	assert.True(t, AllValuesPositive([]float64{1, 2, 3}))
	assert.False(t, AllValuesPositive([]float64{1, -2, 3}))
}

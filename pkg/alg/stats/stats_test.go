package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		val, lo, hi float64
		expected    float64
	}{
		{name: "within_range", val: 5.0, lo: 0.0, hi: 10.0, expected: 5.0},
		{name: "below_min", val: -1.0, lo: 0.0, hi: 10.0, expected: 0.0},
		{name: "above_max", val: 15.0, lo: 0.0, hi: 10.0, expected: 10.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Clamp(tt.val, tt.lo, tt.hi)
			assert.InDelta(t, tt.expected, got, 0.0001)
		})
	}
}

func TestMax(t *testing.T) {
	t.Parallel()

	t.Run("empty_returns_zero", func(t *testing.T) {
		t.Parallel()

		assert.InDelta(t, 0, Max([]float64{}), 0.0001)
	})

	t.Run("multiple_elements", func(t *testing.T) {
		t.Parallel()

		assert.InDelta(t, 9.0, Max([]float64{3.0, 1.0, 9.0, 4.0}), 0.0001)
	})

	t.Run("uint_counts", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, uint64(7), Max([]uint64{2, 7, 5}))
	})
}

func TestEMA(t *testing.T) {
	t.Parallel()

	ema := NewEMA(0.5)

	assert.InDelta(t, 0.0, ema.Value(), 0.0001)
	assert.InDelta(t, 10.0, ema.Update(10.0), 0.0001)
	assert.InDelta(t, 15.0, ema.Update(20.0), 0.0001)
	assert.InDelta(t, 15.0, ema.Value(), 0.0001)
}

package indicator

import (
	"math"
	"testing"

	"github.com/peterldowns/testy/assert"
)

func TestStochastic(t *testing.T) {
	highs := []float64{10, 11, 12}
	lows := []float64{8, 9, 10}
	closes := []float64{9, 10, 11}

	fastk, fastd := Stochastic(highs, lows, closes, 3)

	// Ensure entries before the window fills are undefined.
	assert.True(t, math.IsNaN(fastk[0]))
	assert.True(t, math.IsNaN(fastk[1]))

	// The close sits at 11 within the (8, 12) lookback range.
	assert.Equal(t, fastk[2], float64(75))

	// Ensure the %D smoothing waits for three defined %K entries.
	for idx := range fastd {
		assert.True(t, math.IsNaN(fastd[idx]))
	}
}

func TestStochasticFlatWindow(t *testing.T) {
	// Ensure a flat lookback window leaves the oscillator undefined.
	flat := []float64{5, 5, 5, 5}
	fastk, fastd := Stochastic(flat, flat, flat, 3)

	for idx := range fastk {
		assert.True(t, math.IsNaN(fastk[idx]))
		assert.True(t, math.IsNaN(fastd[idx]))
	}
}

func TestStochasticBounds(t *testing.T) {
	// Ensure every defined %K value stays within [0, 100].
	highs := []float64{10, 12, 11, 14, 13, 16, 15, 18}
	lows := []float64{8, 9, 8, 10, 9, 12, 11, 14}
	closes := []float64{9, 11, 10, 13, 12, 15, 14, 17}

	fastk, _ := Stochastic(highs, lows, closes, 3)
	for idx := range fastk {
		if math.IsNaN(fastk[idx]) {
			continue
		}
		assert.GreaterThanOrEqual(t, fastk[idx], float64(0))
		assert.LessThanOrEqual(t, fastk[idx], float64(100))
	}
}

package indicator

import (
	"math"
	"testing"

	"github.com/peterldowns/testy/assert"
)

func TestTrueRanges(t *testing.T) {
	highs := []float64{10, 12}
	lows := []float64{8, 9}
	closes := []float64{9, 11}

	ranges := trueRanges(highs, lows, closes)

	// The first entry has no previous close and falls back to its high-low range.
	assert.Equal(t, ranges[0], float64(2))

	// The second entry spans max(12-9, |12-9|, |9-9|).
	assert.Equal(t, ranges[1], float64(3))
}

func TestATR(t *testing.T) {
	highs := []float64{10, 12}
	lows := []float64{8, 9}
	closes := []float64{9, 11}

	atr := ATR(highs, lows, closes, 2)
	assert.True(t, math.IsNaN(atr[0]))
	assert.Equal(t, atr[1], 2.5)
}

func TestNATR(t *testing.T) {
	atr := []float64{math.NaN(), 2.5}
	closes := []float64{9, 10}

	natr := NATR(atr, closes)
	assert.True(t, math.IsNaN(natr[0]))
	assert.Equal(t, natr[1], float64(25))

	// Ensure a zero close leaves the value undefined.
	zeroed := NATR([]float64{1}, []float64{0})
	assert.True(t, math.IsNaN(zeroed[0]))
}

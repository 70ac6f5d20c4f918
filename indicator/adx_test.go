package indicator

import (
	"math"
	"testing"

	"github.com/peterldowns/testy/assert"
)

func TestADXUptrend(t *testing.T) {
	// A clean uptrend has no downward movement, so the directional index is
	// fully positive and the adx saturates at 100.
	highs := []float64{1, 2, 3, 4, 5}
	lows := []float64{0.5, 1.5, 2.5, 3.5, 4.5}
	closes := []float64{0.75, 1.75, 2.75, 3.75, 4.75}

	adx := ADX(highs, lows, closes, 2)

	// Ensure entries before both rolling windows fill are undefined.
	assert.True(t, math.IsNaN(adx[0]))
	assert.True(t, math.IsNaN(adx[1]))

	for idx := 2; idx < len(adx); idx++ {
		assert.LessThan(t, math.Abs(adx[idx]-100), 1e-9)
	}
}

func TestADXFlatSeries(t *testing.T) {
	// Ensure a flat series with zero true ranges stays undefined.
	flat := []float64{5, 5, 5, 5, 5}
	adx := ADX(flat, flat, flat, 2)

	for idx := range adx {
		assert.True(t, math.IsNaN(adx[idx]))
	}
}

func TestADXBounds(t *testing.T) {
	// Ensure every defined adx value stays within [0, 100].
	highs := []float64{10, 12, 11, 14, 13, 16, 15, 18, 17, 20}
	lows := []float64{8, 9, 8, 10, 9, 12, 11, 14, 13, 16}
	closes := []float64{9, 11, 10, 13, 12, 15, 14, 17, 16, 19}

	adx := ADX(highs, lows, closes, 3)
	for idx := range adx {
		if math.IsNaN(adx[idx]) {
			continue
		}
		assert.GreaterThanOrEqual(t, adx[idx], float64(0))
		assert.LessThanOrEqual(t, adx[idx], float64(100))
	}
}

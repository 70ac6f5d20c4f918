package indicator

import (
	"math"
	"testing"

	"github.com/peterldowns/testy/assert"
)

func TestBollingerBands(t *testing.T) {
	values := []float64{1, 2, 3}
	upper, middle, lower := BollingerBands(values, 3, 2)

	// Ensure entries before the window fills are undefined.
	assert.True(t, math.IsNaN(upper[0]))
	assert.True(t, math.IsNaN(middle[1]))
	assert.True(t, math.IsNaN(lower[1]))

	// Sample deviation of (1, 2, 3) is 1, so the bands sit two away from the mean.
	assert.Equal(t, middle[2], float64(2))
	assert.Equal(t, upper[2], float64(4))
	assert.Equal(t, lower[2], float64(0))
}

func TestBollingerBandOrdering(t *testing.T) {
	// Ensure lower <= middle <= upper wherever the bands are defined.
	values := []float64{10, 12, 11, 13, 9, 14, 8, 15, 7, 16}
	upper, middle, lower := BollingerBands(values, 5, 2)

	for idx := range values {
		if math.IsNaN(middle[idx]) {
			continue
		}
		assert.LessThanOrEqual(t, lower[idx], middle[idx])
		assert.LessThanOrEqual(t, middle[idx], upper[idx])
	}
}

func TestBollingerPercent(t *testing.T) {
	values := []float64{1, 2, 3}
	upper, _, lower := BollingerBands(values, 3, 2)

	percents := BollingerPercent(values, upper, lower)
	assert.True(t, math.IsNaN(percents[1]))
	assert.Equal(t, percents[2], 0.75)

	// Ensure a zero band width leaves the percent undefined.
	flat := []float64{5, 5, 5}
	flatUpper, _, flatLower := BollingerBands(flat, 3, 2)
	flatPercents := BollingerPercent(flat, flatUpper, flatLower)
	assert.True(t, math.IsNaN(flatPercents[2]))
}

func TestBollingerWidth(t *testing.T) {
	values := []float64{1, 2, 3}
	upper, middle, lower := BollingerBands(values, 3, 2)

	widths := BollingerWidth(upper, middle, lower)
	assert.True(t, math.IsNaN(widths[1]))
	assert.Equal(t, widths[2], float64(2))
}

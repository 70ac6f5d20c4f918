package indicator

import "math"

// BollingerBands computes the bollinger bands of the provided values over the
// provided period and standard deviation multiple. Returns the upper, middle
// and lower bands.
func BollingerBands(values []float64, period int, std float64) ([]float64, []float64, []float64) {
	middle := rollingMean(values, period)
	deviation := rollingStd(values, period)

	upper := undefined(len(values))
	lower := undefined(len(values))
	for idx := range values {
		if math.IsNaN(middle[idx]) || math.IsNaN(deviation[idx]) {
			continue
		}

		upper[idx] = middle[idx] + deviation[idx]*std
		lower[idx] = middle[idx] - deviation[idx]*std
	}

	return upper, middle, lower
}

// BollingerPercent computes the position of the provided values within their
// bollinger bands. A zero band width leaves the value undefined.
func BollingerPercent(values []float64, upper []float64, lower []float64) []float64 {
	percents := undefined(len(values))
	for idx := range values {
		width := upper[idx] - lower[idx]
		if math.IsNaN(width) || width == 0 {
			continue
		}

		percents[idx] = (values[idx] - lower[idx]) / width
	}

	return percents
}

// BollingerWidth computes the width of the provided bollinger bands relative
// to their middle band.
func BollingerWidth(upper []float64, middle []float64, lower []float64) []float64 {
	widths := undefined(len(upper))
	for idx := range upper {
		if math.IsNaN(middle[idx]) || middle[idx] == 0 {
			continue
		}

		widths[idx] = (upper[idx] - lower[idx]) / middle[idx]
	}

	return widths
}

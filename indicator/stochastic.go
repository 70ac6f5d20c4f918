package indicator

import "math"

// Stochastic computes the stochastic oscillator of the provided series over
// the provided period. Returns the fast %K line and its 3-period %D smoothing.
// A flat lookback window (highest high equal to lowest low) leaves the value
// undefined.
func Stochastic(highs []float64, lows []float64, closes []float64, period int) ([]float64, []float64) {
	lowestLows := rollingMin(lows, period)
	highestHighs := rollingMax(highs, period)

	fastk := undefined(len(closes))
	for idx := range closes {
		span := highestHighs[idx] - lowestLows[idx]
		if math.IsNaN(span) || span == 0 {
			continue
		}

		fastk[idx] = 100 * (closes[idx] - lowestLows[idx]) / span
	}

	fastd := rollingMean(fastk, 3)

	return fastk, fastd
}

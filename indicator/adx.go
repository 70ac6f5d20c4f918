package indicator

import "math"

// ADX computes the average directional index of the provided series over the
// provided period. A zero directional index sum or a zero average true range
// leaves the value undefined.
func ADX(highs []float64, lows []float64, closes []float64, period int) []float64 {
	plusDM := make([]float64, len(highs))
	minusDM := make([]float64, len(highs))

	for idx := 1; idx < len(highs); idx++ {
		upMove := highs[idx] - highs[idx-1]
		downMove := lows[idx-1] - lows[idx]

		if upMove > downMove && upMove > 0 {
			plusDM[idx] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[idx] = downMove
		}
	}

	atr := rollingMean(trueRanges(highs, lows, closes), period)
	avgPlusDM := rollingMean(plusDM, period)
	avgMinusDM := rollingMean(minusDM, period)

	dx := undefined(len(highs))
	for idx := range highs {
		if math.IsNaN(atr[idx]) || atr[idx] == 0 {
			continue
		}

		plusDI := 100 * (avgPlusDM[idx] / atr[idx])
		minusDI := 100 * (avgMinusDM[idx] / atr[idx])

		sum := plusDI + minusDI
		if sum == 0 {
			continue
		}

		dx[idx] = 100 * math.Abs(plusDI-minusDI) / sum
	}

	return rollingMean(dx, period)
}

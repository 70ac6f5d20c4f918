package indicator

// OBV computes the on-balance volume of the provided series, accumulating
// volume on up closes and shedding it on down closes, seeded at zero.
func OBV(closes []float64, volumes []float64) []float64 {
	obv := make([]float64, len(closes))
	for idx := 1; idx < len(closes); idx++ {
		switch {
		case closes[idx] > closes[idx-1]:
			obv[idx] = obv[idx-1] + volumes[idx]
		case closes[idx] < closes[idx-1]:
			obv[idx] = obv[idx-1] - volumes[idx]
		default:
			obv[idx] = obv[idx-1]
		}
	}

	return obv
}

// AD computes the accumulation/distribution line of the provided series as
// the cumulative sum of the close location value weighted by volume. Candles
// with no range contribute nothing.
func AD(highs []float64, lows []float64, closes []float64, volumes []float64) []float64 {
	ad := make([]float64, len(highs))
	for idx := range highs {
		candleRange := highs[idx] - lows[idx]

		clv := float64(0)
		if candleRange != 0 {
			clv = ((closes[idx] - lows[idx]) - (highs[idx] - closes[idx])) / candleRange
		}

		ad[idx] = clv * volumes[idx]
		if idx > 0 {
			ad[idx] += ad[idx-1]
		}
	}

	return ad
}

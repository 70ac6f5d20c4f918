package indicator

import "math"

// trueRanges computes the true range of each entry in the provided series.
// The first entry has no previous close and falls back to its high-low range.
func trueRanges(highs []float64, lows []float64, closes []float64) []float64 {
	ranges := make([]float64, len(highs))
	for idx := range highs {
		tr := highs[idx] - lows[idx]
		if idx > 0 {
			prevClose := closes[idx-1]
			tr = math.Max(tr, math.Abs(highs[idx]-prevClose))
			tr = math.Max(tr, math.Abs(lows[idx]-prevClose))
		}

		ranges[idx] = tr
	}

	return ranges
}

// ATR computes the average true range of the provided series over the
// provided period.
func ATR(highs []float64, lows []float64, closes []float64, period int) []float64 {
	return rollingMean(trueRanges(highs, lows, closes), period)
}

// NATR computes the normalized average true range of the provided series as a
// percentage of the closing price.
func NATR(atr []float64, closes []float64) []float64 {
	natr := undefined(len(closes))
	for idx := range closes {
		if math.IsNaN(atr[idx]) || closes[idx] == 0 {
			continue
		}

		natr[idx] = (atr[idx] / closes[idx]) * 100
	}

	return natr
}

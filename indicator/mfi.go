package indicator

import "math"

// MFI computes the money flow index of the provided series over the provided
// period, splitting typical-price money flow into positive and negative flow
// by typical-price direction.
//
// When the rolling negative flow is zero the value resolves to 100 for a
// positive flow sum and stays undefined (NaN) when both sums are zero.
func MFI(highs []float64, lows []float64, closes []float64, volumes []float64, period int) []float64 {
	typicalPrices := make([]float64, len(highs))
	for idx := range highs {
		typicalPrices[idx] = (highs[idx] + lows[idx] + closes[idx]) / 3
	}

	positiveFlow := make([]float64, len(highs))
	negativeFlow := make([]float64, len(highs))
	for idx := 1; idx < len(highs); idx++ {
		moneyFlow := typicalPrices[idx] * volumes[idx]
		switch {
		case typicalPrices[idx] > typicalPrices[idx-1]:
			positiveFlow[idx] = moneyFlow
		case typicalPrices[idx] < typicalPrices[idx-1]:
			negativeFlow[idx] = moneyFlow
		}
	}

	positiveSums := rollingSum(positiveFlow, period)
	negativeSums := rollingSum(negativeFlow, period)

	mfi := undefined(len(highs))
	for idx := range highs {
		positive := positiveSums[idx]
		negative := negativeSums[idx]
		if math.IsNaN(positive) || math.IsNaN(negative) {
			continue
		}

		if negative == 0 {
			if positive > 0 {
				mfi[idx] = 100
			}
			continue
		}

		ratio := positive / negative
		mfi[idx] = 100 - (100 / (1 + ratio))
	}

	return mfi
}

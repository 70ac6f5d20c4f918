package indicator

import "math"

// RSI computes the relative strength index of the provided values over the
// provided period using a simple rolling mean of up and down deltas.
//
// When the rolling loss average is zero the value resolves to 100 for a
// positive gain average and stays undefined (NaN) when both averages are
// zero, mirroring a 0/0 ratio.
func RSI(values []float64, period int) []float64 {
	gains := undefined(len(values))
	losses := undefined(len(values))

	for idx := 1; idx < len(values); idx++ {
		delta := values[idx] - values[idx-1]
		switch {
		case delta > 0:
			gains[idx] = delta
			losses[idx] = 0
		case delta < 0:
			gains[idx] = 0
			losses[idx] = -delta
		default:
			gains[idx] = 0
			losses[idx] = 0
		}
	}

	avgGains := rollingMean(gains, period)
	avgLosses := rollingMean(losses, period)

	rsi := undefined(len(values))
	for idx := range values {
		avgGain := avgGains[idx]
		avgLoss := avgLosses[idx]
		if math.IsNaN(avgGain) || math.IsNaN(avgLoss) {
			continue
		}

		if avgLoss == 0 {
			if avgGain > 0 {
				rsi[idx] = 100
			}
			continue
		}

		rs := avgGain / avgLoss
		rsi[idx] = 100 - (100 / (1 + rs))
	}

	return rsi
}

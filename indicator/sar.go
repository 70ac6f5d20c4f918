package indicator

const (
	// sarAcceleration is the fixed acceleration factor for the parabolic sar.
	sarAcceleration = 0.02
)

// SAR computes a simplified parabolic stop-and-reverse for the provided
// series, seeded with the first low and accelerated towards the previous
// high at a fixed factor.
//
// This is deliberately not a full parabolic SAR: there is no acceleration
// ramp-up and no trend reversal. Downstream scoring depends on this exact
// simplified output.
func SAR(highs []float64, lows []float64) []float64 {
	sar := make([]float64, len(highs))
	if len(highs) == 0 {
		return sar
	}

	sar[0] = lows[0]
	for idx := 1; idx < len(highs); idx++ {
		sar[idx] = sar[idx-1] + sarAcceleration*(highs[idx-1]-sar[idx-1])
	}

	return sar
}

package indicator

import "math"

// undefined returns a slice of the provided size filled with NaN, the
// sentinel marking indicator values whose lookback window has not filled.
func undefined(size int) []float64 {
	values := make([]float64, size)
	for idx := range values {
		values[idx] = math.NaN()
	}

	return values
}

// rollingMean computes the trailing inclusive mean of the provided values over
// the provided period. Entries before the window fills, or whose window
// contains an undefined value, are undefined.
func rollingMean(values []float64, period int) []float64 {
	means := undefined(len(values))

	for idx := period - 1; idx < len(values); idx++ {
		sum := float64(0)
		defined := true
		for k := idx - period + 1; k <= idx; k++ {
			if math.IsNaN(values[k]) {
				defined = false
				break
			}
			sum += values[k]
		}

		if defined {
			means[idx] = sum / float64(period)
		}
	}

	return means
}

// rollingSum computes the trailing inclusive sum of the provided values over
// the provided period.
func rollingSum(values []float64, period int) []float64 {
	sums := undefined(len(values))

	for idx := period - 1; idx < len(values); idx++ {
		sum := float64(0)
		defined := true
		for k := idx - period + 1; k <= idx; k++ {
			if math.IsNaN(values[k]) {
				defined = false
				break
			}
			sum += values[k]
		}

		if defined {
			sums[idx] = sum
		}
	}

	return sums
}

// rollingStd computes the trailing inclusive sample standard deviation of the
// provided values over the provided period.
func rollingStd(values []float64, period int) []float64 {
	stds := undefined(len(values))
	means := rollingMean(values, period)

	for idx := period - 1; idx < len(values); idx++ {
		if math.IsNaN(means[idx]) {
			continue
		}

		sum := float64(0)
		for k := idx - period + 1; k <= idx; k++ {
			diff := values[k] - means[idx]
			sum += diff * diff
		}

		stds[idx] = math.Sqrt(sum / float64(period-1))
	}

	return stds
}

// rollingMin computes the trailing inclusive minimum of the provided values
// over the provided period.
func rollingMin(values []float64, period int) []float64 {
	mins := undefined(len(values))

	for idx := period - 1; idx < len(values); idx++ {
		min := values[idx]
		defined := !math.IsNaN(min)
		for k := idx - period + 1; k < idx; k++ {
			if math.IsNaN(values[k]) {
				defined = false
				break
			}
			if values[k] < min {
				min = values[k]
			}
		}

		if defined {
			mins[idx] = min
		}
	}

	return mins
}

// rollingMax computes the trailing inclusive maximum of the provided values
// over the provided period.
func rollingMax(values []float64, period int) []float64 {
	maxes := undefined(len(values))

	for idx := period - 1; idx < len(values); idx++ {
		max := values[idx]
		defined := !math.IsNaN(max)
		for k := idx - period + 1; k < idx; k++ {
			if math.IsNaN(values[k]) {
				defined = false
				break
			}
			if values[k] > max {
				max = values[k]
			}
		}

		if defined {
			maxes[idx] = max
		}
	}

	return maxes
}

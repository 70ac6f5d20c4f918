package indicator

// EMA computes the exponential moving average of the provided values over the
// provided span, seeded with the first value and without bias adjustment.
func EMA(values []float64, span int) []float64 {
	emas := make([]float64, len(values))
	if len(values) == 0 {
		return emas
	}

	alpha := 2 / (float64(span) + 1)
	emas[0] = values[0]
	for idx := 1; idx < len(values); idx++ {
		emas[idx] = alpha*values[idx] + (1-alpha)*emas[idx-1]
	}

	return emas
}

// SMA computes the simple moving average of the provided values over the
// provided period.
func SMA(values []float64, period int) []float64 {
	return rollingMean(values, period)
}

// TEMA computes the triple exponential moving average of the provided values
// over the provided span.
func TEMA(values []float64, span int) []float64 {
	ema1 := EMA(values, span)
	ema2 := EMA(ema1, span)
	ema3 := EMA(ema2, span)

	temas := make([]float64, len(values))
	for idx := range temas {
		temas[idx] = 3*ema1[idx] - 3*ema2[idx] + ema3[idx]
	}

	return temas
}

package indicator

// MACD computes the moving average convergence divergence of the provided
// values along with its signal line and histogram.
func MACD(values []float64, fast int, slow int, signal int) ([]float64, []float64, []float64) {
	emaFast := EMA(values, fast)
	emaSlow := EMA(values, slow)

	macd := make([]float64, len(values))
	for idx := range macd {
		macd[idx] = emaFast[idx] - emaSlow[idx]
	}

	macdSignal := EMA(macd, signal)

	macdHist := make([]float64, len(values))
	for idx := range macdHist {
		macdHist[idx] = macd[idx] - macdSignal[idx]
	}

	return macd, macdSignal, macdHist
}

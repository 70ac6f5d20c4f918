// Package indicator enriches candlestick series with technical indicator
// columns. Every computation is a pure function of the raw series: identical
// input always produces identical output.
//
// NaN is the undefined sentinel throughout: rows whose lookback window has
// not filled, and divisions that cannot resolve (zero loss average, zero
// directional index sum, flat stochastic window, zero bollinger band width)
// stay NaN rather than becoming a silently wrong number. NaN comparisons are
// always false, so undefined values can never satisfy a signal condition.
package indicator

import (
	"fmt"
	"time"

	"tradewatch/shared"
)

const (
	// Standard lookback periods for the enriched columns.
	rsiPeriod        = 14
	stochasticPeriod = 14
	macdFastSpan     = 12
	macdSlowSpan     = 26
	macdSignalSpan   = 9
	mfiPeriod        = 14
	adxPeriod        = 14
	bollingerPeriod  = 20
	bollingerStd     = 2
	temaSpan         = 9
	atrPeriod        = 14
)

// Series represents a candlestick series enriched with indicator columns.
// All columns share the same length and row order as the source candles.
type Series struct {
	Market    string
	Asset     shared.Asset
	Timeframe shared.Timeframe

	Dates  []time.Time
	Opens  []float64
	Highs  []float64
	Lows   []float64
	Closes []float64
	Volume []float64

	RSI        []float64
	FastK      []float64
	FastD      []float64
	MACD       []float64
	MACDSignal []float64
	MACDHist   []float64
	MFI        []float64
	ADX        []float64

	BBUpper   []float64
	BBMiddle  []float64
	BBLower   []float64
	BBPercent []float64
	BBWidth   []float64

	EMA9   []float64
	EMA21  []float64
	EMA50  []float64
	EMA200 []float64
	SMA20  []float64
	SMA50  []float64
	SMA200 []float64
	SAR    []float64
	TEMA   []float64

	OBV  []float64
	AD   []float64
	ATR  []float64
	NATR []float64
}

// Len returns the number of rows in the series.
func (s *Series) Len() int {
	return len(s.Closes)
}

// Enrich computes all indicator columns for the provided candlesticks.
func Enrich(candles []shared.Candlestick) (*Series, error) {
	if len(candles) == 0 {
		return nil, fmt.Errorf("no candlesticks provided for enrichment")
	}

	series := &Series{
		Market:    candles[0].Market,
		Asset:     candles[0].Asset,
		Timeframe: candles[0].Timeframe,
		Dates:     make([]time.Time, len(candles)),
		Opens:     make([]float64, len(candles)),
		Highs:     make([]float64, len(candles)),
		Lows:      make([]float64, len(candles)),
		Closes:    make([]float64, len(candles)),
		Volume:    make([]float64, len(candles)),
	}

	for idx := range candles {
		series.Dates[idx] = candles[idx].Date
		series.Opens[idx] = candles[idx].Open
		series.Highs[idx] = candles[idx].High
		series.Lows[idx] = candles[idx].Low
		series.Closes[idx] = candles[idx].Close
		series.Volume[idx] = candles[idx].Volume
	}

	// Momentum indicators.
	series.RSI = RSI(series.Closes, rsiPeriod)
	series.FastK, series.FastD = Stochastic(series.Highs, series.Lows, series.Closes, stochasticPeriod)
	series.MACD, series.MACDSignal, series.MACDHist = MACD(series.Closes, macdFastSpan, macdSlowSpan, macdSignalSpan)
	series.MFI = MFI(series.Highs, series.Lows, series.Closes, series.Volume, mfiPeriod)
	series.ADX = ADX(series.Highs, series.Lows, series.Closes, adxPeriod)

	// Overlap studies.
	series.BBUpper, series.BBMiddle, series.BBLower = BollingerBands(series.Closes, bollingerPeriod, bollingerStd)
	series.BBPercent = BollingerPercent(series.Closes, series.BBUpper, series.BBLower)
	series.BBWidth = BollingerWidth(series.BBUpper, series.BBMiddle, series.BBLower)

	series.EMA9 = EMA(series.Closes, 9)
	series.EMA21 = EMA(series.Closes, 21)
	series.EMA50 = EMA(series.Closes, 50)
	series.EMA200 = EMA(series.Closes, 200)
	series.SMA20 = SMA(series.Closes, 20)
	series.SMA50 = SMA(series.Closes, 50)
	series.SMA200 = SMA(series.Closes, 200)
	series.SAR = SAR(series.Highs, series.Lows)
	series.TEMA = TEMA(series.Closes, temaSpan)

	// Volume indicators.
	series.OBV = OBV(series.Closes, series.Volume)
	series.AD = AD(series.Highs, series.Lows, series.Closes, series.Volume)

	// Volatility indicators.
	series.ATR = ATR(series.Highs, series.Lows, series.Closes, atrPeriod)
	series.NATR = NATR(series.ATR, series.Closes)

	return series, nil
}

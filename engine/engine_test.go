package engine

import (
	"math"
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog/log"

	"tradewatch/indicator"
	"tradewatch/shared"
)

func newTestEngine(minConfidence float64) *Engine {
	return NewEngine(&EngineConfig{
		MinConfidence: minConfidence,
		Logger:        &log.Logger,
	})
}

// twoRowSeries builds a minimal series carrying only the columns the
// evaluation reads, with the provided previous and last row values.
func twoRowSeries(prev, last map[string]float64) *indicator.Series {
	column := func(key string) []float64 {
		values := []float64{math.NaN(), math.NaN()}
		if v, ok := prev[key]; ok {
			values[0] = v
		}
		if v, ok := last[key]; ok {
			values[1] = v
		}
		return values
	}

	return &indicator.Series{
		Market:     "BTCUSDT",
		Asset:      shared.Crypto,
		Timeframe:  shared.FiveMinute,
		Closes:     column("close"),
		RSI:        column("rsi"),
		MACD:       column("macd"),
		MACDSignal: column("macdsignal"),
		BBUpper:    column("bbupper"),
		BBLower:    column("bblower"),
		BBPercent:  column("bbpercent"),
		EMA9:       column("ema9"),
		EMA21:      column("ema21"),
		MFI:        column("mfi"),
		ADX:        column("adx"),
	}
}

func TestEvaluateShortSeries(t *testing.T) {
	eng := newTestEngine(0.6)

	// Ensure a nil series holds.
	decision, confidence, details := eng.Evaluate(nil)
	assert.Equal(t, decision, shared.Hold)
	assert.Equal(t, confidence, float64(0))
	assert.Equal(t, details.Decision, shared.Hold)

	// Ensure a single-row series holds.
	series := &indicator.Series{Closes: []float64{100}}
	decision, confidence, _ = eng.Evaluate(series)
	assert.Equal(t, decision, shared.Hold)
	assert.Equal(t, confidence, float64(0))
}

func TestEvaluateStrongBuy(t *testing.T) {
	eng := newTestEngine(0.6)

	// Every family votes its strongest buy condition: oversold rsi, fresh
	// bullish macd cross, close below the lower band, fresh golden cross and
	// oversold mfi.
	series := twoRowSeries(
		map[string]float64{
			"close": 100, "macd": 0.4, "macdsignal": 0.5,
			"ema9": 8, "ema21": 9,
		},
		map[string]float64{
			"close": 95, "rsi": 25, "macd": 1, "macdsignal": 0.5,
			"bbupper": 110, "bblower": 96, "bbpercent": -0.1,
			"ema9": 10, "ema21": 9, "mfi": 15, "adx": 30,
		},
	)

	decision, confidence, details := eng.Evaluate(series)

	assert.Equal(t, decision, shared.Buy)
	assert.Equal(t, details.RSISignal, "STRONG BUY (Oversold)")
	assert.Equal(t, details.MACDSignal, "STRONG BUY (Bullish Cross)")
	assert.Equal(t, details.BollingerSignal, "STRONG BUY (Below Lower Band)")
	assert.Equal(t, details.EMASignal, "STRONG BUY (Golden Cross)")
	assert.Equal(t, details.MFISignal, "BUY (Oversold)")
	assert.Equal(t, details.TrendStrength, "STRONG")

	// Four strong families and one weak family vote, so the net of nine sits
	// against a weighted maximum of eighteen.
	assert.Equal(t, details.BuySignals, 9)
	assert.Equal(t, details.SellSignals, 0)
	assert.Equal(t, details.TotalSignals, 9)
	assert.Equal(t, confidence, float64(9)/float64(18))

	// Ensure the raw values are carried into the details.
	assert.Equal(t, details.CurrentPrice, float64(95))
	assert.Equal(t, details.RSIValue, float64(25))
	assert.Equal(t, details.ADXValue, float64(30))
}

func TestEvaluateStrongSell(t *testing.T) {
	eng := newTestEngine(0.6)

	series := twoRowSeries(
		map[string]float64{
			"close": 100, "macd": 0.6, "macdsignal": 0.5,
			"ema9": 10, "ema21": 9,
		},
		map[string]float64{
			"close": 115, "rsi": 75, "macd": 0.2, "macdsignal": 0.5,
			"bbupper": 110, "bblower": 96, "bbpercent": 1.1,
			"ema9": 8, "ema21": 9, "mfi": 85, "adx": 22,
		},
	)

	decision, confidence, details := eng.Evaluate(series)

	assert.Equal(t, decision, shared.Sell)
	assert.Equal(t, details.RSISignal, "STRONG SELL (Overbought)")
	assert.Equal(t, details.MACDSignal, "STRONG SELL (Bearish Cross)")
	assert.Equal(t, details.BollingerSignal, "STRONG SELL (Above Upper Band)")
	assert.Equal(t, details.EMASignal, "STRONG SELL (Death Cross)")
	assert.Equal(t, details.MFISignal, "SELL (Overbought)")
	assert.Equal(t, details.TrendStrength, "MODERATE")

	assert.Equal(t, details.BuySignals, 0)
	assert.Equal(t, details.SellSignals, 9)
	assert.Equal(t, details.TotalSignals, 9)
	assert.Equal(t, confidence, float64(9)/float64(18))
}

func TestEvaluateHeldPositions(t *testing.T) {
	eng := newTestEngine(0.6)

	// Held fast-over-slow positions without a fresh cross vote weakly.
	series := twoRowSeries(
		map[string]float64{
			"close": 100, "macd": 0.6, "macdsignal": 0.5,
			"ema9": 10, "ema21": 9,
		},
		map[string]float64{
			"close": 100, "rsi": 50, "macd": 0.6, "macdsignal": 0.5,
			"bbupper": 110, "bblower": 96, "bbpercent": 0.5,
			"ema9": 10, "ema21": 9, "mfi": 50, "adx": 10,
		},
	)

	decision, _, details := eng.Evaluate(series)

	assert.Equal(t, decision, shared.Buy)
	assert.Equal(t, details.RSISignal, "NEUTRAL")
	assert.Equal(t, details.MACDSignal, "BUY")
	assert.Equal(t, details.BollingerSignal, "NEUTRAL")
	assert.Equal(t, details.EMASignal, "BUY")
	assert.Equal(t, details.MFISignal, "NEUTRAL")
	assert.Equal(t, details.TrendStrength, "WEAK")
	assert.Equal(t, details.BuySignals, 2)
	assert.Equal(t, details.TotalSignals, 9)
}

func TestEvaluateFamilyAbstention(t *testing.T) {
	eng := newTestEngine(0.6)

	// Only the rsi family has defined inputs; the rest abstain entirely and
	// do not dilute the confidence.
	series := twoRowSeries(
		map[string]float64{"close": 100},
		map[string]float64{"close": 95, "rsi": 25},
	)

	decision, confidence, details := eng.Evaluate(series)

	assert.Equal(t, decision, shared.Buy)
	assert.Equal(t, details.RSISignal, "STRONG BUY (Oversold)")
	assert.Equal(t, details.MACDSignal, "")
	assert.Equal(t, details.BollingerSignal, "")
	assert.Equal(t, details.EMASignal, "")
	assert.Equal(t, details.MFISignal, "")
	assert.Equal(t, details.TrendStrength, "")
	assert.Equal(t, details.TotalSignals, 2)
	assert.Equal(t, confidence, float64(2)/float64(4))

	// Ensure undefined raw values are zeroed in the details.
	assert.Equal(t, details.MACDValue, float64(0))
	assert.Equal(t, details.ADXValue, float64(0))
}

func TestEvaluateAllUndefined(t *testing.T) {
	eng := newTestEngine(0.6)

	// Ensure a series with no defined family inputs holds with zero confidence.
	series := twoRowSeries(
		map[string]float64{"close": 100},
		map[string]float64{"close": 100},
	)

	decision, confidence, details := eng.Evaluate(series)
	assert.Equal(t, decision, shared.Hold)
	assert.Equal(t, confidence, float64(0))
	assert.Equal(t, details.TotalSignals, 0)
}

func TestEvaluateBalancedVotes(t *testing.T) {
	eng := newTestEngine(0.6)

	// Opposing strong votes cancel out to a hold.
	series := twoRowSeries(
		map[string]float64{
			"close": 100, "macd": 0.6, "macdsignal": 0.5,
		},
		map[string]float64{
			"close": 100, "rsi": 25, "macd": 0.2, "macdsignal": 0.5,
		},
	)

	decision, confidence, details := eng.Evaluate(series)
	assert.Equal(t, decision, shared.Hold)
	assert.Equal(t, confidence, float64(0))
	assert.Equal(t, details.BuySignals, 2)
	assert.Equal(t, details.SellSignals, 2)
}

// pipelineCandles builds a candlestick series from the provided closes, with
// highs and lows bracketing each close.
func pipelineCandles(closes []float64) []shared.Candlestick {
	start := time.Date(2025, 2, 4, 9, 30, 0, 0, time.UTC)

	candles := make([]shared.Candlestick, len(closes))
	for idx := range closes {
		candles[idx] = shared.Candlestick{
			Open:      closes[idx] * 0.999,
			High:      closes[idx] * 1.005,
			Low:       closes[idx] * 0.995,
			Close:     closes[idx],
			Volume:    1000,
			Date:      start.Add(time.Duration(idx) * time.Minute * 5),
			Market:    "BTCUSDT",
			Asset:     shared.Crypto,
			Timeframe: shared.FiveMinute,
		}
	}

	return candles
}

func TestEvaluateFlatMarketPipeline(t *testing.T) {
	eng := newTestEngine(0.6)

	closes := make([]float64, 300)
	for idx := range closes {
		closes[idx] = 128
	}

	series, err := indicator.Enrich(pipelineCandles(closes))
	assert.NoError(t, err)

	last := series.Len() - 1

	// Ensure a flat market cannot resolve a gain/loss ratio and carries no
	// macd drift.
	assert.True(t, math.IsNaN(series.RSI[last]))
	assert.LessThan(t, math.Abs(series.MACD[last]), 1e-9)

	decision, confidence, details := eng.Evaluate(series)

	// Only the macd, bollinger and ema families reach defined inputs, and
	// all of them score neutral.
	assert.Equal(t, decision, shared.Hold)
	assert.Equal(t, confidence, float64(0))
	assert.Equal(t, details.RSISignal, "")
	assert.Equal(t, details.MACDSignal, "NEUTRAL")
	assert.Equal(t, details.BollingerSignal, "NEUTRAL")
	assert.Equal(t, details.EMASignal, "NEUTRAL")
	assert.Equal(t, details.MFISignal, "")
	assert.Equal(t, details.TrendStrength, "")
	assert.Equal(t, details.BuySignals, 0)
	assert.Equal(t, details.SellSignals, 0)
	assert.Equal(t, details.TotalSignals, 6)
}

func TestEvaluateSteadyUptrendPipeline(t *testing.T) {
	eng := newTestEngine(0.6)

	// One hundred bars rising one percent per bar.
	closes := make([]float64, 100)
	price := float64(100)
	for idx := range closes {
		closes[idx] = price
		price *= 1.01
	}

	series, err := indicator.Enrich(pipelineCandles(closes))
	assert.NoError(t, err)

	decision, confidence, details := eng.Evaluate(series)

	// Saturated rsi and money flow vote sell alongside the stretched band
	// position, while the held macd and ema crossovers vote buy.
	assert.Equal(t, details.RSISignal, "STRONG SELL (Overbought)")
	assert.Equal(t, details.MACDSignal, "BUY")
	assert.Equal(t, details.BollingerSignal, "SELL")
	assert.Equal(t, details.EMASignal, "BUY")
	assert.Equal(t, details.MFISignal, "SELL (Overbought)")
	assert.Equal(t, details.TrendStrength, "STRONG")
	assert.Equal(t, details.RSIValue, float64(100))

	assert.Equal(t, details.BuySignals, 2)
	assert.Equal(t, details.SellSignals, 4)
	assert.Equal(t, details.TotalSignals, 9)
	assert.Equal(t, decision, shared.Sell)
	assert.Equal(t, confidence, float64(2)/float64(18))
}

func TestActionable(t *testing.T) {
	eng := newTestEngine(0.3)

	assert.True(t, eng.Actionable(shared.Buy, 0.3))
	assert.True(t, eng.Actionable(shared.Sell, 0.5))
	assert.False(t, eng.Actionable(shared.Buy, 0.29))
	assert.False(t, eng.Actionable(shared.Hold, 1))
}

func TestPredict(t *testing.T) {
	eng := newTestEngine(0.6)
	now := time.Now().UTC()

	// Ensure a buy decision forecasts an upward direction.
	series := twoRowSeries(
		map[string]float64{"close": 100},
		map[string]float64{"close": 95, "rsi": 25},
	)

	prediction := eng.Predict(series, now)
	assert.Equal(t, prediction.Direction, "UP")
	assert.Equal(t, prediction.Decision, shared.Buy)
	assert.Equal(t, prediction.Confidence, float64(50))
	assert.Equal(t, prediction.CreatedOn, now)

	// Ensure an undefined series forecasts sideways.
	flat := twoRowSeries(
		map[string]float64{"close": 100},
		map[string]float64{"close": 100},
	)

	prediction = eng.Predict(flat, now)
	assert.Equal(t, prediction.Direction, "SIDEWAYS")
	assert.Equal(t, prediction.Confidence, float64(0))
}

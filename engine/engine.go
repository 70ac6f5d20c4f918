// Package engine scores enriched candlestick series into directional
// decisions. Six indicator families vote with fixed weights; families whose
// inputs are undefined abstain entirely so stale data cannot dilute the
// confidence of the remaining votes.
package engine

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"tradewatch/indicator"
	"tradewatch/shared"
)

const (
	// minScoreRows is the minimum number of series rows needed to score.
	minScoreRows = 2

	// strongWeight is the vote weight of a strong family condition.
	strongWeight = 2
	// weakWeight is the vote weight of a weak family condition.
	weakWeight = 1

	// Sub-signal labels for the decision details.
	labelNeutral          = "NEUTRAL"
	labelBuy              = "BUY"
	labelSell             = "SELL"
	labelStrongOversold   = "STRONG BUY (Oversold)"
	labelStrongOverbought = "STRONG SELL (Overbought)"
	labelBullishCross     = "STRONG BUY (Bullish Cross)"
	labelBearishCross     = "STRONG SELL (Bearish Cross)"
	labelBelowLowerBand   = "STRONG BUY (Below Lower Band)"
	labelAboveUpperBand   = "STRONG SELL (Above Upper Band)"
	labelGoldenCross      = "STRONG BUY (Golden Cross)"
	labelDeathCross       = "STRONG SELL (Death Cross)"
	labelMFIOversold      = "BUY (Oversold)"
	labelMFIOverbought    = "SELL (Overbought)"
	labelTrendStrong      = "STRONG"
	labelTrendModerate    = "MODERATE"
	labelTrendWeak        = "WEAK"
)

// EngineConfig represents the signal engine configuration.
type EngineConfig struct {
	// MinConfidence is the minimum confidence required for actionable decisions.
	MinConfidence float64
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Engine scores enriched series into directional decisions.
type Engine struct {
	cfg *EngineConfig
}

// NewEngine initializes a new signal engine.
func NewEngine(cfg *EngineConfig) *Engine {
	return &Engine{cfg: cfg}
}

// tally accumulates weighted family votes for a decision.
type tally struct {
	buy   int
	sell  int
	total int
}

// scoreRSI votes on the relative strength index family.
func scoreRSI(rsi float64, votes *tally) string {
	if math.IsNaN(rsi) {
		return ""
	}

	votes.total += strongWeight

	switch {
	case rsi < 30:
		votes.buy += strongWeight
		return labelStrongOversold
	case rsi < 40:
		votes.buy += weakWeight
		return labelBuy
	case rsi > 70:
		votes.sell += strongWeight
		return labelStrongOverbought
	case rsi > 60:
		votes.sell += weakWeight
		return labelSell
	default:
		return labelNeutral
	}
}

// scoreMACD votes on the macd family, weighting fresh signal-line crosses
// above a held position relative to the signal line.
func scoreMACD(macd, signal, prevMACD, prevSignal float64, votes *tally) string {
	if math.IsNaN(macd) || math.IsNaN(signal) {
		return ""
	}

	votes.total += strongWeight

	switch {
	case macd > signal && prevMACD <= prevSignal:
		votes.buy += strongWeight
		return labelBullishCross
	case macd > signal:
		votes.buy += weakWeight
		return labelBuy
	case macd < signal && prevMACD >= prevSignal:
		votes.sell += strongWeight
		return labelBearishCross
	case macd < signal:
		votes.sell += weakWeight
		return labelSell
	default:
		return labelNeutral
	}
}

// scoreBollinger votes on the bollinger band family.
func scoreBollinger(close, upper, lower, percent float64, votes *tally) string {
	if math.IsNaN(lower) || math.IsNaN(upper) {
		return ""
	}

	votes.total += strongWeight

	switch {
	case close < lower:
		votes.buy += strongWeight
		return labelBelowLowerBand
	case percent < 0.2:
		votes.buy += weakWeight
		return labelBuy
	case close > upper:
		votes.sell += strongWeight
		return labelAboveUpperBand
	case percent > 0.8:
		votes.sell += weakWeight
		return labelSell
	default:
		return labelNeutral
	}
}

// scoreEMA votes on the ema crossover family, weighting fresh golden and
// death crosses above a held fast-over-slow position.
func scoreEMA(ema9, ema21, prevEMA9, prevEMA21 float64, votes *tally) string {
	if math.IsNaN(ema9) || math.IsNaN(ema21) {
		return ""
	}

	votes.total += strongWeight

	switch {
	case ema9 > ema21 && prevEMA9 <= prevEMA21:
		votes.buy += strongWeight
		return labelGoldenCross
	case ema9 > ema21:
		votes.buy += weakWeight
		return labelBuy
	case ema9 < ema21 && prevEMA9 >= prevEMA21:
		votes.sell += strongWeight
		return labelDeathCross
	case ema9 < ema21:
		votes.sell += weakWeight
		return labelSell
	default:
		return labelNeutral
	}
}

// scoreMFI votes on the money flow index family.
func scoreMFI(mfi float64, votes *tally) string {
	if math.IsNaN(mfi) {
		return ""
	}

	votes.total += weakWeight

	switch {
	case mfi < 20:
		votes.buy += weakWeight
		return labelMFIOversold
	case mfi > 80:
		votes.sell += weakWeight
		return labelMFIOverbought
	default:
		return labelNeutral
	}
}

// labelTrendStrength labels the trend strength from the average directional
// index. The label does not vote.
func labelTrendStrength(adx float64) string {
	switch {
	case math.IsNaN(adx):
		return ""
	case adx > 25:
		return labelTrendStrong
	case adx > 20:
		return labelTrendModerate
	default:
		return labelTrendWeak
	}
}

// zeroNaN substitutes zero for an undefined raw indicator value in details.
func zeroNaN(value float64) float64 {
	if math.IsNaN(value) {
		return 0
	}

	return value
}

// Evaluate scores the two most recent rows of the provided series into a
// directional decision, a confidence in [0, 1] and the contributing
// sub-signal details.
func (e *Engine) Evaluate(series *indicator.Series) (shared.Decision, float64, shared.SignalDetails) {
	if series == nil || series.Len() < minScoreRows {
		return shared.Hold, 0, shared.SignalDetails{Decision: shared.Hold}
	}

	last := series.Len() - 1
	prev := last - 1

	var votes tally
	details := shared.SignalDetails{
		RSISignal: scoreRSI(series.RSI[last], &votes),
		MACDSignal: scoreMACD(series.MACD[last], series.MACDSignal[last],
			series.MACD[prev], series.MACDSignal[prev], &votes),
		BollingerSignal: scoreBollinger(series.Closes[last], series.BBUpper[last],
			series.BBLower[last], series.BBPercent[last], &votes),
		EMASignal: scoreEMA(series.EMA9[last], series.EMA21[last],
			series.EMA9[prev], series.EMA21[prev], &votes),
		MFISignal:     scoreMFI(series.MFI[last], &votes),
		TrendStrength: labelTrendStrength(series.ADX[last]),
		CurrentPrice:  series.Closes[last],
		RSIValue:      zeroNaN(series.RSI[last]),
		MACDValue:     zeroNaN(series.MACD[last]),
		ADXValue:      zeroNaN(series.ADX[last]),
	}

	details.BuySignals = votes.buy
	details.SellSignals = votes.sell
	details.TotalSignals = votes.total

	net := votes.buy - votes.sell
	maxPossible := votes.total * strongWeight

	decision := shared.Hold
	confidence := float64(0)

	switch {
	case net > 0 && maxPossible > 0:
		decision = shared.Buy
		confidence = math.Min(float64(net)/float64(maxPossible), 1)
	case net < 0 && maxPossible > 0:
		decision = shared.Sell
		confidence = math.Min(float64(-net)/float64(maxPossible), 1)
	}

	details.Decision = decision

	e.cfg.Logger.Debug().Msgf("%s scored %s with confidence %.2f (%d buy / %d sell of %d)",
		series.Market, decision.String(), confidence, votes.buy, votes.sell, votes.total)

	return decision, confidence, details
}

// Actionable reports whether the provided decision and confidence clear the
// configured confidence threshold.
func (e *Engine) Actionable(decision shared.Decision, confidence float64) bool {
	return decision != shared.Hold && confidence >= e.cfg.MinConfidence
}

// Prediction represents a market direction forecast.
type Prediction struct {
	Direction  string
	Confidence float64
	Decision   shared.Decision
	Details    shared.SignalDetails
	CreatedOn  time.Time
}

// Predict forecasts the market direction for the provided series.
func (e *Engine) Predict(series *indicator.Series, now time.Time) Prediction {
	decision, confidence, details := e.Evaluate(series)

	direction := "SIDEWAYS"
	switch decision {
	case shared.Buy:
		direction = "UP"
	case shared.Sell:
		direction = "DOWN"
	}

	return Prediction{
		Direction:  direction,
		Confidence: confidence * 100,
		Decision:   decision,
		Details:    details,
		CreatedOn:  now,
	}
}

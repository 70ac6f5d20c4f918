// Package bot runs the periodic scan-and-manage trading loop. A single
// controller goroutine owns each cycle: open positions are checked for exits
// first (stop loss, take profit, reversal signal, first match wins), then
// the watchlist is scanned for fresh entries while capacity remains.
package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"tradewatch/engine"
	"tradewatch/indicator"
	"tradewatch/metrics"
	"tradewatch/position"
	"tradewatch/shared"
)

const (
	// backoffInterval is the wait applied after a failed trading cycle.
	backoffInterval = time.Second * 10
	// defaultCandleLimit is the number of candles fetched per evaluation.
	defaultCandleLimit = 500
)

// Watch represents a tracked market on the scan watchlist.
type Watch struct {
	Market string
	Asset  shared.Asset
}

// BotConfig represents the trading bot configuration.
type BotConfig struct {
	// Watchlist represents the tracked markets.
	Watchlist []Watch
	// Timeframe is the candle timeframe used for evaluations.
	Timeframe shared.Timeframe
	// CandleLimit is the number of candles fetched per evaluation.
	CandleLimit int
	// TradeAmount is the quote-currency amount committed per position.
	TradeAmount float64
	// StopLossPercent is the stop loss distance below entry, in percent.
	StopLossPercent float64
	// TakeProfitPercent is the take profit distance above entry, in percent.
	TakeProfitPercent float64
	// CheckInterval is the wait between trading cycles.
	CheckInterval time.Duration
	// Source returns the candle source serving the provided asset class.
	Source func(asset shared.Asset) (shared.CandleSource, error)
	// Positions represents the position manager.
	Positions *position.Manager
	// Engine represents the signal engine.
	Engine *engine.Engine
	// Metrics represents the trading service metrics.
	Metrics *metrics.Metrics
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config has sane inputs.
func (cfg *BotConfig) Validate() error {
	var errs error

	if len(cfg.Watchlist) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no markets provided for the trading bot"))
	}
	if cfg.TradeAmount <= 0 {
		errs = errors.Join(errs, fmt.Errorf("trade amount must be positive, got %f", cfg.TradeAmount))
	}
	if cfg.StopLossPercent <= 0 || cfg.StopLossPercent >= 100 {
		errs = errors.Join(errs, fmt.Errorf("stop loss percent must be in (0, 100), got %f", cfg.StopLossPercent))
	}
	if cfg.TakeProfitPercent <= 0 {
		errs = errors.Join(errs, fmt.Errorf("take profit percent must be positive, got %f", cfg.TakeProfitPercent))
	}
	if cfg.CheckInterval <= 0 {
		errs = errors.Join(errs, fmt.Errorf("check interval must be positive, got %s", cfg.CheckInterval))
	}
	if cfg.Source == nil {
		errs = errors.Join(errs, fmt.Errorf("candle source lookup cannot be nil"))
	}
	if cfg.Positions == nil {
		errs = errors.Join(errs, fmt.Errorf("position manager cannot be nil"))
	}
	if cfg.Engine == nil {
		errs = errors.Join(errs, fmt.Errorf("signal engine cannot be nil"))
	}

	return errs
}

// Bot represents the trading bot.
type Bot struct {
	cfg     *BotConfig
	running atomic.Bool
	cycles  atomic.Uint64
}

// NewBot initializes a new trading bot.
func NewBot(cfg *BotConfig) (*Bot, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating bot config: %w", err)
	}

	if cfg.CandleLimit <= 0 {
		cfg.CandleLimit = defaultCandleLimit
	}

	return &Bot{cfg: cfg}, nil
}

// Running reports whether the trading loop is active.
func (b *Bot) Running() bool {
	return b.running.Load()
}

// Cycles returns the number of completed trading cycles.
func (b *Bot) Cycles() uint64 {
	return b.cycles.Load()
}

// evaluate fetches fresh candles for the provided market and scores them.
func (b *Bot) evaluate(ctx context.Context, market string, asset shared.Asset) (shared.Decision, float64, shared.SignalDetails, error) {
	source, err := b.cfg.Source(asset)
	if err != nil {
		return shared.Hold, 0, shared.SignalDetails{}, err
	}

	candles, err := source.Candles(ctx, market, b.cfg.Timeframe, b.cfg.CandleLimit)
	if err != nil {
		return shared.Hold, 0, shared.SignalDetails{}, fmt.Errorf("fetching candles for %s: %w", market, err)
	}

	if len(candles) == 0 {
		return shared.Hold, 0, shared.SignalDetails{}, fmt.Errorf("no candles returned for %s", market)
	}

	series, err := indicator.Enrich(candles)
	if err != nil {
		return shared.Hold, 0, shared.SignalDetails{}, fmt.Errorf("enriching candles for %s: %w", market, err)
	}

	decision, confidence, details := b.cfg.Engine.Evaluate(series)

	return decision, confidence, details, nil
}

// managePosition runs the exit checks for the provided open position. The
// checks run in fixed priority order (stop loss, take profit, reversal
// signal) and the first match closes the position for the cycle.
func (b *Bot) managePosition(ctx context.Context, pos *position.Position) error {
	source, err := b.cfg.Source(pos.Asset)
	if err != nil {
		return err
	}

	price, err := source.Ticker(ctx, pos.Market)
	if err != nil {
		return fmt.Errorf("fetching ticker for %s: %w", pos.Market, err)
	}

	switch {
	case price <= pos.StopLoss:
		return b.closePosition(pos.Market, price, shared.StopLoss)
	case price >= pos.TakeProfit:
		return b.closePosition(pos.Market, price, shared.TakeProfit)
	}

	decision, confidence, _, err := b.evaluate(ctx, pos.Market, pos.Asset)
	if err != nil {
		return err
	}

	if decision == shared.Sell && b.cfg.Engine.Actionable(decision, confidence) {
		return b.closePosition(pos.Market, price, shared.ReversalSignal)
	}

	return nil
}

// closePosition closes the open position held by the provided market.
func (b *Bot) closePosition(market string, price float64, reason shared.CloseReason) error {
	_, err := b.cfg.Positions.Close(market, price, reason, time.Now().UTC())
	if err != nil {
		return err
	}

	if b.cfg.Metrics != nil {
		b.cfg.Metrics.TradesClosed.WithLabelValues(reason.String()).Inc()
		b.cfg.Metrics.OpenPositions.Set(float64(b.cfg.Positions.Count()))
	}

	return nil
}

// manage runs the exit checks for all currently open positions. Failures are
// contained per market: a bad ticker or candle fetch never aborts the
// remaining checks.
func (b *Bot) manage(ctx context.Context) error {
	positions := b.cfg.Positions.ActivePositions()
	for idx := range positions {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := b.managePosition(ctx, &positions[idx])
		if err != nil {
			b.cfg.Logger.Error().Msgf("managing %s position: %v", positions[idx].Market, err)
			if b.cfg.Metrics != nil {
				b.cfg.Metrics.MarketErrors.Inc()
			}
		}
	}

	return nil
}

// openPosition opens a position for the provided market sized from the
// configured trade amount, bounded by the configured stop loss and take
// profit percentages.
func (b *Bot) openPosition(watch Watch, confidence float64, details shared.SignalDetails) error {
	price := details.CurrentPrice
	if price <= 0 {
		return fmt.Errorf("invalid current price for %s: %f", watch.Market, price)
	}

	stopLoss := price * (1 - b.cfg.StopLossPercent/100)
	takeProfit := price * (1 + b.cfg.TakeProfitPercent/100)
	amount := b.cfg.TradeAmount / price

	pos, err := position.NewPosition(watch.Market, watch.Asset, price, amount,
		stopLoss, takeProfit, confidence, details, time.Now().UTC())
	if err != nil {
		return err
	}

	err = b.cfg.Positions.Open(pos)
	if err != nil {
		return err
	}

	if b.cfg.Metrics != nil {
		b.cfg.Metrics.TradesOpened.Inc()
		b.cfg.Metrics.OpenPositions.Set(float64(b.cfg.Positions.Count()))
	}

	return nil
}

// scan evaluates the watchlist for fresh entries while open position
// capacity remains. Markets already holding a position are skipped.
func (b *Bot) scan(ctx context.Context) error {
	for _, watch := range b.cfg.Watchlist {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if b.cfg.Positions.Full() {
			return nil
		}
		if b.cfg.Positions.Has(watch.Market) {
			continue
		}

		decision, confidence, details, err := b.evaluate(ctx, watch.Market, watch.Asset)
		if err != nil {
			b.cfg.Logger.Error().Msgf("scanning %s: %v", watch.Market, err)
			if b.cfg.Metrics != nil {
				b.cfg.Metrics.MarketErrors.Inc()
			}
			continue
		}

		if decision != shared.Buy || !b.cfg.Engine.Actionable(decision, confidence) {
			continue
		}

		err = b.openPosition(watch, confidence, details)
		if err != nil {
			b.cfg.Logger.Error().Msgf("opening %s position: %v", watch.Market, err)
			if b.cfg.Metrics != nil {
				b.cfg.Metrics.MarketErrors.Inc()
			}
		}
	}

	return nil
}

// runCycle runs one manage-then-scan trading cycle.
func (b *Bot) runCycle(ctx context.Context) error {
	err := b.manage(ctx)
	if err != nil {
		return err
	}

	if !b.cfg.Positions.Full() {
		err = b.scan(ctx)
		if err != nil {
			return err
		}
	}

	b.cycles.Inc()
	if b.cfg.Metrics != nil {
		b.cfg.Metrics.ScanCycles.Inc()
	}

	return nil
}

// Run manages the lifecycle processes of the trading bot. The inter-cycle
// wait is cancellable, so a stop request takes effect immediately rather
// than waiting out the interval.
func (b *Bot) Run(ctx context.Context) {
	b.running.Store(true)
	defer b.running.Store(false)

	b.cfg.Logger.Info().Msgf("trading bot started, tracking %d markets", len(b.cfg.Watchlist))

	for {
		interval := b.cfg.CheckInterval

		err := b.runCycle(ctx)
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			b.cfg.Logger.Info().Msg("trading bot stopped")
			return
		case err != nil:
			b.cfg.Logger.Error().Msgf("trading cycle: %v", err)
			interval = backoffInterval
		}

		select {
		case <-ctx.Done():
			b.cfg.Logger.Info().Msg("trading bot stopped")
			return
		case <-time.After(interval):
		}
	}
}

// Package service wires the candle sources, signal engine, position manager
// and trading bot into a runnable market watch service.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"

	"tradewatch/bot"
	"tradewatch/database"
	"tradewatch/engine"
	"tradewatch/fetch"
	"tradewatch/metrics"
	"tradewatch/notify"
	"tradewatch/position"
	"tradewatch/shared"
)

const (
	// Default trading parameters.
	defaultMaxTrades         = 3
	defaultTradeAmount       = float64(100)
	defaultStopLossPercent   = float64(2)
	defaultTakeProfitPercent = float64(5)
	defaultCheckInterval     = 60
	defaultMinConfidence     = 0.6
	defaultTimeframe         = "5m"

	// summaryTime is the daily trading summary time (UTC).
	summaryTime = "17:00"
)

// TradeWatchConfig represents the configuration struct for the trade watch
// service.
type TradeWatchConfig struct {
	// CryptoMarkets represents the tracked crypto markets.
	CryptoMarkets []string
	// StockMarkets represents the tracked stock markets.
	StockMarkets []string
	// ForexMarkets represents the tracked forex markets.
	ForexMarkets []string
	// Timeframe is the candle timeframe used for evaluations.
	Timeframe string
	// FMPAPIKey is the FMP service API Key.
	FMPAPIKey string
	// MaxTrades is the maximum number of concurrently open positions.
	MaxTrades int
	// TradeAmount is the quote-currency amount committed per position.
	TradeAmount float64
	// StopLossPercent is the stop loss distance below entry, in percent.
	StopLossPercent float64
	// TakeProfitPercent is the take profit distance above entry, in percent.
	TakeProfitPercent float64
	// CheckInterval is the wait between trading cycles, in seconds.
	CheckInterval int
	// MinConfidence is the minimum confidence for actionable decisions.
	MinConfidence float64
	// ExecuteViaBrowser relays trade intents to the notification sink
	// instead of only recording them.
	ExecuteViaBrowser bool
	// TelegramToken is the telegram bot API token.
	TelegramToken string
	// TelegramChatID is the telegram chat receiving trade signals.
	TelegramChatID int64
	// DatabaseEndpoint represents the trade journal connection endpoint.
	DatabaseEndpoint string
	// DatabaseUser is the trade journal user.
	DatabaseUser string
	// DatabasePass is the trade journal user pass.
	DatabasePass string
	// MetricsAddr is the prometheus metrics listen address.
	MetricsAddr string
	// Cancel is the context cancellation function.
	Cancel context.CancelFunc
}

// Validate asserts the config has sane inputs.
func (cfg *TradeWatchConfig) Validate() error {
	var errs error

	markets := len(cfg.CryptoMarkets) + len(cfg.StockMarkets) + len(cfg.ForexMarkets)
	if markets == 0 {
		errs = errors.Join(errs, fmt.Errorf("no markets provided for the trade watch service"))
	}
	if (len(cfg.StockMarkets) > 0 || len(cfg.ForexMarkets) > 0) && cfg.FMPAPIKey == "" {
		errs = errors.Join(errs, fmt.Errorf("fmp api key required for stock and forex markets"))
	}
	if cfg.Timeframe != "" {
		_, err := shared.ParseTimeframe(cfg.Timeframe)
		if err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if cfg.Cancel == nil {
		errs = errors.Join(errs, fmt.Errorf("context cancellation function cannot be nil"))
	}

	return errs
}

// applyDefaults fills unset config fields with their defaults.
func (cfg *TradeWatchConfig) applyDefaults() {
	if cfg.MaxTrades <= 0 {
		cfg.MaxTrades = defaultMaxTrades
	}
	if cfg.TradeAmount <= 0 {
		cfg.TradeAmount = defaultTradeAmount
	}
	if cfg.StopLossPercent <= 0 {
		cfg.StopLossPercent = defaultStopLossPercent
	}
	if cfg.TakeProfitPercent <= 0 {
		cfg.TakeProfitPercent = defaultTakeProfitPercent
	}
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = defaultCheckInterval
	}
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = defaultMinConfidence
	}
	if cfg.Timeframe == "" {
		cfg.Timeframe = defaultTimeframe
	}
}

// TradeWatch represents the market watch and auto trading service.
type TradeWatch struct {
	cfg            *TradeWatchConfig
	sources        *fetch.Sources
	signalEngine   *engine.Engine
	positions      *position.Manager
	tradingBot     *bot.Bot
	db             *database.Database
	notifier       shared.Notifier
	serviceMetrics *metrics.Metrics
	metricsServer  *http.Server
	jobScheduler   *gocron.Scheduler
	logger         *zerolog.Logger
	wg             sync.WaitGroup
}

// watchlist assembles the bot watchlist from the configured market lists.
func watchlist(cfg *TradeWatchConfig) []bot.Watch {
	watches := make([]bot.Watch, 0,
		len(cfg.CryptoMarkets)+len(cfg.StockMarkets)+len(cfg.ForexMarkets))

	for _, market := range cfg.CryptoMarkets {
		watches = append(watches, bot.Watch{Market: market, Asset: shared.Crypto})
	}
	for _, market := range cfg.StockMarkets {
		watches = append(watches, bot.Watch{Market: market, Asset: shared.Stock})
	}
	for _, market := range cfg.ForexMarkets {
		watches = append(watches, bot.Watch{Market: market, Asset: shared.Forex})
	}

	return watches
}

// NewTradeWatch initializes a new trade watch service.
func NewTradeWatch(ctx context.Context, cfg *TradeWatchConfig) (*TradeWatch, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	logger := log.With().Str("service", "tradewatch").Logger()

	sources, err := fetch.NewSources(&fetch.SourcesConfig{
		FMPAPIKey:      cfg.FMPAPIKey,
		FMPBaseURL:     fetch.FMPBaseURL,
		BinanceBaseURL: fetch.BinanceBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating candle sources: %w", err)
	}

	engineLogger := logger.With().Str("component", "engine").Logger()
	signalEngine := engine.NewEngine(&engine.EngineConfig{
		MinConfidence: cfg.MinConfidence,
		Logger:        &engineLogger,
	})

	var db *database.Database
	if cfg.DatabaseEndpoint != "" {
		dbLogger := logger.With().Str("component", "database").Logger()
		db, err = database.NewDatabase(ctx, &database.DatabaseConfig{
			Endpoint: cfg.DatabaseEndpoint,
			User:     cfg.DatabaseUser,
			Pass:     cfg.DatabasePass,
			Logger:   &dbLogger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating trade journal: %w", err)
		}
	}

	var notifier shared.Notifier
	notifierLogger := logger.With().Str("component", "notifier").Logger()
	switch {
	case cfg.TelegramToken != "":
		notifier, err = notify.NewTelegram(&notify.TelegramConfig{
			Token:  cfg.TelegramToken,
			ChatID: cfg.TelegramChatID,
			Logger: &notifierLogger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating telegram notifier: %w", err)
		}
	default:
		notifier = notify.NewLog(&notifierLogger)
	}

	var notifyFunc func(signal shared.TradeSignal)
	if cfg.ExecuteViaBrowser {
		notifyFunc = func(signal shared.TradeSignal) {
			err := notifier.Notify(signal)
			if err != nil {
				notifierLogger.Error().Msgf("relaying trade signal: %v", err)
			}
		}
	}

	var persistFunc func(record *shared.TradeRecord) error
	if db != nil {
		persistFunc = func(record *shared.TradeRecord) error {
			return db.PersistClosedTrade(ctx, record)
		}
	}

	positionsLogger := logger.With().Str("component", "positionmanager").Logger()
	positions := position.NewManager(&position.ManagerConfig{
		MaxPositions:       cfg.MaxTrades,
		Notify:             notifyFunc,
		PersistClosedTrade: persistFunc,
		Logger:             &positionsLogger,
	})

	serviceMetrics := metrics.NewMetrics(prometheus.DefaultRegisterer)

	timeframe, err := shared.ParseTimeframe(cfg.Timeframe)
	if err != nil {
		return nil, err
	}

	botLogger := logger.With().Str("component", "bot").Logger()
	tradingBot, err := bot.NewBot(&bot.BotConfig{
		Watchlist:         watchlist(cfg),
		Timeframe:         timeframe,
		TradeAmount:       cfg.TradeAmount,
		StopLossPercent:   cfg.StopLossPercent,
		TakeProfitPercent: cfg.TakeProfitPercent,
		CheckInterval:     time.Duration(cfg.CheckInterval) * time.Second,
		Source:            sources.Source,
		Positions:         positions,
		Engine:            signalEngine,
		Metrics:           serviceMetrics,
		Logger:            &botLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating trading bot: %w", err)
	}

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsServer = metrics.NewServer(cfg.MetricsAddr, prometheus.DefaultGatherer)
	}

	jobScheduler := gocron.NewScheduler(time.UTC)

	service := &TradeWatch{
		cfg:            cfg,
		sources:        sources,
		signalEngine:   signalEngine,
		positions:      positions,
		tradingBot:     tradingBot,
		db:             db,
		notifier:       notifier,
		serviceMetrics: serviceMetrics,
		metricsServer:  metricsServer,
		jobScheduler:   jobScheduler,
		logger:         &logger,
	}

	_, err = jobScheduler.Every(1).Day().At(summaryTime).Do(service.logDailySummary)
	if err != nil {
		return nil, fmt.Errorf("scheduling daily summary: %w", err)
	}

	return service, nil
}

// logDailySummary logs aggregate trading statistics.
func (t *TradeWatch) logDailySummary() {
	stats := t.positions.Stats()
	t.logger.Info().Msgf("daily summary: %d trades, %d wins, %d losses, win rate %.1f%%, total pnl %.4f, avg pnl %.4f",
		stats.TotalTrades, stats.Wins, stats.Losses, stats.WinRate,
		stats.TotalPNL, stats.AveragePNL)
}

// Run handles the lifecycle processes of the trade watch service.
func (t *TradeWatch) Run(ctx context.Context) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.tradingBot.Run(ctx)
	}()

	if t.metricsServer != nil {
		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			err := t.metricsServer.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				t.logger.Error().Msgf("metrics server: %v", err)
				t.cfg.Cancel()
			}
		}()
	}

	t.jobScheduler.StartAsync()

	<-ctx.Done()

	t.jobScheduler.Stop()

	if t.metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		err := t.metricsServer.Shutdown(shutdownCtx)
		if err != nil {
			t.logger.Error().Msgf("shutting down metrics server: %v", err)
		}
		cancel()
	}

	t.wg.Wait()
	t.logger.Info().Msg("trade watch service stopped")
}

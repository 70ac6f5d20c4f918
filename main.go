package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"tradewatch/service"
)

// handleTermination processes context cancellation signals or interrupt signals from the OS.
func handleTermination(ctx context.Context, cancel context.CancelFunc) {
	// Listen for interrupt signals.
	signals := []os.Signal{os.Interrupt}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, signals...)

	// Wait for the context to be cancelled or an interrupt signal.
	for {
		select {
		case <-ctx.Done():
			return

		case <-interrupt:
			cancel()
		}
	}
}

func main() {
	var cfg Config
	err := loadConfig(&cfg, "")
	if err != nil {
		log.Printf("loading config: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serviceCfg := service.TradeWatchConfig{
		CryptoMarkets:     cfg.CryptoMarkets,
		StockMarkets:      cfg.StockMarkets,
		ForexMarkets:      cfg.ForexMarkets,
		Timeframe:         cfg.Timeframe,
		FMPAPIKey:         cfg.FMPAPIKey,
		MaxTrades:         cfg.MaxTrades,
		TradeAmount:       cfg.TradeAmount,
		StopLossPercent:   cfg.StopLossPercent,
		TakeProfitPercent: cfg.TakeProfitPercent,
		CheckInterval:     cfg.CheckInterval,
		MinConfidence:     cfg.MinConfidence,
		ExecuteViaBrowser: cfg.ExecuteViaBrowser,
		TelegramToken:     cfg.TelegramToken,
		TelegramChatID:    cfg.TelegramChatID,
		DatabaseEndpoint:  cfg.DatabaseEndpoint,
		DatabaseUser:      cfg.DatabaseUser,
		DatabasePass:      cfg.DatabasePass,
		MetricsAddr:       cfg.MetricsAddr,
		Cancel:            cancel,
	}
	tradeWatch, err := service.NewTradeWatch(ctx, &serviceCfg)
	if err != nil {
		log.Printf("creating trade watch service: %v", err)
		return
	}

	go handleTermination(ctx, cancel)
	tradeWatch.Run(ctx)
}

package shared

import "context"

// CandleSource defines the requirements for fetching market candle data.
type CandleSource interface {
	// Candles fetches the most recent candlesticks for the provided market.
	Candles(ctx context.Context, market string, timeframe Timeframe, limit int) ([]Candlestick, error)
	// Ticker fetches the latest traded price for the provided market.
	Ticker(ctx context.Context, market string) (float64, error)
}

// Notifier defines the requirements for relaying trade signals to a sink.
type Notifier interface {
	// Notify relays the provided trade signal.
	Notify(signal TradeSignal) error
}

// TradeStorer defines the requirements for persisting closed trades.
type TradeStorer interface {
	// PersistClosedTrade stores the provided closed trade record.
	PersistClosedTrade(ctx context.Context, record *TradeRecord) error
}

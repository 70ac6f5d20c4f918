package shared

import "time"

// SignalDetails describes the per-family sub-signals contributing to a decision.
type SignalDetails struct {
	RSISignal       string
	MACDSignal      string
	BollingerSignal string
	EMASignal       string
	MFISignal       string
	TrendStrength   string
	Decision        Decision
	BuySignals      int
	SellSignals     int
	TotalSignals    int
	CurrentPrice    float64
	RSIValue        float64
	MACDValue       float64
	ADXValue        float64
}

// TradeSignal represents a trade intent relayed to the notification sink.
type TradeSignal struct {
	Market     string
	Asset      Asset
	Side       Decision
	Amount     float64
	Price      float64
	StopLoss   float64
	TakeProfit float64
	Reason     string
	PNL        float64
	PNLPercent float64
	Details    SignalDetails
	CreatedOn  time.Time
}

// NewTradeSignal initializes a new trade signal.
func NewTradeSignal(market string, asset Asset, side Decision, amount float64,
	price float64, created time.Time) TradeSignal {
	return TradeSignal{
		Market:    market,
		Asset:     asset,
		Side:      side,
		Amount:    amount,
		Price:     price,
		CreatedOn: created,
	}
}

// TradeRecord represents an append-only trade history entry.
type TradeRecord struct {
	ID         string
	Action     Decision
	Market     string
	Asset      Asset
	Price      float64
	Amount     float64
	Strength   float64
	Reason     string
	PNL        float64
	PNLPercent float64
	CreatedOn  time.Time
}

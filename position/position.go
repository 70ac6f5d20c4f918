package position

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"tradewatch/shared"
)

// Status represents the status of a trade position.
type Status int

const (
	Open Status = iota
	Closed
)

// String stringifies the provided position status.
func (s *Status) String() string {
	switch *s {
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Position represents an open trade for a market, bounded by its stop loss
// and take profit prices. A position is immutable once opened aside from its
// status flip on close.
type Position struct {
	ID         string
	Market     string
	Asset      shared.Asset
	Side       shared.Decision
	EntryPrice float64
	Amount     float64
	StopLoss   float64
	TakeProfit float64
	Strength   float64
	Details    shared.SignalDetails
	Status     Status
	CreatedOn  time.Time
	ClosedOn   time.Time
}

// NewPosition initializes a new open position.
func NewPosition(market string, asset shared.Asset, entryPrice float64, amount float64,
	stopLoss float64, takeProfit float64, strength float64, details shared.SignalDetails,
	now time.Time) (*Position, error) {
	if entryPrice <= 0 {
		return nil, fmt.Errorf("position entry price must be positive, got %f", entryPrice)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("position amount must be positive, got %f", amount)
	}

	pos := &Position{
		ID:         uuid.New().String(),
		Market:     market,
		Asset:      asset,
		Side:       shared.Buy,
		EntryPrice: entryPrice,
		Amount:     amount,
		StopLoss:   stopLoss,
		TakeProfit: takeProfit,
		Strength:   strength,
		Details:    details,
		Status:     Open,
		CreatedOn:  now,
	}

	return pos, nil
}

// PNL returns the absolute and percentage profit of the position at the
// provided price.
func (p *Position) PNL(price float64) (float64, float64) {
	pnl := (price - p.EntryPrice) * p.Amount
	pnlPercent := ((price - p.EntryPrice) / p.EntryPrice) * 100

	return pnl, pnlPercent
}

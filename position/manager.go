// Package position manages simulated trade positions through their
// lifecycles. The manager owns the open position set and the append-only
// trade history; external readers only ever receive copies.
package position

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tradewatch/shared"
)

// ManagerConfig represents the position manager configuration.
type ManagerConfig struct {
	// MaxPositions is the maximum number of concurrently open positions.
	MaxPositions int
	// Notify relays the provided trade signal to the notification sink.
	Notify func(signal shared.TradeSignal)
	// PersistClosedTrade persists the provided closed trade record.
	PersistClosedTrade func(record *shared.TradeRecord) error
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Manager manages positions through their lifecycles.
type Manager struct {
	cfg          *ManagerConfig
	positions    map[string]*Position
	history      []shared.TradeRecord
	positionsMtx sync.RWMutex
}

// NewManager initializes a new position manager.
func NewManager(cfg *ManagerConfig) *Manager {
	return &Manager{
		cfg:       cfg,
		positions: make(map[string]*Position),
		history:   []shared.TradeRecord{},
	}
}

// Count returns the number of currently open positions.
func (m *Manager) Count() int {
	m.positionsMtx.RLock()
	defer m.positionsMtx.RUnlock()

	return len(m.positions)
}

// Full reports whether the open position set has reached its maximum size.
func (m *Manager) Full() bool {
	m.positionsMtx.RLock()
	defer m.positionsMtx.RUnlock()

	return len(m.positions) >= m.cfg.MaxPositions
}

// Has reports whether the provided market holds an open position.
func (m *Manager) Has(market string) bool {
	m.positionsMtx.RLock()
	defer m.positionsMtx.RUnlock()

	_, ok := m.positions[market]
	return ok
}

// ActivePositions returns a snapshot of the currently open positions.
func (m *Manager) ActivePositions() []Position {
	m.positionsMtx.RLock()
	defer m.positionsMtx.RUnlock()

	positions := make([]Position, 0, len(m.positions))
	for _, pos := range m.positions {
		positions = append(positions, *pos)
	}

	return positions
}

// History returns a snapshot of the trade history.
func (m *Manager) History() []shared.TradeRecord {
	m.positionsMtx.RLock()
	defer m.positionsMtx.RUnlock()

	history := make([]shared.TradeRecord, len(m.history))
	copy(history, m.history)

	return history
}

// Open opens the provided position, enforcing the one-position-per-market
// and maximum open position invariants.
func (m *Manager) Open(pos *Position) error {
	m.positionsMtx.Lock()

	if _, ok := m.positions[pos.Market]; ok {
		m.positionsMtx.Unlock()
		return fmt.Errorf("market %s already holds an open position", pos.Market)
	}
	if len(m.positions) >= m.cfg.MaxPositions {
		m.positionsMtx.Unlock()
		return fmt.Errorf("maximum open positions reached: %d/%d",
			len(m.positions), m.cfg.MaxPositions)
	}

	m.positions[pos.Market] = pos
	m.history = append(m.history, shared.TradeRecord{
		ID:        uuid.New().String(),
		Action:    shared.Buy,
		Market:    pos.Market,
		Asset:     pos.Asset,
		Price:     pos.EntryPrice,
		Amount:    pos.Amount,
		Strength:  pos.Strength,
		CreatedOn: pos.CreatedOn,
	})
	m.positionsMtx.Unlock()

	m.cfg.Logger.Info().Msgf("opened %s position (%s) @ %.4f, stop loss %.4f, take profit %.4f",
		pos.Market, pos.ID, pos.EntryPrice, pos.StopLoss, pos.TakeProfit)

	if m.cfg.Notify != nil {
		signal := shared.NewTradeSignal(pos.Market, pos.Asset, shared.Buy, pos.Amount,
			pos.EntryPrice, pos.CreatedOn)
		signal.StopLoss = pos.StopLoss
		signal.TakeProfit = pos.TakeProfit
		signal.Details = pos.Details
		m.cfg.Notify(signal)
	}

	return nil
}

// Close closes the open position held by the provided market at the provided
// price, appends the closing trade record and persists it.
func (m *Manager) Close(market string, price float64, reason shared.CloseReason, now time.Time) (*Position, error) {
	m.positionsMtx.Lock()

	pos, ok := m.positions[market]
	if !ok {
		m.positionsMtx.Unlock()
		return nil, fmt.Errorf("market %s holds no open position", market)
	}

	delete(m.positions, market)

	pos.Status = Closed
	pos.ClosedOn = now

	pnl, pnlPercent := pos.PNL(price)
	record := shared.TradeRecord{
		ID:         uuid.New().String(),
		Action:     shared.Sell,
		Market:     pos.Market,
		Asset:      pos.Asset,
		Price:      price,
		Amount:     pos.Amount,
		Strength:   pos.Strength,
		Reason:     reason.String(),
		PNL:        pnl,
		PNLPercent: pnlPercent,
		CreatedOn:  now,
	}
	m.history = append(m.history, record)
	m.positionsMtx.Unlock()

	m.cfg.Logger.Info().Msgf("closed %s position (%s) @ %.4f (%s), pnl %.4f (%+.2f%%)",
		pos.Market, pos.ID, price, reason.String(), pnl, pnlPercent)

	if m.cfg.PersistClosedTrade != nil {
		err := m.cfg.PersistClosedTrade(&record)
		if err != nil {
			m.cfg.Logger.Error().Msgf("persisting closed trade for %s: %v", pos.Market, err)
		}
	}

	if m.cfg.Notify != nil {
		signal := shared.NewTradeSignal(pos.Market, pos.Asset, shared.Sell, pos.Amount, price, now)
		signal.StopLoss = pos.StopLoss
		signal.TakeProfit = pos.TakeProfit
		signal.Reason = reason.String()
		signal.PNL = pnl
		signal.PNLPercent = pnlPercent
		signal.Details = pos.Details
		m.cfg.Notify(signal)
	}

	return pos, nil
}

// Stats represents aggregate trading statistics.
type Stats struct {
	TotalTrades int
	Wins        int
	Losses      int
	WinRate     float64
	TotalPNL    float64
	AveragePNL  float64
}

// Stats returns aggregate statistics over the closed trades in the history.
func (m *Manager) Stats() Stats {
	m.positionsMtx.RLock()
	defer m.positionsMtx.RUnlock()

	var stats Stats
	for idx := range m.history {
		if m.history[idx].Action != shared.Sell {
			continue
		}

		stats.TotalTrades++
		stats.TotalPNL += m.history[idx].PNL
		if m.history[idx].PNL > 0 {
			stats.Wins++
		} else {
			stats.Losses++
		}
	}

	if stats.TotalTrades > 0 {
		stats.WinRate = float64(stats.Wins) / float64(stats.TotalTrades) * 100
		stats.AveragePNL = stats.TotalPNL / float64(stats.TotalTrades)
	}

	return stats
}

package shared

import (
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
)

func TestNewTradeSignal(t *testing.T) {
	// Ensure trade signals can be created.
	now := time.Now().UTC()
	signal := NewTradeSignal("BTCUSDT", Crypto, Buy, 0.5, 42000, now)

	assert.Equal(t, signal.Market, "BTCUSDT")
	assert.Equal(t, signal.Asset, Crypto)
	assert.Equal(t, signal.Side, Buy)
	assert.Equal(t, signal.Amount, 0.5)
	assert.Equal(t, signal.Price, float64(42000))
	assert.Equal(t, signal.CreatedOn, now)

	// Ensure optional fields default to their zero values.
	assert.Equal(t, signal.StopLoss, float64(0))
	assert.Equal(t, signal.TakeProfit, float64(0))
	assert.Equal(t, signal.Reason, "")
	assert.Equal(t, signal.PNL, float64(0))
}

package shared

import (
	"fmt"
	"time"
)

// Candlestick represents a unit candlestick for a market.
type Candlestick struct {
	Open   float64
	Low    float64
	High   float64
	Close  float64
	Volume float64
	Date   time.Time

	// Metadata fields.
	Market    string
	Asset     Asset
	Timeframe Timeframe
}

// Validate asserts the candlestick has sane values.
func (c *Candlestick) Validate() error {
	if c.Open <= 0 || c.High <= 0 || c.Low <= 0 || c.Close <= 0 {
		return fmt.Errorf("candlestick prices must be positive, got o=%f h=%f l=%f c=%f",
			c.Open, c.High, c.Low, c.Close)
	}
	if c.Volume < 0 {
		return fmt.Errorf("candlestick volume cannot be negative, got %f", c.Volume)
	}
	if c.High < c.Open || c.High < c.Close || c.High < c.Low {
		return fmt.Errorf("candlestick high %f below open/close/low", c.High)
	}
	if c.Low > c.Open || c.Low > c.Close {
		return fmt.Errorf("candlestick low %f above open/close", c.Low)
	}

	return nil
}

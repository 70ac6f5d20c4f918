package notify

import (
	"github.com/rs/zerolog"

	"tradewatch/shared"
)

// Log relays trade signals to the application log. It serves as the sink
// when no external notifier is configured.
type Log struct {
	logger *zerolog.Logger
}

// Ensure the log notifier implements the Notifier interface.
var _ shared.Notifier = (*Log)(nil)

// NewLog initializes a new log notifier.
func NewLog(logger *zerolog.Logger) *Log {
	return &Log{logger: logger}
}

// Notify relays the provided trade signal to the log.
func (l *Log) Notify(signal shared.TradeSignal) error {
	l.logger.Info().Msg(formatSignal(&signal))
	return nil
}

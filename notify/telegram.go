// Package notify implements trade signal sinks.
package notify

import (
	"fmt"

	gobot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"tradewatch/shared"
)

// TelegramConfig represents the configuration for the telegram notifier.
type TelegramConfig struct {
	// Token is the telegram bot API token.
	Token string
	// ChatID is the chat receiving trade signal messages.
	ChatID int64
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Telegram relays trade signals to a telegram chat.
type Telegram struct {
	cfg *TelegramConfig
	bot *gobot.BotAPI
}

// Ensure the telegram notifier implements the Notifier interface.
var _ shared.Notifier = (*Telegram)(nil)

// NewTelegram initializes a new telegram notifier.
func NewTelegram(cfg *TelegramConfig) (*Telegram, error) {
	bot, err := gobot.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	bot.Debug = false
	cfg.Logger.Info().Msgf("telegram notifier connected as @%s", bot.Self.UserName)

	return &Telegram{
		cfg: cfg,
		bot: bot,
	}, nil
}

// formatSignal renders the provided trade signal as a chat message.
func formatSignal(signal *shared.TradeSignal) string {
	switch signal.Side {
	case shared.Sell:
		return fmt.Sprintf("%s %s %.6f @ %.4f (%s) | PNL %.4f (%+.2f%%)",
			signal.Side.String(), signal.Market, signal.Amount, signal.Price,
			signal.Reason, signal.PNL, signal.PNLPercent)
	default:
		return fmt.Sprintf("%s %s %.6f @ %.4f | SL %.4f TP %.4f | strength %s",
			signal.Side.String(), signal.Market, signal.Amount, signal.Price,
			signal.StopLoss, signal.TakeProfit, signal.Details.TrendStrength)
	}
}

// Notify relays the provided trade signal to the configured chat.
func (t *Telegram) Notify(signal shared.TradeSignal) error {
	msg := gobot.NewMessage(t.cfg.ChatID, formatSignal(&signal))

	_, err := t.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("sending telegram trade signal: %w", err)
	}

	return nil
}

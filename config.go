package main

import (
	"flag"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the configuration struct for the service.
type Config struct {
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
	// ExecuteViaBrowser relays trade intents to the notification sink.
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

	registeredFlags map[string]bool
}

// registerFlag registers command line arguments of any type and tracks them to avoid reregistration.
func (cfg *Config) registerFlag(name string, value interface{}, usage string) error {
	if cfg.registeredFlags == nil {
		cfg.registeredFlags = make(map[string]bool)
	}

	if cfg.registeredFlags[name] {
		return nil
	}

	cfg.registeredFlags[name] = true

	defValue := os.Getenv(name)
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("%s: value must be a non-nil pointer", name)
	}

	switch val.Elem().Kind() {
	case reflect.String:
		flag.StringVar(value.(*string), name, defValue, usage)
	case reflect.Bool:
		var def bool
		if defValue != "" {
			def, _ = strconv.ParseBool(defValue)
		}
		flag.BoolVar(value.(*bool), name, def, usage)
	case reflect.Int:
		var def int
		if defValue != "" {
			def, _ = strconv.Atoi(defValue)
		}
		flag.IntVar(value.(*int), name, def, usage)
	case reflect.Int64:
		var def int64
		if defValue != "" {
			def, _ = strconv.ParseInt(defValue, 10, 64)
		}
		flag.Int64Var(value.(*int64), name, def, usage)
	case reflect.Float64:
		var def float64
		if defValue != "" {
			def, _ = strconv.ParseFloat(defValue, 64)
		}
		flag.Float64Var(value.(*float64), name, def, usage)
	case reflect.Slice:
		// Only handle []string
		if val.Elem().Type().Elem().Kind() == reflect.String {
			var def []string
			if defValue != "" {
				def = strings.Split(defValue, ",")
			}
			flag.Func(name, usage, func(s string) error {
				*value.(*[]string) = strings.Split(s, ",")
				return nil
			})
			// Set default if not provided via flag
			if len(def) > 0 {
				*value.(*[]string) = def
			}
		} else {
			return fmt.Errorf("%s: unsupported slice type", name)
		}
	default:
		return fmt.Errorf("%s: unsupported type", name)
	}

	return nil
}

// loadConfig loads the configuration from environment variables and command line flags.
func loadConfig(cfg *Config, path string) error {
	if path == "" {
		path = ".env"
	}

	// Check if the expected .env file exists before loading it.
	_, err := os.Stat(path)
	if err == nil {
		err := godotenv.Load(path)
		if err != nil {
			return fmt.Errorf("loading .env file: %w", err)
		}
	}

	// Register command line arguments using loaded environment variables as defaults.
	flags := []struct {
		name  string
		value interface{}
		usage string
	}{
		{"cryptomarkets", &cfg.CryptoMarkets, "the tracked crypto markets"},
		{"stockmarkets", &cfg.StockMarkets, "the tracked stock markets"},
		{"forexmarkets", &cfg.ForexMarkets, "the tracked forex markets"},
		{"timeframe", &cfg.Timeframe, "the candle timeframe used for evaluations"},
		{"fmpapikey", &cfg.FMPAPIKey, "the FMP api key"},
		{"maxtrades", &cfg.MaxTrades, "the maximum number of concurrently open positions"},
		{"tradeamount", &cfg.TradeAmount, "the quote-currency amount committed per position"},
		{"stoplosspercent", &cfg.StopLossPercent, "the stop loss distance below entry, in percent"},
		{"takeprofitpercent", &cfg.TakeProfitPercent, "the take profit distance above entry, in percent"},
		{"checkinterval", &cfg.CheckInterval, "the wait between trading cycles, in seconds"},
		{"minconfidence", &cfg.MinConfidence, "the minimum confidence for actionable decisions"},
		{"executeviabrowser", &cfg.ExecuteViaBrowser, "relay trade intents to the notification sink"},
		{"telegramtoken", &cfg.TelegramToken, "the telegram bot api token"},
		{"telegramchatid", &cfg.TelegramChatID, "the telegram chat receiving trade signals"},
		{"databaseendpoint", &cfg.DatabaseEndpoint, "the trade journal connection endpoint"},
		{"databaseuser", &cfg.DatabaseUser, "the trade journal user"},
		{"databasepass", &cfg.DatabasePass, "the trade journal user pass"},
		{"metricsaddr", &cfg.MetricsAddr, "the prometheus metrics listen address"},
	}

	for idx := range flags {
		err = cfg.registerFlag(flags[idx].name, flags[idx].value, flags[idx].usage)
		if err != nil {
			return err
		}
	}

	// Parse command-line flags.
	flag.Parse()

	return nil
}

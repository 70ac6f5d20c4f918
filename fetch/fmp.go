// Package fetch implements candle sources for the tracked asset classes.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"tradewatch/shared"
)

const (
	// FMPBaseURL is the production FMP API base url.
	FMPBaseURL = "https://financialmodelingprep.com/stable"

	// requestTimeout bounds candle source http requests.
	requestTimeout = time.Second * 5
)

// FMPConfig represents the configuration for the FMP client.
type FMPConfig struct {
	// APIKey is the FMP API Key.
	APIKey string
	// BaseURL is the FMP API base url.
	BaseURL string
	// Asset is the asset class served by the client.
	Asset shared.Asset
}

// FMPClient represents the Financial Modeling Preparation (FMP) API client,
// serving stock and forex market data.
type FMPClient struct {
	cfg   *FMPConfig
	httpc http.Client
	buf   *bytes.Buffer
}

// Ensure the FMPClient implements the CandleSource interface.
var _ shared.CandleSource = (*FMPClient)(nil)

// NewFMPClient instantiates a new FMP client.
func NewFMPClient(cfg *FMPConfig) (*FMPClient, error) {
	if cfg.Asset == shared.Crypto {
		return nil, fmt.Errorf("fmp client does not serve crypto markets")
	}

	return &FMPClient{
		cfg:   cfg,
		httpc: http.Client{Timeout: requestTimeout},
		buf:   bytes.NewBuffer(make([]byte, 0, 512)),
	}, nil
}

// formURL creates full urls including parameters for the api.
func (c *FMPClient) formURL(path string, params string) string {
	c.buf.WriteString(c.cfg.BaseURL)
	c.buf.WriteString(path)
	c.buf.WriteString("?")
	c.buf.WriteString(params)
	url := c.buf.String()
	c.buf.Reset()

	return url
}

// historicalPath returns the intraday historical path for the provided timeframe.
func historicalPath(timeframe shared.Timeframe) (string, error) {
	switch timeframe {
	case shared.OneMinute:
		return "/historical-chart/1min", nil
	case shared.FiveMinute:
		return "/historical-chart/5min", nil
	case shared.FifteenMinute:
		return "/historical-chart/15min", nil
	case shared.ThirtyMinute:
		return "/historical-chart/30min", nil
	case shared.OneHour:
		return "/historical-chart/1hour", nil
	case shared.FourHour:
		return "/historical-chart/4hour", nil
	default:
		return "", fmt.Errorf("unsupported fmp timeframe provided: %s", timeframe.String())
	}
}

// ParseCandlesticks parses candlesticks from the provided json data. FMP
// returns candles most-recent-first, so the parsed series is reversed into
// chronological order.
func (c *FMPClient) ParseCandlesticks(data []gjson.Result, market string, timeframe shared.Timeframe) ([]shared.Candlestick, error) {
	candles := make([]shared.Candlestick, len(data))

	for idx := range data {
		var candle shared.Candlestick

		candle.Open = data[idx].Get("open").Float()
		candle.Low = data[idx].Get("low").Float()
		candle.High = data[idx].Get("high").Float()
		candle.Close = data[idx].Get("close").Float()
		candle.Volume = data[idx].Get("volume").Float()

		candle.Market = market
		candle.Asset = c.cfg.Asset
		candle.Timeframe = timeframe

		dt, err := time.Parse(shared.DateLayout, data[idx].Get("date").String())
		if err != nil {
			return nil, fmt.Errorf("parsing candlestick date: %w", err)
		}

		candle.Date = dt
		candles[len(data)-1-idx] = candle
	}

	return candles, nil
}

// fetch executes the provided request url and returns the response body.
func (c *FMPClient) fetch(ctx context.Context, formedURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, formedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", formedURL, err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected response status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// Candles fetches the most recent candlesticks for the provided market.
func (c *FMPClient) Candles(ctx context.Context, market string, timeframe shared.Timeframe, limit int) ([]shared.Candlestick, error) {
	path, err := historicalPath(timeframe)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Add("symbol", market)
	params.Add("apikey", c.cfg.APIKey)

	body, err := c.fetch(ctx, c.formURL(path, params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("fetching intraday historical data (%s) for %s: %w",
			timeframe.String(), market, err)
	}

	data := gjson.ParseBytes(body).Array()

	candles, err := c.ParseCandlesticks(data, market, timeframe)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}

	return candles, nil
}

// Ticker fetches the latest traded price for the provided market.
func (c *FMPClient) Ticker(ctx context.Context, market string) (float64, error) {
	const quotePath = "/quote-short"

	params := url.Values{}
	params.Add("symbol", market)
	params.Add("apikey", c.cfg.APIKey)

	body, err := c.fetch(ctx, c.formURL(quotePath, params.Encode()))
	if err != nil {
		return 0, fmt.Errorf("fetching quote for %s: %w", market, err)
	}

	price := gjson.GetBytes(body, "0.price")
	if !price.Exists() {
		return 0, fmt.Errorf("no quote returned for %s", market)
	}

	return price.Float(), nil
}

package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"tradewatch/shared"
)

const (
	// BinanceBaseURL is the production binance REST API base url.
	BinanceBaseURL = "https://api.binance.com"
)

// BinanceConfig represents the configuration for the binance client.
type BinanceConfig struct {
	// BaseURL is the binance API base url.
	BaseURL string
}

// BinanceClient represents the binance REST API client, serving crypto
// market data.
type BinanceClient struct {
	cfg   *BinanceConfig
	httpc http.Client
	buf   *bytes.Buffer
}

// Ensure the BinanceClient implements the CandleSource interface.
var _ shared.CandleSource = (*BinanceClient)(nil)

// NewBinanceClient instantiates a new binance client.
func NewBinanceClient(cfg *BinanceConfig) *BinanceClient {
	return &BinanceClient{
		cfg:   cfg,
		httpc: http.Client{Timeout: requestTimeout},
		buf:   bytes.NewBuffer(make([]byte, 0, 512)),
	}
}

// formURL creates full urls including parameters for the api.
func (c *BinanceClient) formURL(path string, params string) string {
	c.buf.WriteString(c.cfg.BaseURL)
	c.buf.WriteString(path)
	c.buf.WriteString("?")
	c.buf.WriteString(params)
	url := c.buf.String()
	c.buf.Reset()

	return url
}

// interval returns the binance kline interval for the provided timeframe.
func interval(timeframe shared.Timeframe) (string, error) {
	switch timeframe {
	case shared.OneMinute, shared.FiveMinute, shared.FifteenMinute,
		shared.ThirtyMinute, shared.OneHour, shared.FourHour, shared.OneDay:
		return timeframe.String(), nil
	default:
		return "", fmt.Errorf("unsupported binance timeframe provided: %s", timeframe.String())
	}
}

// ParseKlines parses candlesticks from the provided kline json data. Binance
// returns klines as positional arrays in chronological order, with open time
// in unix milliseconds and prices as strings.
func (c *BinanceClient) ParseKlines(data []gjson.Result, market string, timeframe shared.Timeframe) ([]shared.Candlestick, error) {
	candles := make([]shared.Candlestick, len(data))

	for idx := range data {
		kline := data[idx].Array()
		if len(kline) < 6 {
			return nil, fmt.Errorf("malformed kline entry for %s: %s", market, data[idx].Raw)
		}

		var candle shared.Candlestick

		candle.Open = kline[1].Float()
		candle.High = kline[2].Float()
		candle.Low = kline[3].Float()
		candle.Close = kline[4].Float()
		candle.Volume = kline[5].Float()
		candle.Date = time.UnixMilli(kline[0].Int()).UTC()

		candle.Market = market
		candle.Asset = shared.Crypto
		candle.Timeframe = timeframe

		candles[idx] = candle
	}

	return candles, nil
}

// fetch executes the provided request url and returns the response body.
func (c *BinanceClient) fetch(ctx context.Context, formedURL string) ([]byte, error) {
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
func (c *BinanceClient) Candles(ctx context.Context, market string, timeframe shared.Timeframe, limit int) ([]shared.Candlestick, error) {
	const klinesPath = "/api/v3/klines"

	tf, err := interval(timeframe)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Add("symbol", market)
	params.Add("interval", tf)
	if limit > 0 {
		params.Add("limit", strconv.Itoa(limit))
	}

	body, err := c.fetch(ctx, c.formURL(klinesPath, params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("fetching klines (%s) for %s: %w", tf, market, err)
	}

	data := gjson.ParseBytes(body).Array()

	return c.ParseKlines(data, market, timeframe)
}

// Ticker fetches the latest traded price for the provided market.
func (c *BinanceClient) Ticker(ctx context.Context, market string) (float64, error) {
	const tickerPath = "/api/v3/ticker/price"

	params := url.Values{}
	params.Add("symbol", market)

	body, err := c.fetch(ctx, c.formURL(tickerPath, params.Encode()))
	if err != nil {
		return 0, fmt.Errorf("fetching ticker for %s: %w", market, err)
	}

	price := gjson.GetBytes(body, "price")
	if !price.Exists() {
		return 0, fmt.Errorf("no ticker price returned for %s", market)
	}

	return price.Float(), nil
}

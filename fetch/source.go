package fetch

import (
	"fmt"

	"tradewatch/shared"
)

// SourcesConfig represents the configuration for the candle source set.
type SourcesConfig struct {
	// FMPAPIKey is the FMP service API Key.
	FMPAPIKey string
	// FMPBaseURL is the FMP API base url.
	FMPBaseURL string
	// BinanceBaseURL is the binance API base url.
	BinanceBaseURL string
}

// Sources routes candle source calls by asset class.
type Sources struct {
	sources map[shared.Asset]shared.CandleSource
}

// NewSources initializes candle sources for all supported asset classes.
func NewSources(cfg *SourcesConfig) (*Sources, error) {
	stocks, err := NewFMPClient(&FMPConfig{
		APIKey:  cfg.FMPAPIKey,
		BaseURL: cfg.FMPBaseURL,
		Asset:   shared.Stock,
	})
	if err != nil {
		return nil, fmt.Errorf("creating stock fmp client: %w", err)
	}

	forex, err := NewFMPClient(&FMPConfig{
		APIKey:  cfg.FMPAPIKey,
		BaseURL: cfg.FMPBaseURL,
		Asset:   shared.Forex,
	})
	if err != nil {
		return nil, fmt.Errorf("creating forex fmp client: %w", err)
	}

	crypto := NewBinanceClient(&BinanceConfig{BaseURL: cfg.BinanceBaseURL})

	return &Sources{
		sources: map[shared.Asset]shared.CandleSource{
			shared.Crypto: crypto,
			shared.Stock:  stocks,
			shared.Forex:  forex,
		},
	}, nil
}

// Source returns the candle source serving the provided asset class.
func (s *Sources) Source(asset shared.Asset) (shared.CandleSource, error) {
	source, ok := s.sources[asset]
	if !ok {
		return nil, fmt.Errorf("no candle source for asset class: %s", asset.String())
	}

	return source, nil
}

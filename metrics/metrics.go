// Package metrics exposes prometheus instrumentation for the trading loop.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all prometheus metrics for the trading service.
type Metrics struct {
	ScanCycles    prometheus.Counter
	TradesOpened  prometheus.Counter
	TradesClosed  *prometheus.CounterVec // labels: reason
	MarketErrors  prometheus.Counter
	OpenPositions prometheus.Gauge
}

// NewMetrics registers and returns all trading service metrics on the
// provided registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ScanCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradewatch_scan_cycles_total",
			Help: "Total completed trading bot scan cycles",
		}),
		TradesOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradewatch_trades_opened_total",
			Help: "Total positions opened by the trading bot",
		}),
		TradesClosed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradewatch_trades_closed_total",
			Help: "Total positions closed by the trading bot",
		}, []string{"reason"}),
		MarketErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradewatch_market_errors_total",
			Help: "Total per-market scan and manage failures",
		}),
		OpenPositions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tradewatch_open_positions",
			Help: "Currently open positions",
		}),
	}

	reg.MustRegister(m.ScanCycles, m.TradesOpened, m.TradesClosed,
		m.MarketErrors, m.OpenPositions)

	return m
}

// NewServer returns an http server exposing the provided gatherer on /metrics
// at the provided address.
func NewServer(addr string, gatherer prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: time.Second * 5,
	}
}

package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Prometheus metrics
	ticksAppliedMetric = promauto.NewCounter(prometheus.CounterOpts{
		Name: "market_ticks_applied_total",
		Help: "The total number of random-walk price updates applied",
	})

	broadcastMessagesMetric = promauto.NewCounter(prometheus.CounterOpts{
		Name: "market_broadcast_messages_total",
		Help: "Total number of tick frames sent to WebSocket subscribers",
	})

	broadcastErrorsMetric = promauto.NewCounter(prometheus.CounterOpts{
		Name: "market_broadcast_errors_total",
		Help: "Total number of failed WebSocket sends",
	})

	activeConnectionsMetric = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "market_ws_connections",
		Help: "Current number of connected market WebSocket subscribers",
	})

	articlesIngestedMetric = promauto.NewCounter(prometheus.CounterOpts{
		Name: "news_articles_ingested_total",
		Help: "Total number of news articles scored and cached",
	})

	storeErrorsMetric = promauto.NewCounter(prometheus.CounterOpts{
		Name: "news_store_errors_total",
		Help: "Total number of failed article store operations",
	})

	fetchFailuresMetric = promauto.NewCounter(prometheus.CounterOpts{
		Name: "news_fetch_failures_total",
		Help: "Total number of news fetches that fell back to mock data",
	})

	// Internal counters
	ticksApplied     uint64
	articlesIngested uint64
	lastTickAt       atomic.Int64
	startTime        = time.Now()
)

func IncrementTicks() {
	atomic.AddUint64(&ticksApplied, 1)
	ticksAppliedMetric.Inc()
	lastTickAt.Store(time.Now().Unix())
}

func IncrementBroadcasts() {
	broadcastMessagesMetric.Inc()
}

func IncrementBroadcastErrors() {
	broadcastErrorsMetric.Inc()
}

func ConnectionOpened() {
	activeConnectionsMetric.Inc()
}

func ConnectionClosed() {
	activeConnectionsMetric.Dec()
}

func IncrementArticles() {
	atomic.AddUint64(&articlesIngested, 1)
	articlesIngestedMetric.Inc()
}

func IncrementStoreErrors() {
	storeErrorsMetric.Inc()
}

func IncrementFetchFailures() {
	fetchFailuresMetric.Inc()
}

func GetStats() (uint64, uint64, time.Time, time.Duration) {
	return atomic.LoadUint64(&ticksApplied),
		atomic.LoadUint64(&articlesIngested),
		time.Unix(lastTickAt.Load(), 0),
		time.Since(startTime)
}

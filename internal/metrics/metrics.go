// Package metrics exposes Prometheus instrumentation for the journal
// backend.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequests counts API requests by route and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "journal_http_requests_total",
		Help: "Total HTTP requests served, by route and status code.",
	}, []string{"route", "status"})

	// TradesImported counts trades accepted through CSV import.
	TradesImported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "journal_trades_imported_total",
		Help: "Total trades accepted through CSV import.",
	})

	// TradesRejected counts records dropped during normalization.
	TradesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "journal_trades_rejected_total",
		Help: "Total records rejected during import normalization.",
	})

	// Recomputes counts full analytics recomputations.
	Recomputes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "journal_analytics_recomputes_total",
		Help: "Total analytics pipeline recomputations.",
	})

	// JournalSize tracks the current number of trades in the journal.
	JournalSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "journal_trades",
		Help: "Current number of trades in the journal.",
	})
)

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

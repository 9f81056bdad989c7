package api

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/tradelens/journal-backend/internal/analytics"
	"github.com/tradelens/journal-backend/internal/metrics"
	"github.com/tradelens/journal-backend/pkg/types"
)

// handleCumulative returns the cumulative P&L or equity series.
//
// Query parameters:
//
//	basis=net|gross|equity  series basis (default net)
//	balance=<amount>        starting balance for basis=equity
//	interpolate=true        insert synthetic points at zero crossings
func (s *Server) handleCumulative(w http.ResponseWriter, r *http.Request) {
	trades := s.store.Snapshot()
	metrics.Recomputes.Inc()

	var points []types.ChartPoint
	switch r.URL.Query().Get("basis") {
	case "gross":
		points = analytics.CumulativeGrossPnL(trades)
	case "equity":
		balance := s.startingBalance()
		if raw := r.URL.Query().Get("balance"); raw != "" {
			parsed, err := decimal.NewFromString(raw)
			if err != nil {
				http.Error(w, "Invalid balance parameter", http.StatusBadRequest)
				return
			}
			balance = parsed
		}
		points = analytics.EquitySeries(trades, balance)
	default:
		points = analytics.CumulativePnL(trades)
	}

	if r.URL.Query().Get("interpolate") == "true" {
		points = analytics.InterpolateZeroCrossings(points)
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"points": points,
		"count":  len(points),
	})
}

// handleWinLoss returns the paired cumulative win and loss series.
func (s *Server) handleWinLoss(w http.ResponseWriter, r *http.Request) {
	trades := s.store.Snapshot()
	metrics.Recomputes.Inc()

	wins, losses := analytics.WinLossSeries(trades)

	s.writeJSON(w, http.StatusOK, map[string]any{
		"wins":   wins,
		"losses": losses,
	})
}

// handleDaily returns per-day aggregate buckets.
func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	trades := s.store.Snapshot()
	metrics.Recomputes.Inc()

	buckets := analytics.DailyBuckets(trades)

	s.writeJSON(w, http.StatusOK, map[string]any{
		"days":  buckets,
		"count": len(buckets),
	})
}

// handleDrawdown returns the daily drawdown series.
func (s *Server) handleDrawdown(w http.ResponseWriter, r *http.Request) {
	trades := s.store.Snapshot()
	metrics.Recomputes.Inc()

	buckets := analytics.DailyBuckets(trades)
	drawdowns := analytics.ComputeDrawdown(analytics.DailyNet(buckets))

	points := make([]types.ChartPoint, len(drawdowns))
	for i, dd := range drawdowns {
		points[i] = types.ChartPoint{Date: buckets[i].Date, Value: dd}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"points": points,
		"count":  len(points),
	})
}

// handleVolatility returns the rolling volatility series.
//
// Query parameter window overrides the configured trailing window size.
func (s *Server) handleVolatility(w http.ResponseWriter, r *http.Request) {
	trades := s.store.Snapshot()
	metrics.Recomputes.Inc()

	window := s.config.Journal.VolatilityWindow
	if raw := r.URL.Query().Get("window"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid window parameter", http.StatusBadRequest)
			return
		}
		window = parsed
	}

	buckets := analytics.DailyBuckets(trades)
	vols := analytics.ComputeRollingVolatility(analytics.DailyNet(buckets), window)

	points := make([]types.ChartPoint, len(vols))
	for i, v := range vols {
		points[i] = types.ChartPoint{Date: buckets[i].Date, Value: v}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"points": points,
		"window": window,
		"count":  len(points),
	})
}

// handleStreaks returns streak and win-rate statistics.
//
// Query parameter breakeven=reset|ignore selects how breakeven trades
// interact with running streaks.
func (s *Server) handleStreaks(w http.ResponseWriter, r *http.Request) {
	trades := s.store.Snapshot()
	metrics.Recomputes.Inc()

	policy := analytics.ParseBreakevenPolicy(s.config.Journal.BreakevenPolicy)
	if raw := r.URL.Query().Get("breakeven"); raw != "" {
		policy = analytics.ParseBreakevenPolicy(raw)
	}

	s.writeJSON(w, http.StatusOK, analytics.AnalyzeStreaks(trades, policy))
}

// handleSegments returns per-segment aggregates.
//
// Query parameter by=symbol|strategy|volume selects the partition
// (default symbol).
func (s *Server) handleSegments(w http.ResponseWriter, r *http.Request) {
	trades := s.store.Snapshot()
	metrics.Recomputes.Inc()

	var snapshots []types.SegmentSnapshot
	by := r.URL.Query().Get("by")
	switch by {
	case "", "symbol":
		by = "symbol"
		snapshots = analytics.AggregateBySegment(trades, analytics.BySymbol, nil)
	case "strategy":
		snapshots = analytics.AggregateBySegment(trades, analytics.ByStrategy, nil)
	case "volume":
		snapshots = analytics.AggregateBySegment(trades, analytics.ByVolumeBucket, analytics.VolumeBucketLabel)
	default:
		http.Error(w, "Invalid segment dimension", http.StatusBadRequest)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"by":          by,
		"segments":    snapshots,
		"best":        analytics.BestSegment(snapshots),
		"worst":       analytics.WorstSegment(snapshots),
		"most_active": analytics.MostActiveSegment(snapshots),
	})
}

// handleSummary returns the full account summary.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	trades := s.store.Snapshot()
	metrics.Recomputes.Inc()

	summary := analytics.BuildSummary(trades)

	if r.URL.Query().Get("flat") == "true" {
		s.writeJSON(w, http.StatusOK, analytics.SummaryContext(summary))
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) startingBalance() decimal.Decimal {
	balance, err := decimal.NewFromString(s.config.Journal.StartingBalance)
	if err != nil {
		return decimal.NewFromInt(10000)
	}
	return balance
}

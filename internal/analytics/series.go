// Package analytics: cumulative series construction and the
// zero-crossing transform applied just before chart consumption.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradelens/journal-backend/pkg/types"
	"github.com/tradelens/journal-backend/pkg/utils"
)

// StartAnchor is the date label of the synthetic origin point that every
// cumulative series begins with, so charts never start mid-value.
const StartAnchor = "Start"

// SeriesEntry is one dated value feeding the cumulative builder.
type SeriesEntry struct {
	Time  time.Time
	Value decimal.Decimal
}

// BuildCumulative folds ordered entries into a running-total series
// anchored at an explicit origin point. The running sum is kept at full
// decimal precision and rounded to currency precision only at emission,
// so rounding error never compounds. Output length is input length + 1.
func BuildCumulative(entries []SeriesEntry, origin decimal.Decimal) []types.ChartPoint {
	points := make([]types.ChartPoint, 0, len(entries)+1)
	points = append(points, types.ChartPoint{
		Date:  StartAnchor,
		Value: utils.Round2(origin),
		Label: utils.FormatMoney(origin, "USD"),
	})

	running := origin
	for _, entry := range entries {
		running = running.Add(entry.Value)
		points = append(points, types.ChartPoint{
			Date:  entry.Time.UTC().Format(time.RFC3339),
			Value: utils.Round2(running),
			Label: utils.FormatMoney(running, "USD"),
		})
	}

	return points
}

// CumulativePnL builds the running net P&L series over the trade set,
// anchored at zero. Trades are sorted chronologically first, so input
// order never changes the final total.
func CumulativePnL(trades []*types.Trade) []types.ChartPoint {
	return BuildCumulative(pnlEntries(trades, false), decimal.Zero)
}

// CumulativeGrossPnL is CumulativePnL over gross (pre-cost) P&L.
func CumulativeGrossPnL(trades []*types.Trade) []types.ChartPoint {
	return BuildCumulative(pnlEntries(trades, true), decimal.Zero)
}

// EquitySeries builds the account equity curve: the cumulative net P&L
// series anchored at the supplied starting balance.
func EquitySeries(trades []*types.Trade, startingBalance decimal.Decimal) []types.ChartPoint {
	return BuildCumulative(pnlEntries(trades, false), startingBalance)
}

// WinLossSeries builds the paired wins-only and losses-only cumulative
// series. Winning trades feed the wins series, losing trades feed the
// losses series as absolute values, and breakeven trades feed neither.
func WinLossSeries(trades []*types.Trade) (wins, losses []types.ChartPoint) {
	var winEntries, lossEntries []SeriesEntry
	for _, trade := range SortChronological(trades) {
		switch {
		case trade.NetPnL.IsPositive():
			winEntries = append(winEntries, SeriesEntry{Time: trade.EffectiveTime(), Value: trade.NetPnL})
		case trade.NetPnL.IsNegative():
			lossEntries = append(lossEntries, SeriesEntry{Time: trade.EffectiveTime(), Value: trade.NetPnL.Abs()})
		}
	}
	return BuildCumulative(winEntries, decimal.Zero), BuildCumulative(lossEntries, decimal.Zero)
}

func pnlEntries(trades []*types.Trade, gross bool) []SeriesEntry {
	sorted := SortChronological(trades)
	entries := make([]SeriesEntry, len(sorted))
	for i, trade := range sorted {
		value := trade.NetPnL
		if gross {
			value = trade.GrossPnL
		}
		entries[i] = SeriesEntry{Time: trade.EffectiveTime(), Value: value}
	}
	return entries
}

// InterpolateZeroCrossings injects a synthetic zero-value point between
// every pair of adjacent points with strictly opposite signs, with the
// date interpolated in time proportionally to |a| / (|a| + |b|). A pair
// where either endpoint is exactly zero gets no synthetic point, and
// neither does the pair adjoining the origin anchor: the anchor carries
// no real timestamp to interpolate against, and an equity series can
// cross zero right there when a positive balance meets a deep loss. The
// result is a fresh slice; the input is never mutated or reordered.
// This is a rendering transform: it lets a renderer fill profit and loss
// regions in different colors without the fill bleeding across zero.
func InterpolateZeroCrossings(points []types.ChartPoint) []types.ChartPoint {
	if len(points) < 2 {
		out := make([]types.ChartPoint, len(points))
		copy(out, points)
		return out
	}

	out := make([]types.ChartPoint, 0, len(points)+4)
	out = append(out, points[0])

	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if a.Date != StartAnchor && crossesZero(a.Value, b.Value) {
			out = append(out, types.ChartPoint{
				Date:  interpolateDate(a, b),
				Value: 0,
				Label: utils.FormatMoney(decimal.Zero, "USD"),
			})
		}
		out = append(out, b)
	}

	return out
}

func crossesZero(a, b float64) bool {
	return (a > 0 && b < 0) || (a < 0 && b > 0)
}

// interpolateDate places the synthetic point between two dated points,
// weighted by how close each value is to zero. Unparsable or
// non-increasing dates fall back to the earlier point's date.
func interpolateDate(a, b types.ChartPoint) string {
	ta, okA := utils.ParseDate(a.Date)
	tb, okB := utils.ParseDate(b.Date)
	if !okA || !okB || !tb.After(ta) {
		return a.Date
	}

	absA := mathAbs(a.Value)
	ratio := absA / (absA + mathAbs(b.Value))
	offset := time.Duration(ratio * float64(tb.Sub(ta)))
	return ta.Add(offset).UTC().Format(time.RFC3339)
}

func mathAbs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Package analytics: arbitrary-key segment aggregation used to rank
// best, worst and most-active groups of trades.
package analytics

import (
	"fmt"
	"sort"

	"github.com/tradelens/journal-backend/pkg/types"
)

// KeyFunc derives the grouping key for a trade.
type KeyFunc func(*types.Trade) string

// LabelFunc derives the display name for a segment key.
type LabelFunc func(key string) string

// AggregateBySegment groups trades by keyFn and computes per-segment
// trade count, net P&L and win rate. Only segments with at least one
// contributing trade appear. The result is ordered by net P&L
// descending; ties keep first-appearance order (stable sort), so the
// first element is always the "best" segment.
func AggregateBySegment(trades []*types.Trade, keyFn KeyFunc, labelFn LabelFunc) []types.SegmentSnapshot {
	if labelFn == nil {
		labelFn = func(key string) string { return key }
	}

	var snapshots []types.SegmentSnapshot
	index := make(map[string]int)
	winCounts := make(map[string]int)

	for _, trade := range trades {
		key := keyFn(trade)
		i, ok := index[key]
		if !ok {
			i = len(snapshots)
			index[key] = i
			snapshots = append(snapshots, types.SegmentSnapshot{ID: key, Name: labelFn(key)})
		}
		snapshots[i].TradeCount++
		snapshots[i].NetPnL = snapshots[i].NetPnL.Add(trade.NetPnL)
		if trade.NetPnL.IsPositive() {
			winCounts[key]++
		}
	}

	for i := range snapshots {
		snapshots[i].WinRate = winRate(winCounts[snapshots[i].ID], snapshots[i].TradeCount)
	}

	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].NetPnL.GreaterThan(snapshots[j].NetPnL)
	})

	return snapshots
}

// BySymbol groups by instrument symbol.
func BySymbol(t *types.Trade) string { return t.Symbol }

// ByStrategy groups by strategy id; unassigned trades fall into one
// "unassigned" segment.
func ByStrategy(t *types.Trade) string {
	if t.Strategy == "" {
		return "unassigned"
	}
	return t.Strategy
}

// ByVolumeBucket groups by contract-volume bracket.
func ByVolumeBucket(t *types.Trade) string {
	switch {
	case t.Contracts <= 1:
		return "1"
	case t.Contracts <= 5:
		return "2-5"
	case t.Contracts <= 10:
		return "6-10"
	case t.Contracts <= 20:
		return "11-20"
	default:
		return "20+"
	}
}

// VolumeBucketLabel formats a volume-bucket key for display.
func VolumeBucketLabel(key string) string {
	return fmt.Sprintf("%s contracts", key)
}

// BestSegment returns the segment with the highest net P&L, nil for an
// empty snapshot list. Snapshots are already ordered descending.
func BestSegment(snapshots []types.SegmentSnapshot) *types.SegmentSnapshot {
	if len(snapshots) == 0 {
		return nil
	}
	return &snapshots[0]
}

// WorstSegment returns the segment with the lowest net P&L.
func WorstSegment(snapshots []types.SegmentSnapshot) *types.SegmentSnapshot {
	if len(snapshots) == 0 {
		return nil
	}
	return &snapshots[len(snapshots)-1]
}

// MostActiveSegment returns the segment with the most trades. Ties keep
// the earlier (higher-P&L) segment.
func MostActiveSegment(snapshots []types.SegmentSnapshot) *types.SegmentSnapshot {
	if len(snapshots) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(snapshots); i++ {
		if snapshots[i].TradeCount > snapshots[best].TradeCount {
			best = i
		}
	}
	return &snapshots[best]
}

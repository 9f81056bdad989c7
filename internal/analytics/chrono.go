// Package analytics: chronological ordering and daily grouping.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tradelens/journal-backend/pkg/types"
	"github.com/tradelens/journal-backend/pkg/utils"
)

// SortChronological returns a new slice sorted ascending by effective
// close date. The sort is stable, so input order breaks ties; the input
// slice is never reordered.
func SortChronological(trades []*types.Trade) []*types.Trade {
	sorted := make([]*types.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EffectiveTime().Before(sorted[j].EffectiveTime())
	})
	return sorted
}

// GroupByDay groups trades by UTC calendar day. Empty input yields an
// empty map.
func GroupByDay(trades []*types.Trade) map[string][]*types.Trade {
	groups := make(map[string][]*types.Trade)
	for _, trade := range SortChronological(trades) {
		key := utils.DateKey(trade.EffectiveTime())
		groups[key] = append(groups[key], trade)
	}
	return groups
}

// DailyBuckets folds trades into ordered per-day aggregates. Buckets are
// built fresh on every call; days without trades do not appear.
func DailyBuckets(trades []*types.Trade) []types.DailyBucket {
	var buckets []types.DailyBucket
	index := make(map[string]int)
	sizeSums := make(map[string]decimal.Decimal)

	for _, trade := range SortChronological(trades) {
		key := utils.DateKey(trade.EffectiveTime())
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, types.DailyBucket{Date: key})
		}
		buckets[i].NetPnL = buckets[i].NetPnL.Add(trade.NetPnL)
		buckets[i].TradeCount++
		if trade.NetPnL.IsPositive() {
			buckets[i].WinCount++
		}
		sizeSums[key] = sizeSums[key].Add(decimal.NewFromInt(trade.Contracts))
	}

	for i := range buckets {
		count := decimal.NewFromInt(int64(buckets[i].TradeCount))
		buckets[i].AvgPositionSize = sizeSums[buckets[i].Date].Div(count).Round(2)
	}

	return buckets
}

// DailyNet extracts the per-day net P&L values from ordered buckets,
// the input shape for the drawdown and volatility calculators.
func DailyNet(buckets []types.DailyBucket) []float64 {
	values := make([]float64, len(buckets))
	for i, bucket := range buckets {
		values[i] = bucket.NetPnL.InexactFloat64()
	}
	return values
}

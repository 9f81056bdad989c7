// Package analytics: win-rate and consecutive-streak statistics.
package analytics

import (
	"github.com/tradelens/journal-backend/pkg/types"
	"github.com/tradelens/journal-backend/pkg/utils"

	"github.com/shopspring/decimal"
)

// BreakevenPolicy controls how a zero-P&L trade affects running streak
// counters. The product-facing "current streak" display depends on it,
// so it is a named, swappable policy rather than a hard-coded rule.
type BreakevenPolicy string

const (
	// BreakevenResets treats a breakeven trade as streak-breaking:
	// both counters reset to zero. This is the default.
	BreakevenResets BreakevenPolicy = "reset"
	// BreakevenIgnored leaves both counters untouched.
	BreakevenIgnored BreakevenPolicy = "ignore"
)

// ParseBreakevenPolicy maps a config/query string to a policy,
// defaulting to BreakevenResets for anything unrecognized.
func ParseBreakevenPolicy(s string) BreakevenPolicy {
	if s == string(BreakevenIgnored) {
		return BreakevenIgnored
	}
	return BreakevenResets
}

// AnalyzeStreaks computes win rate and streak statistics over the trade
// set. Trades are put in chronological order first; breakeven trades
// count toward the total but never toward wins. Empty input yields the
// zero summary, never an error.
func AnalyzeStreaks(trades []*types.Trade, policy BreakevenPolicy) types.StreakSummary {
	summary := types.StreakSummary{}
	if len(trades) == 0 {
		return summary
	}

	var wins int
	var winStreak, lossStreak int

	for _, trade := range SortChronological(trades) {
		switch {
		case trade.NetPnL.IsPositive():
			wins++
			winStreak++
			lossStreak = 0
		case trade.NetPnL.IsNegative():
			lossStreak++
			winStreak = 0
		default:
			if policy == BreakevenResets {
				winStreak = 0
				lossStreak = 0
			}
		}

		if winStreak > summary.MaxConsecutiveWins {
			summary.MaxConsecutiveWins = winStreak
		}
		if lossStreak > summary.MaxConsecutiveLosses {
			summary.MaxConsecutiveLosses = lossStreak
		}
	}

	summary.WinRate = winRate(wins, len(trades))

	switch {
	case winStreak > 0:
		summary.CurrentStreak = winStreak
	case lossStreak > 0:
		summary.CurrentStreak = -lossStreak
	}

	return summary
}

// winRate returns wins/total*100 rounded to 2 decimals, 0 for an empty
// set. Always within [0, 100].
func winRate(wins, total int) float64 {
	if total == 0 {
		return 0
	}
	rate := decimal.NewFromInt(int64(wins)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100))
	return utils.Round2(rate)
}

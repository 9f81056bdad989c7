// Package types provides shared type definitions for the journal backend.
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeSide represents the direction of a trade.
type TradeSide string

const (
	TradeSideLong  TradeSide = "long"
	TradeSideShort TradeSide = "short"
)

// TradeStatus represents the outcome of a closed trade, derived from
// the sign of its net P&L.
type TradeStatus string

const (
	TradeStatusWin       TradeStatus = "win"
	TradeStatusLoss      TradeStatus = "loss"
	TradeStatusBreakeven TradeStatus = "breakeven"
)

// Trade is the canonical unit of analysis. Every downstream aggregation
// operates on this shape only; heterogeneous broker records are coerced
// into it by the normalizer or rejected.
type Trade struct {
	ID          string          `json:"id"`
	Symbol      string          `json:"symbol"`
	Strategy    string          `json:"strategy,omitempty"`
	Side        TradeSide       `json:"side"`
	OpenedAt    time.Time       `json:"openedAt"`
	ClosedAt    time.Time       `json:"closedAt"`
	EntryPrice  decimal.Decimal `json:"entryPrice"`
	ExitPrice   decimal.Decimal `json:"exitPrice"`
	NetPnL      decimal.Decimal `json:"netPnl"`
	GrossPnL    decimal.Decimal `json:"grossPnl"`
	Commissions decimal.Decimal `json:"commissions"`
	Contracts   int64           `json:"contractsTraded"`
	Status      TradeStatus     `json:"status"`
}

// EffectiveTime returns the timestamp used for chronological ordering:
// the close time, falling back to the open time when unset.
func (t *Trade) EffectiveTime() time.Time {
	if t.ClosedAt.IsZero() {
		return t.OpenedAt
	}
	return t.ClosedAt
}

// ChartPoint is a single renderable point on a time series. Value is
// always finite and pre-rounded to currency precision.
type ChartPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Label string  `json:"label,omitempty"`
}

// DailyBucket aggregates the trades of one UTC calendar day. Buckets are
// rebuilt from scratch on every recomputation, never mutated in place.
type DailyBucket struct {
	Date            string          `json:"date"` // YYYY-MM-DD, UTC
	NetPnL          decimal.Decimal `json:"netPnlSum"`
	TradeCount      int             `json:"tradeCount"`
	WinCount        int             `json:"winCount"`
	AvgPositionSize decimal.Decimal `json:"avgPositionSize"`
}

// SegmentSnapshot is the per-group result of a segment aggregation
// (by symbol, strategy, volume bucket, ...).
type SegmentSnapshot struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	TradeCount int             `json:"tradeCount"`
	NetPnL     decimal.Decimal `json:"netPnl"`
	WinRate    float64         `json:"winRate"`
}

// StreakSummary holds win-rate and consecutive-streak statistics over a
// chronologically ordered trade sequence. CurrentStreak is signed:
// positive for a running win streak, negative for losses, 0 when the
// last trade was breakeven or there are no trades.
type StreakSummary struct {
	WinRate              float64 `json:"winRate"`
	MaxConsecutiveWins   int     `json:"maxConsecutiveWins"`
	MaxConsecutiveLosses int     `json:"maxConsecutiveLosses"`
	CurrentStreak        int     `json:"currentStreak"`
}

// AccountSummary is the flat reporting contract consumed by tables and
// the assistant integration. All fields derive from the same engine that
// feeds the charts, so displayed totals cannot drift apart.
type AccountSummary struct {
	TotalTrades      int             `json:"totalTrades"`
	WinningTrades    int             `json:"winningTrades"`
	LosingTrades     int             `json:"losingTrades"`
	BreakevenTrades  int             `json:"breakevenTrades"`
	WinRate          float64         `json:"winRate"`
	ProfitFactor     float64         `json:"profitFactor"`
	TotalPnL         decimal.Decimal `json:"totalPnl"`
	GrossPnL         decimal.Decimal `json:"grossPnl"`
	TotalCommissions decimal.Decimal `json:"totalCommissions"`
	AvgWin           decimal.Decimal `json:"avgWin"`
	AvgLoss          decimal.Decimal `json:"avgLoss"`
	Expectancy       decimal.Decimal `json:"expectancy"`
	BestTrade        decimal.Decimal `json:"bestTrade"`
	WorstTrade       decimal.Decimal `json:"worstTrade"`
	MaxDrawdown      decimal.Decimal `json:"maxDrawdown"`
	TotalVolume      int64           `json:"totalVolume"`
}

// ImportReport summarizes one CSV import run.
type ImportReport struct {
	Source   string `json:"source"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

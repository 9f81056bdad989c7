// Package analytics provides the trade aggregation engine: pure,
// synchronous transforms that turn a trade list into the series and
// statistics consumed by charts, reports and the assistant integration.
// All functions are safe to re-run from scratch on every trade-set
// change and never alias their inputs.
package analytics

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradelens/journal-backend/pkg/types"
	"github.com/tradelens/journal-backend/pkg/utils"
)

// Fallback key sets for the duck-typed record shapes produced by broker
// CSV exports and the legacy dashboard store. Checked in order.
var (
	netPnlKeys    = []string{"netPnl", "netPnL", "pnl", "profit", "Profit", "netProfit"}
	grossPnlKeys  = []string{"grossPnl", "grossPnL", "gross", "grossProfit"}
	closeDateKeys = []string{"closeDate", "exitDate", "date", "closedAt", "exitTime"}
	openDateKeys  = []string{"openDate", "entryDate", "openedAt", "entryTime"}
	symbolKeys    = []string{"symbol", "ticker", "instrument"}
	sideKeys      = []string{"side", "direction", "type"}
	entryKeys     = []string{"entryPrice", "entry", "openPrice"}
	exitKeys      = []string{"exitPrice", "exit", "closePrice"}
	commishKeys   = []string{"commissions", "commission", "fees"}
	volumeKeys    = []string{"contractsTraded", "contracts", "quantity", "volume", "size"}
	strategyKeys  = []string{"strategy", "strategyId", "playbook"}
	idKeys        = []string{"id", "tradeId"}
)

// NormalizeTrade coerces a raw heterogeneous record into the canonical
// Trade shape. Records lacking a parsable date or a finite P&L are
// rejected (second return false) and must be excluded from aggregation;
// optional fields that fail to parse degrade to zero values instead.
func NormalizeTrade(raw map[string]any) (*types.Trade, bool) {
	if raw == nil {
		return nil, false
	}

	netPnl, ok := lookupDecimal(raw, netPnlKeys)
	if !ok {
		return nil, false
	}

	closedAt, hasClose := lookupTime(raw, closeDateKeys)
	openedAt, hasOpen := lookupTime(raw, openDateKeys)
	if !hasClose && !hasOpen {
		return nil, false
	}
	if !hasOpen {
		openedAt = closedAt
	}
	if !hasClose {
		closedAt = openedAt
	}

	grossPnl, ok := lookupDecimal(raw, grossPnlKeys)
	if !ok {
		grossPnl = netPnl
	}

	entryPrice, _ := lookupDecimal(raw, entryKeys)
	exitPrice, _ := lookupDecimal(raw, exitKeys)
	commissions, _ := lookupDecimal(raw, commishKeys)
	volume, _ := lookupDecimal(raw, volumeKeys)

	symbol := strings.TrimSpace(lookupString(raw, symbolKeys))
	if symbol == "" {
		symbol = "UNKNOWN"
	}

	trade := &types.Trade{
		ID:          lookupString(raw, idKeys),
		Symbol:      strings.ToUpper(symbol),
		Strategy:    lookupString(raw, strategyKeys),
		Side:        parseSide(lookupString(raw, sideKeys)),
		OpenedAt:    openedAt,
		ClosedAt:    closedAt,
		EntryPrice:  clampNonNegative(entryPrice),
		ExitPrice:   clampNonNegative(exitPrice),
		NetPnL:      netPnl,
		GrossPnL:    grossPnl,
		Commissions: clampNonNegative(commissions),
		Contracts:   volume.IntPart(),
		Status:      StatusOf(netPnl),
	}
	if trade.Contracts < 0 {
		trade.Contracts = 0
	}

	return trade, true
}

// NormalizeTrades normalizes a batch of raw records, silently dropping
// rejected ones. The result preserves input order.
func NormalizeTrades(raws []map[string]any) []*types.Trade {
	trades := make([]*types.Trade, 0, len(raws))
	for _, raw := range raws {
		if trade, ok := NormalizeTrade(raw); ok {
			trades = append(trades, trade)
		}
	}
	return trades
}

// StatusOf derives the trade outcome from the sign of a P&L value.
func StatusOf(pnl decimal.Decimal) types.TradeStatus {
	switch {
	case pnl.IsPositive():
		return types.TradeStatusWin
	case pnl.IsNegative():
		return types.TradeStatusLoss
	default:
		return types.TradeStatusBreakeven
	}
}

func parseSide(s string) types.TradeSide {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "short", "sell", "s":
		return types.TradeSideShort
	default:
		return types.TradeSideLong
	}
}

func clampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func lookupString(raw map[string]any, keys []string) string {
	for _, key := range keys {
		if v, ok := raw[key]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}

func lookupDecimal(raw map[string]any, keys []string) (decimal.Decimal, bool) {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		if d, ok := coerceDecimal(v); ok {
			return d, true
		}
	}
	return decimal.Zero, false
}

// coerceDecimal converts a loosely typed numeric value. String values
// go through the money parser so "$1,234.56" and "(50.00)" both work.
func coerceDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case string:
		return utils.ParseMoney(n)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(n), true
	case float32:
		if math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case decimal.Decimal:
		return n, true
	default:
		return decimal.Zero, false
	}
}

func lookupTime(raw map[string]any, keys []string) (time.Time, bool) {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if parsed, ok := utils.ParseDate(t); ok {
				return parsed, true
			}
		case time.Time:
			if !t.IsZero() {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

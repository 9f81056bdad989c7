// Package analytics: the flat account summary consumed by report tables
// and the assistant integration.
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/tradelens/journal-backend/pkg/types"
	"github.com/tradelens/journal-backend/pkg/utils"
)

// profitFactorCap stands in for an infinite profit factor when the
// account has no losing trades.
var profitFactorCap = decimal.NewFromInt(100)

// BuildSummary computes the account-wide summary from the trade set.
// Every field derives from the same normalization and ordering as the
// chart series, so the totals shown in tables, charts and the assistant
// context always agree. Empty input yields the zero summary.
func BuildSummary(trades []*types.Trade) *types.AccountSummary {
	summary := &types.AccountSummary{
		AvgWin:     decimal.Zero,
		AvgLoss:    decimal.Zero,
		Expectancy: decimal.Zero,
	}
	if len(trades) == 0 {
		return summary
	}

	var totalWins, totalLosses decimal.Decimal
	bestTrade := trades[0].NetPnL
	worstTrade := trades[0].NetPnL

	for _, trade := range trades {
		summary.TotalTrades++
		summary.TotalPnL = summary.TotalPnL.Add(trade.NetPnL)
		summary.GrossPnL = summary.GrossPnL.Add(trade.GrossPnL)
		summary.TotalCommissions = summary.TotalCommissions.Add(trade.Commissions)
		summary.TotalVolume += trade.Contracts

		switch {
		case trade.NetPnL.IsPositive():
			summary.WinningTrades++
			totalWins = totalWins.Add(trade.NetPnL)
		case trade.NetPnL.IsNegative():
			summary.LosingTrades++
			totalLosses = totalLosses.Add(trade.NetPnL.Abs())
		default:
			summary.BreakevenTrades++
		}

		bestTrade = utils.MaxDecimal(bestTrade, trade.NetPnL)
		worstTrade = utils.MinDecimal(worstTrade, trade.NetPnL)
	}

	summary.BestTrade = bestTrade
	summary.WorstTrade = worstTrade
	summary.WinRate = winRate(summary.WinningTrades, summary.TotalTrades)

	if summary.WinningTrades > 0 {
		summary.AvgWin = totalWins.Div(decimal.NewFromInt(int64(summary.WinningTrades))).Round(2)
	}
	if summary.LosingTrades > 0 {
		summary.AvgLoss = totalLosses.Div(decimal.NewFromInt(int64(summary.LosingTrades))).Round(2)
	}

	// Profit factor: gross wins over gross losses, capped when there
	// are no losses so Infinity never reaches displayed output.
	switch {
	case !totalLosses.IsZero():
		pf := totalWins.Div(totalLosses)
		summary.ProfitFactor = utils.Round2(utils.MinDecimal(pf, profitFactorCap))
	case !totalWins.IsZero():
		summary.ProfitFactor = utils.Round2(profitFactorCap)
	}

	// Expectancy: (Win% * AvgWin) - (Loss% * AvgLoss), per trade.
	total := decimal.NewFromInt(int64(summary.TotalTrades))
	winPct := decimal.NewFromInt(int64(summary.WinningTrades)).Div(total)
	lossPct := decimal.NewFromInt(int64(summary.LosingTrades)).Div(total)
	summary.Expectancy = winPct.Mul(summary.AvgWin).Sub(lossPct.Mul(summary.AvgLoss)).Round(2)

	drawdowns := ComputeDrawdown(DailyNet(DailyBuckets(trades)))
	maxDD := 0.0
	for _, dd := range drawdowns {
		if dd < maxDD {
			maxDD = dd
		}
	}
	summary.MaxDrawdown = decimal.NewFromFloat(-maxDD).Round(2)

	return summary
}

// SummaryContext flattens a summary into the key-value shape the
// assistant integration consumes.
func SummaryContext(summary *types.AccountSummary) map[string]any {
	return map[string]any{
		"totalTrades":      summary.TotalTrades,
		"winningTrades":    summary.WinningTrades,
		"losingTrades":     summary.LosingTrades,
		"breakevenTrades":  summary.BreakevenTrades,
		"winRate":          summary.WinRate,
		"profitFactor":     summary.ProfitFactor,
		"totalPnl":         utils.Round2(summary.TotalPnL),
		"grossPnl":         utils.Round2(summary.GrossPnL),
		"totalCommissions": utils.Round2(summary.TotalCommissions),
		"avgWin":           utils.Round2(summary.AvgWin),
		"avgLoss":          utils.Round2(summary.AvgLoss),
		"expectancy":       utils.Round2(summary.Expectancy),
		"bestTrade":        utils.Round2(summary.BestTrade),
		"worstTrade":       utils.Round2(summary.WorstTrade),
		"maxDrawdown":      utils.Round2(summary.MaxDrawdown),
		"totalVolume":      summary.TotalVolume,
	}
}

package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradelens/journal-backend/internal/analytics"
	"github.com/tradelens/journal-backend/pkg/types"
)

// mkTrade builds a minimal canonical trade closed at the given date.
func mkTrade(t *testing.T, date string, pnl float64) *types.Trade {
	t.Helper()

	closedAt, err := time.Parse(time.RFC3339, date)
	if err != nil {
		closedAt, err = time.Parse("2006-01-02", date)
		if err != nil {
			t.Fatalf("Bad test date %q: %v", date, err)
		}
	}

	net := decimal.NewFromFloat(pnl)
	return &types.Trade{
		Symbol:   "TEST",
		Side:     types.TradeSideLong,
		OpenedAt: closedAt,
		ClosedAt: closedAt,
		NetPnL:   net,
		GrossPnL: net,
		Status:   analytics.StatusOf(net),
	}
}

// mkSymbolTrade is mkTrade with an explicit symbol.
func mkSymbolTrade(t *testing.T, date, symbol string, pnl float64) *types.Trade {
	t.Helper()
	trade := mkTrade(t, date, pnl)
	trade.Symbol = symbol
	return trade
}

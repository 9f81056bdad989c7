// Package analytics_test provides tests for chronological grouping.
package analytics_test

import (
	"testing"

	"github.com/tradelens/journal-backend/internal/analytics"
	"github.com/tradelens/journal-backend/pkg/types"
)

func TestSortChronologicalStable(t *testing.T) {
	first := mkTrade(t, "2024-01-02", 10)
	second := mkTrade(t, "2024-01-01", 20)
	third := mkTrade(t, "2024-01-01", 30) // Same timestamp as second

	input := []*types.Trade{first, second, third}
	sorted := analytics.SortChronological(input)

	if sorted[0] != second || sorted[1] != third || sorted[2] != first {
		t.Error("Expected stable ascending order with ties in input order")
	}

	// Input must not be reordered.
	if input[0] != first {
		t.Error("Input slice was mutated")
	}
}

func TestGroupByDayUTC(t *testing.T) {
	trades := []*types.Trade{
		// 23:30 UTC and 00:30 UTC the next day land in different buckets.
		mkTrade(t, "2024-01-01T23:30:00Z", 100),
		mkTrade(t, "2024-01-02T00:30:00Z", -50),
		mkTrade(t, "2024-01-02T15:00:00Z", 25),
	}

	groups := analytics.GroupByDay(trades)
	if len(groups) != 2 {
		t.Fatalf("Expected 2 day groups, got %d", len(groups))
	}
	if len(groups["2024-01-01"]) != 1 {
		t.Errorf("Expected 1 trade on 2024-01-01, got %d", len(groups["2024-01-01"]))
	}
	if len(groups["2024-01-02"]) != 2 {
		t.Errorf("Expected 2 trades on 2024-01-02, got %d", len(groups["2024-01-02"]))
	}
}

func TestGroupByDayEmpty(t *testing.T) {
	groups := analytics.GroupByDay(nil)
	if len(groups) != 0 {
		t.Errorf("Expected empty map, got %d groups", len(groups))
	}
}

func TestDailyBuckets(t *testing.T) {
	trades := []*types.Trade{
		mkTrade(t, "2024-01-02", -50),
		mkTrade(t, "2024-01-01", 100),
		mkTrade(t, "2024-01-01", -30),
	}
	trades[1].Contracts = 4
	trades[2].Contracts = 2

	buckets := analytics.DailyBuckets(trades)
	if len(buckets) != 2 {
		t.Fatalf("Expected 2 buckets, got %d", len(buckets))
	}

	day1 := buckets[0]
	if day1.Date != "2024-01-01" {
		t.Errorf("Expected buckets ordered by date, first was %s", day1.Date)
	}
	if day1.TradeCount != 2 || day1.WinCount != 1 {
		t.Errorf("Day 1: expected 2 trades / 1 win, got %d / %d", day1.TradeCount, day1.WinCount)
	}
	if day1.NetPnL.InexactFloat64() != 70 {
		t.Errorf("Day 1: expected net 70, got %s", day1.NetPnL)
	}
	if day1.AvgPositionSize.InexactFloat64() != 3 {
		t.Errorf("Day 1: expected avg position size 3, got %s", day1.AvgPositionSize)
	}
}

func TestDailyNet(t *testing.T) {
	trades := []*types.Trade{
		mkTrade(t, "2024-01-01", 100),
		mkTrade(t, "2024-01-02", -50),
		mkTrade(t, "2024-01-03", 75),
	}

	daily := analytics.DailyNet(analytics.DailyBuckets(trades))
	expected := []float64{100, -50, 75}
	if len(daily) != len(expected) {
		t.Fatalf("Expected %d values, got %d", len(expected), len(daily))
	}
	for i, v := range expected {
		if daily[i] != v {
			t.Errorf("Index %d: expected %v, got %v", i, v, daily[i])
		}
	}
}

// Package analytics_test provides tests for segment aggregation.
package analytics_test

import (
	"testing"

	"github.com/tradelens/journal-backend/internal/analytics"
	"github.com/tradelens/journal-backend/pkg/types"
)

func TestAggregateBySymbolScenario(t *testing.T) {
	trades := []*types.Trade{
		mkSymbolTrade(t, "2024-01-01", "AAPL", 100),
		mkSymbolTrade(t, "2024-01-02", "AAPL", -40),
		mkSymbolTrade(t, "2024-01-03", "TSLA", 200),
	}

	snapshots := analytics.AggregateBySegment(trades, analytics.BySymbol, nil)
	if len(snapshots) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(snapshots))
	}

	// Ordered by net P&L descending: TSLA first.
	tsla := snapshots[0]
	if tsla.ID != "TSLA" {
		t.Fatalf("Expected TSLA as best segment, got %s", tsla.ID)
	}
	if tsla.TradeCount != 1 || tsla.NetPnL.InexactFloat64() != 200 || tsla.WinRate != 100 {
		t.Errorf("TSLA: expected {1, 200, 100}, got {%d, %s, %v}",
			tsla.TradeCount, tsla.NetPnL, tsla.WinRate)
	}

	aapl := snapshots[1]
	if aapl.TradeCount != 2 || aapl.NetPnL.InexactFloat64() != 60 || aapl.WinRate != 50 {
		t.Errorf("AAPL: expected {2, 60, 50}, got {%d, %s, %v}",
			aapl.TradeCount, aapl.NetPnL, aapl.WinRate)
	}
}

func TestSegmentReductions(t *testing.T) {
	trades := []*types.Trade{
		mkSymbolTrade(t, "2024-01-01", "AAPL", 100),
		mkSymbolTrade(t, "2024-01-02", "AAPL", -40),
		mkSymbolTrade(t, "2024-01-03", "TSLA", 200),
		mkSymbolTrade(t, "2024-01-04", "NVDA", -300),
	}

	snapshots := analytics.AggregateBySegment(trades, analytics.BySymbol, nil)

	if best := analytics.BestSegment(snapshots); best == nil || best.ID != "TSLA" {
		t.Errorf("Expected best segment TSLA, got %+v", best)
	}
	if worst := analytics.WorstSegment(snapshots); worst == nil || worst.ID != "NVDA" {
		t.Errorf("Expected worst segment NVDA, got %+v", worst)
	}
	if active := analytics.MostActiveSegment(snapshots); active == nil || active.ID != "AAPL" {
		t.Errorf("Expected most active segment AAPL, got %+v", active)
	}
}

func TestSegmentTiesKeepInsertionOrder(t *testing.T) {
	trades := []*types.Trade{
		mkSymbolTrade(t, "2024-01-01", "FIRST", 50),
		mkSymbolTrade(t, "2024-01-02", "SECOND", 50),
	}

	snapshots := analytics.AggregateBySegment(trades, analytics.BySymbol, nil)
	if snapshots[0].ID != "FIRST" || snapshots[1].ID != "SECOND" {
		t.Errorf("Expected stable insertion order on equal P&L, got %s then %s",
			snapshots[0].ID, snapshots[1].ID)
	}
}

func TestSegmentEmptyInput(t *testing.T) {
	snapshots := analytics.AggregateBySegment(nil, analytics.BySymbol, nil)
	if len(snapshots) != 0 {
		t.Errorf("Expected no segments for empty input, got %d", len(snapshots))
	}
	if analytics.BestSegment(snapshots) != nil {
		t.Error("Expected nil best segment for empty input")
	}
}

func TestAggregateByStrategy(t *testing.T) {
	trades := []*types.Trade{
		mkTrade(t, "2024-01-01", 100),
		mkTrade(t, "2024-01-02", 50),
	}
	trades[0].Strategy = "breakout"

	snapshots := analytics.AggregateBySegment(trades, analytics.ByStrategy, nil)
	if len(snapshots) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(snapshots))
	}

	found := false
	for _, s := range snapshots {
		if s.ID == "unassigned" {
			found = true
		}
	}
	if !found {
		t.Error("Expected trades without a strategy in the 'unassigned' segment")
	}
}

func TestAggregateByVolumeBucket(t *testing.T) {
	trades := []*types.Trade{
		mkTrade(t, "2024-01-01", 10),
		mkTrade(t, "2024-01-02", 20),
		mkTrade(t, "2024-01-03", 30),
	}
	trades[0].Contracts = 1
	trades[1].Contracts = 4
	trades[2].Contracts = 50

	snapshots := analytics.AggregateBySegment(trades, analytics.ByVolumeBucket, analytics.VolumeBucketLabel)
	if len(snapshots) != 3 {
		t.Fatalf("Expected 3 volume buckets, got %d", len(snapshots))
	}
	for _, s := range snapshots {
		if s.Name != s.ID+" contracts" {
			t.Errorf("Expected labeled bucket name, got %q for key %q", s.Name, s.ID)
		}
	}
}

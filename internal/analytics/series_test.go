// Package analytics_test provides tests for cumulative series and the
// zero-crossing interpolator.
package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradelens/journal-backend/internal/analytics"
	"github.com/tradelens/journal-backend/pkg/types"
)

func seriesValues(points []types.ChartPoint) []float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	return values
}

func TestCumulativePnLScenario(t *testing.T) {
	trades := []*types.Trade{
		mkTrade(t, "2024-01-01", 100),
		mkTrade(t, "2024-01-02", -50),
		mkTrade(t, "2024-01-03", 75),
	}

	points := analytics.CumulativePnL(trades)
	expected := []float64{0, 100, 50, 125}

	if len(points) != len(trades)+1 {
		t.Fatalf("Expected %d points (origin + trades), got %d", len(trades)+1, len(points))
	}
	if points[0].Date != analytics.StartAnchor {
		t.Errorf("Expected origin date %q, got %q", analytics.StartAnchor, points[0].Date)
	}
	for i, v := range expected {
		if points[i].Value != v {
			t.Errorf("Point %d: expected %v, got %v", i, v, points[i].Value)
		}
	}
}

func TestEquitySeriesScenario(t *testing.T) {
	trades := []*types.Trade{
		mkTrade(t, "2024-01-01", 100),
		mkTrade(t, "2024-01-02", -50),
		mkTrade(t, "2024-01-03", 75),
	}

	points := analytics.EquitySeries(trades, decimal.NewFromInt(10000))
	expected := []float64{10000, 10100, 10050, 10125}
	for i, v := range expected {
		if points[i].Value != v {
			t.Errorf("Point %d: expected %v, got %v", i, v, points[i].Value)
		}
	}
}

func TestCumulativeEmptyTradeSet(t *testing.T) {
	points := analytics.CumulativePnL(nil)
	if len(points) != 1 {
		t.Fatalf("Expected only the origin point, got %d points", len(points))
	}
	if points[0].Date != analytics.StartAnchor || points[0].Value != 0 {
		t.Errorf("Expected {Start, 0}, got {%s, %v}", points[0].Date, points[0].Value)
	}
}

func TestCumulativeInputOrderInvariance(t *testing.T) {
	ordered := []*types.Trade{
		mkTrade(t, "2024-01-01", 100),
		mkTrade(t, "2024-01-02", -50),
		mkTrade(t, "2024-01-03", 75),
	}
	shuffled := []*types.Trade{ordered[2], ordered[0], ordered[1]}

	a := analytics.CumulativePnL(ordered)
	b := analytics.CumulativePnL(shuffled)

	if len(a) != len(b) {
		t.Fatalf("Length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("Point %d differs across input orders: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestCumulativeIdempotent(t *testing.T) {
	trades := []*types.Trade{
		mkTrade(t, "2024-01-01", 12.34),
		mkTrade(t, "2024-01-02", -5.67),
	}

	first := analytics.CumulativePnL(trades)
	second := analytics.CumulativePnL(trades)
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Point %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestCumulativeTotalConsistency(t *testing.T) {
	trades := []*types.Trade{
		mkTrade(t, "2024-01-01", 10.01),
		mkTrade(t, "2024-01-02", 20.02),
		mkTrade(t, "2024-01-03", -0.03),
		mkTrade(t, "2024-01-04", 5.55),
	}

	var total decimal.Decimal
	for _, trade := range trades {
		total = total.Add(trade.NetPnL)
	}

	points := analytics.CumulativePnL(trades)
	last := points[len(points)-1].Value
	diff := last - total.InexactFloat64()
	if diff > 0.01 || diff < -0.01 {
		t.Errorf("Cumulative total %v drifted from trade sum %s", last, total)
	}
}

func TestWinLossSeries(t *testing.T) {
	trades := []*types.Trade{
		mkTrade(t, "2024-01-01", 100),
		mkTrade(t, "2024-01-02", -40),
		mkTrade(t, "2024-01-03", 0), // Breakeven feeds neither series
		mkTrade(t, "2024-01-04", 60),
	}

	wins, losses := analytics.WinLossSeries(trades)

	wantWins := []float64{0, 100, 160}
	gotWins := seriesValues(wins)
	if len(gotWins) != len(wantWins) {
		t.Fatalf("Wins series: expected %d points, got %d", len(wantWins), len(gotWins))
	}
	for i, v := range wantWins {
		if gotWins[i] != v {
			t.Errorf("Wins point %d: expected %v, got %v", i, v, gotWins[i])
		}
	}

	// Losses accumulate as absolute values.
	wantLosses := []float64{0, 40}
	gotLosses := seriesValues(losses)
	if len(gotLosses) != len(wantLosses) {
		t.Fatalf("Losses series: expected %d points, got %d", len(wantLosses), len(gotLosses))
	}
	for i, v := range wantLosses {
		if gotLosses[i] != v {
			t.Errorf("Losses point %d: expected %v, got %v", i, v, gotLosses[i])
		}
	}
}

func TestInterpolateZeroCrossingMidpoint(t *testing.T) {
	points := []types.ChartPoint{
		{Date: "2024-01-01T00:00:00Z", Value: -10},
		{Date: "2024-01-03T00:00:00Z", Value: 10},
	}

	out := analytics.InterpolateZeroCrossings(points)
	if len(out) != 3 {
		t.Fatalf("Expected exactly one synthetic point, got %d total", len(out))
	}

	synth := out[1]
	if synth.Value != 0 {
		t.Errorf("Expected synthetic value 0, got %v", synth.Value)
	}

	// Equal magnitudes put the crossing at the temporal midpoint.
	mid, err := time.Parse(time.RFC3339, synth.Date)
	if err != nil {
		t.Fatalf("Synthetic date not parsable: %v", err)
	}
	expected := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	if !mid.Equal(expected) {
		t.Errorf("Expected midpoint %v, got %v", expected, mid)
	}
}

func TestInterpolateWeightedCrossing(t *testing.T) {
	// -30 to +10 crosses at 3/4 of the interval.
	points := []types.ChartPoint{
		{Date: "2024-01-01T00:00:00Z", Value: -30},
		{Date: "2024-01-05T00:00:00Z", Value: 10},
	}

	out := analytics.InterpolateZeroCrossings(points)
	if len(out) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(out))
	}

	mid, err := time.Parse(time.RFC3339, out[1].Date)
	if err != nil {
		t.Fatalf("Synthetic date not parsable: %v", err)
	}
	expected := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
	if !mid.Equal(expected) {
		t.Errorf("Expected crossing at %v, got %v", expected, mid)
	}
}

func TestInterpolateSkipsExactZeros(t *testing.T) {
	points := []types.ChartPoint{
		{Date: "2024-01-01T00:00:00Z", Value: -10},
		{Date: "2024-01-02T00:00:00Z", Value: 0},
		{Date: "2024-01-03T00:00:00Z", Value: 10},
	}

	out := analytics.InterpolateZeroCrossings(points)
	if len(out) != 3 {
		t.Errorf("Expected no synthetic points around an existing zero, got %d points", len(out))
	}
}

func TestInterpolateDoesNotMutateInput(t *testing.T) {
	points := []types.ChartPoint{
		{Date: "2024-01-01T00:00:00Z", Value: -10},
		{Date: "2024-01-03T00:00:00Z", Value: 10},
	}
	snapshot := make([]types.ChartPoint, len(points))
	copy(snapshot, points)

	_ = analytics.InterpolateZeroCrossings(points)

	for i := range points {
		if points[i] != snapshot[i] {
			t.Error("Input slice was mutated by interpolation")
		}
	}
}

func TestInterpolatePreservesOrder(t *testing.T) {
	points := []types.ChartPoint{
		{Date: "2024-01-01T00:00:00Z", Value: 5},
		{Date: "2024-01-02T00:00:00Z", Value: -5},
		{Date: "2024-01-03T00:00:00Z", Value: 7},
	}

	out := analytics.InterpolateZeroCrossings(points)
	if len(out) != 5 {
		t.Fatalf("Expected 2 synthetic points (5 total), got %d", len(out))
	}
	if out[0] != points[0] || out[2] != points[1] || out[4] != points[2] {
		t.Error("Original points reordered or altered")
	}
	if out[1].Value != 0 || out[3].Value != 0 {
		t.Error("Synthetic points must have value 0")
	}
}

func TestInterpolateSkipsOriginAnchor(t *testing.T) {
	// Equity basis: a positive starting balance followed by a loss that
	// takes the account negative crosses zero right at the origin
	// anchor, which has no real timestamp to interpolate against.
	points := analytics.EquitySeries(
		[]*types.Trade{mkTrade(t, "2024-01-01", -100)},
		decimal.NewFromInt(50),
	)

	out := analytics.InterpolateZeroCrossings(points)
	if len(out) != len(points) {
		t.Fatalf("Expected %d points unchanged, got %d", len(points), len(out))
	}
	for _, p := range out {
		if p.Value == 0 && p.Date == analytics.StartAnchor {
			continue
		}
		if p.Value == 0 {
			t.Errorf("Unexpected synthetic zero point at %q", p.Date)
		}
	}
}

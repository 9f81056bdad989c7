// Package analytics: drawdown and rolling volatility over daily nets.
package analytics

import (
	"math"

	"github.com/tradelens/journal-backend/pkg/utils"
)

// DefaultVolatilityWindow is the trailing window used when callers do
// not specify one.
const DefaultVolatilityWindow = 14

// ComputeDrawdown derives the drawdown-from-peak curve from a daily net
// P&L series. Equity accumulates day by day, the peak ratchets upward,
// and each emitted value is equity minus peak: always <= 0, exactly 0 on
// the day a new peak is set (the first day included). Values are rounded
// to currency precision at emission.
func ComputeDrawdown(dailyNet []float64) []float64 {
	if len(dailyNet) == 0 {
		return []float64{}
	}

	drawdowns := make([]float64, len(dailyNet))
	equity := 0.0
	peak := math.Inf(-1)

	for i, net := range dailyNet {
		equity += net
		if equity > peak {
			peak = equity
		}
		drawdowns[i] = utils.RoundFloat2(equity - peak)
	}

	return drawdowns
}

// ComputeRollingVolatility computes the population standard deviation
// (divide by N, not N-1) of the trailing window ending at each day. The
// window shrinks at the start of the series rather than padding with
// zeros, so early points reflect only the days actually seen. A window
// of zero or less falls back to the default.
func ComputeRollingVolatility(dailyNet []float64, window int) []float64 {
	if len(dailyNet) == 0 {
		return []float64{}
	}
	if window <= 0 {
		window = DefaultVolatilityWindow
	}

	vols := make([]float64, len(dailyNet))
	for i := range dailyNet {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		vols[i] = utils.RoundFloat2(populationStdDev(dailyNet[start : i+1]))
	}

	return vols
}

func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sumSquares float64
	for _, v := range values {
		diff := v - mean
		sumSquares += diff * diff
	}

	return math.Sqrt(sumSquares / float64(len(values)))
}

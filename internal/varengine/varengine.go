// Package varengine implements C5: historical 1-day 95% VaR and stressed
// VaR from a portfolio's daily P&L time series.
package varengine

import (
	"fmt"
	"math"

	"github.com/aristath/riskengine/internal/domain"
	"github.com/aristath/riskengine/pkg/stats"
)

// MinObservations is the minimum P&L history length C5 requires before a
// VaR figure is trustworthy.
const MinObservations = 60

// confidenceTail is 1 - confidence level, i.e. 0.05 for a 95% VaR.
const confidenceTail = 0.05

// Result is the VaR figure plus the index and sorted series it was read
// from, kept for backtesting (C12) and stress reporting (C10).
type Result struct {
	VaR          float64
	Index        int
	SortedPnL    []float64
}

// Historical1Day95 computes VaR_1d_95 from a full P&L history: sort
// ascending, take index k = floor(tail * N), report -sorted[k] as a
// non-negative magnitude. Fewer than
// MinObservations returns InsufficientHistory.
func Historical1Day95(pnl []float64) (Result, error) {
	n := len(pnl)
	if n < MinObservations {
		return Result{}, domain.NewError(domain.ErrInsufficientHistory, "", fmt.Errorf("need >= %d observations, got %d", MinObservations, n))
	}
	sorted := stats.SortedAscending(pnl)
	k := int(math.Floor(confidenceTail * float64(n)))
	if k >= n {
		k = n - 1
	}
	return Result{VaR: -sorted[k], Index: k, SortedPnL: sorted}, nil
}

// StressedVaR computes VaR over a configured crisis window (a sub-slice of
// the full P&L history). If the window has fewer than MinObservations,
// returns StressWindowTooShort and NaN. The caller must check the error
// rather than trust the NaN sentinel alone.
func StressedVaR(windowPnL []float64) (float64, error) {
	n := len(windowPnL)
	if n < MinObservations {
		return math.NaN(), domain.NewError(domain.ErrStressWindowShort, "", fmt.Errorf("stress window has %d observations, need >= %d", n, MinObservations))
	}
	sorted := stats.SortedAscending(windowPnL)
	k := int(math.Floor(confidenceTail * float64(n)))
	if k >= n {
		k = n - 1
	}
	return -sorted[k], nil
}

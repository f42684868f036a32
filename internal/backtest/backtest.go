// Package backtest implements C12: append-only VaR backtesting records,
// rolling-250 exception counting with traffic-light classification, and
// the optional Kupiec unconditional-coverage test.
package backtest

import (
	"math"

	"github.com/aristath/riskengine/internal/domain"
	"gonum.org/v1/gonum/stat/distuv"
)

// NewRecord builds one backtesting record: an exception is a realized loss
// (negative P&L) exceeding the prior day's VaR forecast in magnitude
//.
func NewRecord(id, portfolioID, date string, varForecastPrev, realizedPnL float64) domain.BacktestingRecord {
	isException := -realizedPnL > varForecastPrev
	return domain.BacktestingRecord{
		ID:          id,
		PortfolioID: portfolioID,
		Date:        date,
		VaRForecast: varForecastPrev,
		RealizedPnL: realizedPnL,
		IsException: isException,
	}
}

// RollingExceptionCount counts exceptions in the most recent window
//.
func RollingExceptionCount(records []domain.BacktestingRecord, window int) int {
	start := 0
	if len(records) > window {
		start = len(records) - window
	}
	count := 0
	for _, r := range records[start:] {
		if r.IsException {
			count++
		}
	}
	return count
}

// TrafficLight classifies a rolling exception count: 0-4 Green, 5-9
// Yellow, >=10 Red.
func TrafficLight(exceptionCount int) domain.TrafficLight {
	switch {
	case exceptionCount >= 10:
		return domain.TrafficRed
	case exceptionCount >= 5:
		return domain.TrafficYellow
	default:
		return domain.TrafficGreen
	}
}

// KupiecPValue computes the two-sided p-value of the Kupiec
// unconditional-coverage likelihood-ratio test: under H0 the true
// exception rate equals expectedRate. n is the window length, x the observed exception count.
func KupiecPValue(n, x int, expectedRate float64) float64 {
	if n == 0 {
		return 1
	}
	lr := kupiecLR(n, x, expectedRate)
	if lr < 0 {
		lr = 0
	}
	chi2 := distuv.ChiSquared{K: 1}
	return 1 - chi2.CDF(lr)
}

func kupiecLR(n, x int, p float64) float64 {
	N, X := float64(n), float64(x)
	pHat := X / N
	logTerm := func(rate float64) float64 {
		if rate <= 0 || rate >= 1 {
			return 0
		}
		return (N-X)*logSafe(1-rate) + X*logSafe(rate)
	}
	return -2 * (logTerm(p) - logTerm(pHat))
}

func logSafe(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Log(x)
}

package stress

import (
	"math"
	"sort"

	"github.com/aristath/riskengine/internal/domain"
)

// MetricDeltas bundles the before/after portfolio-level figures the
// orchestrator recomputed under a shocked view; BuildResult turns these
// into the deltas persisted per (scenario, portfolio).
type MetricDeltas struct {
	BeforeVaR          float64
	AfterVaR           float64
	BeforeK            float64
	AfterK             float64
	BeforeCapitalRatio float64
	AfterCapitalRatio  float64
	BeforeLCR          float64
	AfterLCR           float64
}

// BuildResult assembles one scenario's StressResult: P&L (sum of
// after-before market value across positions), metric deltas, and the
// top-10 contributors by absolute change in market value. beforeMV and
// afterMV are keyed by each position's stable reference (ISIN for bonds,
// Position.Reference for derivatives).
func BuildResult(scenarioName string, beforeMV, afterMV map[string]float64, deltas MetricDeltas) domain.StressResult {
	pnl := 0.0
	for ref, before := range beforeMV {
		pnl += afterMV[ref] - before
	}

	return domain.StressResult{
		ScenarioName:      scenarioName,
		PnL:               pnl,
		DeltaVaR:          deltas.AfterVaR - deltas.BeforeVaR,
		DeltaK:            deltas.AfterK - deltas.BeforeK,
		DeltaCapitalRatio: safeDelta(deltas.AfterCapitalRatio, deltas.BeforeCapitalRatio),
		DeltaLCR:          safeDelta(deltas.AfterLCR, deltas.BeforeLCR),
		TopContributors:   TopContributors(beforeMV, afterMV, 10),
	}
}

// safeDelta returns after-before, but 0 if either side is the +Inf LCR
// sentinel rather than propagating a meaningless Inf-Inf subtraction.
func safeDelta(after, before float64) float64 {
	if math.IsInf(after, 1) || math.IsInf(before, 1) {
		return 0
	}
	return after - before
}

// TopContributors ranks positions by absolute change in market value,
// descending, and returns the top n.
func TopContributors(beforeMV, afterMV map[string]float64, n int) []domain.StressContributor {
	contributors := make([]domain.StressContributor, 0, len(beforeMV))
	for ref, before := range beforeMV {
		delta := afterMV[ref] - before
		contributors = append(contributors, domain.StressContributor{Reference: ref, DeltaMV: delta})
	}
	sort.Slice(contributors, func(i, j int) bool {
		return math.Abs(contributors[i].DeltaMV) > math.Abs(contributors[j].DeltaMV)
	})
	if len(contributors) > n {
		contributors = contributors[:n]
	}
	return contributors
}

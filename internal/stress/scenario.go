// Package stress implements declarative shock scenarios applied to a
// market view, and the (scenario, portfolio) result assembly: P&L, metric
// deltas, and top-10 contributors. Re-running pricing and the risk blocks
// on the shocked view is the orchestrator's job (internal/snapshot); this
// package only shocks the view and assembles results from whatever
// before/after figures the orchestrator computed.
package stress

import (
	"github.com/aristath/riskengine/internal/domain"
	"github.com/aristath/riskengine/internal/marketdata"
)

// Scenario is a declarative bundle of market shocks.
// CurveShiftBps is a parallel shift applied to every currency's curve;
// CurveTwistShortBps/CurveTwistLongBps add a steepening/flattening twist on
// top of the parallel shift at the curve's shortest and longest tenor
// (interpolated linearly between).
type Scenario struct {
	Name                      string
	CurveShiftBps             float64
	CurveTwistShortBps        float64
	CurveTwistLongBps         float64
	SpreadWideningBpsByRating map[string]float64 // issuer rating -> bps widening, applied via ISIN->bump lookup the caller resolves
	FxShockPct                map[string]float64 // "BASE/QUOTE" -> multiplicative shock, e.g. -0.10 for -10%
	VolMultiplier             float64             // 1.0 = no change
	BidAskMultiplier          float64             // 1.0 = no change
	OutflowMultiplier         float64             // carried on the scenario; neither Apply nor the liquidity component applies it
}

// Apply produces a shocked view from scenario, leaving the original view
// untouched.
func Apply(view *marketdata.View, scenario Scenario, isinSpreadBumps map[string]float64) *marketdata.View {
	shocked := view

	if scenario.CurveShiftBps != 0 || scenario.CurveTwistShortBps != 0 || scenario.CurveTwistLongBps != 0 {
		shocked = shocked.WithShockedCurves(twistedCurves(shocked, scenario))
	}
	if len(scenario.FxShockPct) > 0 {
		shocked = shocked.WithShockedFx(shockedFx(shocked, scenario.FxShockPct))
	}
	if len(isinSpreadBumps) > 0 {
		shocked = shocked.WithShockedSpreads(isinSpreadBumps)
	}
	if scenario.VolMultiplier != 0 && scenario.VolMultiplier != 1.0 {
		shocked = shocked.WithShockedVols(scenario.VolMultiplier)
	}
	if scenario.BidAskMultiplier != 0 && scenario.BidAskMultiplier != 1.0 {
		shocked = shocked.WithShockedBidAsk(scenario.BidAskMultiplier)
	}
	return shocked
}

func twistedCurves(view *marketdata.View, scenario Scenario) map[string]marketdata.YieldCurve {
	raw := view.Raw()
	out := make(map[string]marketdata.YieldCurve, len(raw.Curves))
	for currency, curve := range raw.Curves {
		out[currency] = twistCurve(curve, scenario)
	}
	return out
}

// twistCurve applies a parallel shift plus a tenor-linear twist between the
// curve's shortest and longest points.
func twistCurve(curve marketdata.YieldCurve, scenario Scenario) marketdata.YieldCurve {
	if len(curve.Points) == 0 {
		return curve
	}
	minT := curve.Points[0].TenorYears
	maxT := curve.Points[len(curve.Points)-1].TenorYears
	span := maxT - minT

	points := make([]marketdata.CurvePoint, len(curve.Points))
	for i, p := range curve.Points {
		twist := 0.0
		if span > 0 {
			frac := (p.TenorYears - minT) / span
			twist = scenario.CurveTwistShortBps*(1-frac) + scenario.CurveTwistLongBps*frac
		}
		points[i] = marketdata.CurvePoint{
			TenorYears: p.TenorYears,
			ZeroRate:   p.ZeroRate + (scenario.CurveShiftBps+twist)/10000,
		}
	}
	return marketdata.YieldCurve{Currency: curve.Currency, Points: points}
}

func shockedFx(view *marketdata.View, shocks map[string]float64) map[string]float64 {
	raw := view.Raw()
	out := make(map[string]float64, len(raw.FxRates))
	for pair, rate := range raw.FxRates {
		if pct, ok := shocks[pair]; ok {
			out[pair] = rate * (1 + pct)
		} else {
			out[pair] = rate
		}
	}
	return out
}

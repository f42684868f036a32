// Package liquidity implements C8: HQLA classification, 30-day net
// outflows, LCR, and position-level liquidation cost.
package liquidity

import "math"

// HQLAClass classifies a liquid-asset holding by regulatory tier.
type HQLAClass int

const (
	HQLALevel1 HQLAClass = iota
	HQLALevel2A
	HQLALevel2B
)

// HQLAHolding is one liquid-asset position before haircut.
type HQLAHolding struct {
	Class        HQLAClass
	MarketValue  float64
	EligibleHigh bool // Level 2B only: eligible equities/corp bonds get 0.75 instead of 0.50
}

// haircut returns the regulatory haircut factor for a holding.
func haircut(h HQLAHolding) float64 {
	switch h.Class {
	case HQLALevel1:
		return 1.0
	case HQLALevel2A:
		return 0.85
	case HQLALevel2B:
		if h.EligibleHigh {
			return 0.75
		}
		return 0.50
	default:
		return 0
	}
}

// HQLA aggregates eligible liquid assets after haircut, capping L2A at 40%
// of total HQLA and L2B at 15% of total HQLA. Because admitting less
// L2A/L2B shrinks the total they are capped against, the result is the
// fixed point H = l1 + min(l2a, 0.40H) + min(l2b, 0.15H), taken in closed
// form as the smallest of the four totals the cap combinations give.
func HQLA(holdings []HQLAHolding) float64 {
	var l1, l2a, l2b float64
	for _, h := range holdings {
		v := h.MarketValue * haircut(h)
		switch h.Class {
		case HQLALevel1:
			l1 += v
		case HQLALevel2A:
			l2a += v
		case HQLALevel2B:
			l2b += v
		}
	}

	uncapped := l1 + l2a + l2b
	l2aCapped := (l1 + l2b) / 0.60
	l2bCapped := (l1 + l2a) / 0.85
	bothCapped := l1 / 0.45
	return math.Min(math.Min(uncapped, l2aCapped), math.Min(l2bCapped, bothCapped))
}

// OutflowClass classifies a cash-outflow source for run-off-rate lookup.
type OutflowClass int

const (
	OutflowRetail OutflowClass = iota
	OutflowWholesaleUnsecured
	OutflowSecured
	OutflowDerivativeCollateral
	OutflowCommittedFacility
	OutflowDebtMaturity
)

// Outflow is one 30-day cash outflow source. RunOffRate is read for every
// class except OutflowDebtMaturity, which always runs off at 100%. Retail,
// wholesale unsecured and committed facilities accept a rate inside their
// regulatory band and fall back to the band's low end otherwise; secured
// and derivative-collateral outflows use the rate clamped to [0, 1].
type Outflow struct {
	Class      OutflowClass
	Amount     float64
	RunOffRate float64 // see runOffRate for how each class uses it
}

func runOffRate(o Outflow) float64 {
	switch o.Class {
	case OutflowRetail:
		return clamp(0.05, 0.10, o.RunOffRate, 0.05)
	case OutflowWholesaleUnsecured:
		return clamp(0.25, 0.40, o.RunOffRate, 0.25)
	case OutflowSecured:
		return clampUnit(o.RunOffRate)
	case OutflowDerivativeCollateral:
		return clampUnit(o.RunOffRate)
	case OutflowCommittedFacility:
		return clamp(0.30, 1.00, o.RunOffRate, 0.30)
	case OutflowDebtMaturity:
		return 1.00
	default:
		return 1.00
	}
}

// clamp returns rate if it falls in [lo, hi], else dflt, letting callers
// supply a more precise rate within the regulator's allowed band while
// still defaulting sensibly when unset.
func clamp(lo, hi, rate, dflt float64) float64 {
	if rate >= lo && rate <= hi {
		return rate
	}
	return dflt
}

func clampUnit(rate float64) float64 {
	if rate < 0 {
		return 0
	}
	if rate > 1 {
		return 1
	}
	return rate
}

// Outflows30d sums amount * run_off_rate across every outflow source.
func Outflows30d(outflows []Outflow) float64 {
	total := 0.0
	for _, o := range outflows {
		total += o.Amount * runOffRate(o)
	}
	return total
}

// NetOutflows computes Outflows - min(Inflows, 0.75*Outflows), the 30-day
// net cash outflow LCR's denominator.
func NetOutflows(outflows, inflows float64) float64 {
	cappedInflows := math.Min(inflows, 0.75*outflows)
	return outflows - cappedInflows
}

// PosInfSentinel is the +Infinity LCR value reported when NetOutflows <= 0:
// no outflows to cover means the ratio is definitionally unbounded, not an
// error.
var PosInfSentinel = math.Inf(1)

// LCR returns HQLA / NetOutflows, or +Inf if netOutflows <= 0.
func LCR(hqla, netOutflows float64) float64 {
	if netOutflows <= 0 {
		return PosInfSentinel
	}
	return hqla / netOutflows
}

// PositionLiquidity is one position's bid/ask and average daily volume
// inputs to the liquidation cost model.
type PositionLiquidity struct {
	Reference string
	Bid       float64
	Ask       float64
	Quantity  float64
	ADV       float64 // average daily volume
}

// LiquidationCost applies a depth-adjusted cost model:
// cost = 0.5*(ask-bid)*qty*f(qty/ADV), f(x) = 1 + min(9, x). Spreading the
// full quantity over n days paces the daily sale to qty/n, so the depth
// penalty is evaluated at that reduced pace while the spread cost still
// applies to the full quantity liquidated.
func LiquidationCost(p PositionLiquidity, days int) float64 {
	if days <= 0 {
		days = 1
	}
	pace := p.Quantity / float64(days)
	x := 0.0
	if p.ADV > 0 {
		x = pace / p.ADV
	}
	f := 1 + math.Min(9, x)
	return 0.5 * (p.Ask - p.Bid) * p.Quantity * f
}

// PortfolioLiquidationCost sums LiquidationCost across positions for the
// given liquidation horizon in days.
func PortfolioLiquidationCost(positions []PositionLiquidity, days int) float64 {
	total := 0.0
	for _, p := range positions {
		total += LiquidationCost(p, days)
	}
	return total
}

// Package ccr implements C7: counterparty credit risk exposure (current
// exposure, PFE add-ons, netting, collateral adjustment, EAD_CCR) and CVA.
package ccr

import (
	"math"
	"sort"

	"github.com/aristath/riskengine/internal/domain"
)

// VolRegime selects the PFE vol multiplier bucket.
type VolRegime int

const (
	RegimeNormal VolRegime = iota
	RegimeVIX20
	RegimeVIX30
)

func fxVolMult(regime VolRegime) float64 {
	switch regime {
	case RegimeVIX30:
		return 1.5
	case RegimeVIX20:
		return 1.3
	default:
		return 1.0
	}
}

func irVolMult(regime VolRegime) float64 {
	if regime == RegimeNormal {
		return 1.0
	}
	return 1.2
}

var majorFxPairs = map[string]bool{
	"EURUSD": true, "USDJPY": true, "GBPUSD": true, "USDCHF": true,
	"USDCAD": true, "AUDUSD": true, "NZDUSD": true,
}

func fxCCF(pair string) float64 {
	if majorFxPairs[pair] {
		return 0.010
	}
	return 0.025
}

// irCCF steps by tenor bucket.
func irCCF(tenorYears float64) float64 {
	switch {
	case tenorYears <= 1:
		return 0
	case tenorYears <= 5:
		return 0.005
	case tenorYears <= 10:
		return 0.010
	default:
		return 0.015
	}
}

// Trade is one derivative's exposure inputs for PFE computation. IsOption
// distinguishes cap/floor and swaption/FX-option trades from forwards and
// swaps; IsLong selects the long-option vs short-option PFE formula.
type Trade struct {
	Reference      string
	CounterpartyID string
	Kind           domain.InstrumentKind
	Notional       float64
	MarketValue    float64 // signed MtM
	TenorYears     float64
	FxPair         string
	IsOption       bool
	IsLong         bool
	Delta          float64 // for short options
	PremiumPaid    float64 // for long options
	CapPolicy      float64 // long-option PFE cap
}

// pfe returns one trade's PFE add-on from the instrument-class CCF table.
func pfe(tr Trade, regime VolRegime) float64 {
	if tr.IsOption {
		if tr.IsLong {
			return math.Min(tr.PremiumPaid, tr.CapPolicy)
		}
		ccf := instrumentCCF(tr, regime)
		return math.Abs(tr.Delta) * tr.Notional * ccf
	}
	switch tr.Kind {
	case domain.InstrumentFxForward:
		return tr.Notional * fxCCF(tr.FxPair) * math.Sqrt(tr.TenorYears*250/250) * fxVolMult(regime)
	default:
		return tr.Notional * irCCF(tr.TenorYears) * math.Sqrt(tr.TenorYears*250/250) * irVolMult(regime)
	}
}

func instrumentCCF(tr Trade, regime VolRegime) float64 {
	switch tr.Kind {
	case domain.InstrumentFxForward, domain.InstrumentFxOption:
		return fxCCF(tr.FxPair)
	default:
		return irCCF(tr.TenorYears)
	}
}

// CounterpartyExposure is one counterparty's aggregated CCR output.
type CounterpartyExposure struct {
	CounterpartyID string
	CE             float64
	GrossPFE       float64
	NetPFE         float64
	AdjPFE         float64
	EAD            float64
}

// Evaluate aggregates all trades against a single counterparty into its
// current exposure, netted/collateral-adjusted PFE and EAD_CCR.
func Evaluate(trades []Trade, cpty domain.Counterparty, regime VolRegime) CounterpartyExposure {
	ce := 0.0
	pfes := make([]float64, 0, len(trades))
	sameDirectionCount, total := 0, len(trades)
	netDelta, grossDelta := 0.0, 0.0

	for _, tr := range trades {
		ce += math.Max(tr.MarketValue, 0)
		p := pfe(tr, regime)
		pfes = append(pfes, p)
		netDelta += tr.MarketValue
		grossDelta += math.Abs(tr.MarketValue)
		if tr.MarketValue > 0 {
			sameDirectionCount++
		}
	}

	grossPFE := 0.0
	for _, p := range pfes {
		grossPFE += p
	}
	netPFE := grossPFE
	if cpty.ISDANetting {
		netPFE = netted(pfes)
	}

	factor := portfolioFactor(total, sameDirectionCount, netDelta, grossDelta)
	netPFE *= factor

	adjPFE := math.Max(0, netPFE-cpty.CSA.CollateralHeld+cpty.CSA.Threshold)

	return CounterpartyExposure{
		CounterpartyID: cpty.ID,
		CE:             ce,
		GrossPFE:       grossPFE,
		NetPFE:         netPFE,
		AdjPFE:         adjPFE,
		EAD:            ce + adjPFE,
	}
}

// netted applies the ISDA-netting benefit: sqrt(Sum(PFE_i^2)) * 0.6.
func netted(pfes []float64) float64 {
	sumSq := 0.0
	for _, p := range pfes {
		sumSq += p * p
	}
	return math.Sqrt(sumSq) * 0.6
}

// portfolioFactor applies the >10-trade portfolio adjustment: 0.8 same
// direction, 1.0 mixed, 0.5 if net delta is within 5% of gross (near flat).
func portfolioFactor(totalTrades, sameDirectionCount int, netDelta, grossDelta float64) float64 {
	if totalTrades <= 10 {
		return 1.0
	}
	if grossDelta > 0 && math.Abs(netDelta) <= 0.05*grossDelta {
		return 0.5
	}
	if sameDirectionCount == totalTrades || sameDirectionCount == 0 {
		return 0.8
	}
	return 1.0
}

// cvaBuckets are the fixed tenor buckets CVA integrates over, capped at
// the counterparty's max trade maturity.
var cvaBuckets = []float64{0.25, 0.5, 1, 2, 3, 5}

// CVAInput bundles what CVA needs beyond the already-computed CE/PFE: the
// risk-free rate for discounting, the LGD applicable to this counterparty,
// the max trade maturity (buckets beyond it are dropped), the 1-year PD
// from the rating table (fallback hazard approximation), and an optional
// CDS spread in bps (preferred hazard source when available).
type CVAInput struct {
	CE          float64
	TotalPFE    float64
	RiskFreeRate float64
	LGD         float64
	MaxMaturity float64
	PD1Y        float64
	CDSSpreadBps float64
	HasCDSSpread bool
}

// CVA computes one counterparty's credit valuation adjustment by
// integrating EAD_t * marginal default probability across the bucket
// grid, discounted at the risk-free rate.
func CVA(in CVAInput) float64 {
	tMax := in.MaxMaturity
	if tMax <= 0 {
		return 0
	}
	buckets := make([]float64, 0, len(cvaBuckets))
	for _, t := range cvaBuckets {
		if t <= tMax {
			buckets = append(buckets, t)
		}
	}
	if len(buckets) == 0 || buckets[len(buckets)-1] < tMax {
		buckets = append(buckets, tMax)
	}
	sort.Float64s(buckets)

	cva := 0.0
	prevPD := 0.0
	for _, t := range buckets {
		eadT := in.CE + in.TotalPFE*math.Sqrt(t/tMax)
		df := math.Exp(-in.RiskFreeRate * t)
		pd := cumulativePD(in, t)
		cva += (pd - prevPD) * df * eadT
		prevPD = pd
	}
	return in.LGD * cva
}

func cumulativePD(in CVAInput, t float64) float64 {
	if in.HasCDSSpread && in.LGD > 0 {
		s := in.CDSSpreadBps / 10000
		return 1 - math.Exp(-s*t/in.LGD)
	}
	return 1 - math.Pow(1-in.PD1Y, t)
}

package domain

import (
	"encoding/json"
	"math"
)

// Status is the C13 state machine's terminal state for one run.
type Status string

const (
	StatusPending Status = "Pending"
	StatusRunning Status = "Running"
	StatusSuccess Status = "Success"
	StatusPartial Status = "Partial"
	StatusFailed  Status = "Failed"
)

// PosInf is the sentinel the engine uses wherever a ratio's denominator is
// non-positive (e.g. LCR with zero net outflows). json.Marshal cannot
// encode math.Inf, so RiskSnapshot.MarshalJSON substitutes a large finite
// sentinel value at serialization time only; internal comparisons always
// use PosInf.
var PosInf = math.Inf(1)

// MarketBlock holds the C3/C4/C5-derived portfolio-level market risk
// metrics.
type MarketBlock struct {
	VaR1d95      float64 `json:"var_1d_95"`
	StressedVaR  float64 `json:"stressed_var"`
	DV01Total    float64 `json:"dv01_total"`
	Duration     float64 `json:"duration"`
	Convexity    float64 `json:"convexity"`
}

// CreditBlock holds the C6-derived issuer credit metrics plus the CVA total
// computed by C7.
type CreditBlock struct {
	TotalExposure float64 `json:"total_exposure"`
	ExpectedLoss  float64 `json:"expected_loss"`
	CVATotal      float64 `json:"cva_total"`
}

// CCRBlock holds the C7 counterparty exposure metrics.
type CCRBlock struct {
	PFECurrent float64 `json:"pfe_current"`
	PFEPeak    float64 `json:"pfe_peak"`
	EADTotal   float64 `json:"ead_total"`
}

// LiquidityBlock holds the C8 liquidity metrics.
type LiquidityBlock struct {
	LCRRatio              float64 `json:"lcr_ratio"`
	FundingGapShortTerm    float64 `json:"funding_gap_short_term"`
	LiquidationCost1d      float64 `json:"liquidation_cost_1d"`
	LiquidationCost5d      float64 `json:"liquidation_cost_5d"`
	LiquidityScore         float64 `json:"liquidity_score"`
}

// CapitalBlock holds the C9 K-factor capital metrics.
type CapitalBlock struct {
	KNPR        float64 `json:"k_npr"`
	KAUM        float64 `json:"k_aum"`
	KCMH        float64 `json:"k_cmh"`
	KCOH        float64 `json:"k_coh"`
	TotalKReq   float64 `json:"total_k_req"`
	OwnFunds    float64 `json:"own_funds"`
	CapitalRatio float64 `json:"capital_ratio"`
}

// StressResult is one (scenario, portfolio) outcome produced by C10.
type StressResult struct {
	ScenarioName      string              `json:"scenario_name"`
	PnL               float64             `json:"pnl"`
	DeltaVaR          float64             `json:"delta_var"`
	DeltaK            float64             `json:"delta_k"`
	DeltaCapitalRatio float64             `json:"delta_capital_ratio"`
	DeltaLCR          float64             `json:"delta_lcr"`
	TopContributors   []StressContributor `json:"top_contributors"`
}

// StressContributor identifies one of the top-10 positions by absolute
// change in market value under a scenario. Reference is the bond ISIN or
// the derivative's position reference, whichever the position carries.
type StressContributor struct {
	Reference string  `json:"reference"`
	DeltaMV   float64 `json:"delta_mv"`
}

// AlertsSummary counts emitted alerts by severity.
type AlertsSummary struct {
	Green    int `json:"GREEN"`
	Yellow   int `json:"YELLOW"`
	Red      int `json:"RED"`
	Critical int `json:"CRITICAL"`
}

// RiskSnapshot is the engine's output root. It is immutable once returned;
// identity is (PortfolioID, AsOfDate, EngineVersion).
type RiskSnapshot struct {
	PortfolioID          string          `json:"portfolio_id"`
	AsOfDate             string          `json:"as_of_date"`
	CalculationTimestamp int64           `json:"calculation_timestamp"`
	EngineVersion        string          `json:"engine_version"`
	MarketDataSnapshotID string          `json:"market_data_snapshot_id"`
	Status               Status          `json:"status"`
	Market               *MarketBlock    `json:"market,omitempty"`
	Credit               *CreditBlock    `json:"credit,omitempty"`
	CCR                  *CCRBlock       `json:"ccr,omitempty"`
	Liquidity            *LiquidityBlock `json:"liquidity,omitempty"`
	Capital              *CapitalBlock   `json:"capital,omitempty"`
	Stress               []StressResult  `json:"stress,omitempty"`
	AlertsSummary        AlertsSummary   `json:"alerts_summary"`
	Alerts               []Alert         `json:"alerts,omitempty"`
	DataQualityIssues     []DataQualityIssue `json:"data_quality_issues,omitempty"`
	ErrorMessage         string          `json:"error_message,omitempty"`
}

// RoundCurrency rounds a monetary amount to 2 decimal places. This happens
// only at serialization: component computations always use the unrounded
// float64.
func RoundCurrency(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	return math.Round(v*100) / 100
}

// infSentinel substitutes for PosInf at the JSON boundary only:
// encoding/json errors on a non-finite float, so ratios like LCR that carry
// a literal "infinite coverage" meaning (zero net outflows) need a finite
// stand-in to round-trip. Internal comparisons always use PosInf, never
// this constant.
const infSentinel = 1e12

func finiteRatio(v float64) float64 {
	if math.IsInf(v, 1) {
		return infSentinel
	}
	return v
}

// MarshalJSON rounds currency fields to 2 decimals and substitutes
// infSentinel for any +Inf ratio, both only at the serialization boundary;
// every computation elsewhere in the engine keeps using the unrounded,
// possibly-infinite float64.
func (s RiskSnapshot) MarshalJSON() ([]byte, error) {
	type alias RiskSnapshot
	out := alias(s)

	if out.Market != nil {
		m := *out.Market
		m.DV01Total = RoundCurrency(m.DV01Total)
		m.VaR1d95 = RoundCurrency(m.VaR1d95)
		m.StressedVaR = RoundCurrency(m.StressedVaR)
		out.Market = &m
	}
	if out.Credit != nil {
		c := *out.Credit
		c.TotalExposure = RoundCurrency(c.TotalExposure)
		c.ExpectedLoss = RoundCurrency(c.ExpectedLoss)
		c.CVATotal = RoundCurrency(c.CVATotal)
		out.Credit = &c
	}
	if out.CCR != nil {
		c := *out.CCR
		c.PFECurrent = RoundCurrency(c.PFECurrent)
		c.PFEPeak = RoundCurrency(c.PFEPeak)
		c.EADTotal = RoundCurrency(c.EADTotal)
		out.CCR = &c
	}
	if out.Liquidity != nil {
		l := *out.Liquidity
		l.LCRRatio = finiteRatio(l.LCRRatio)
		l.FundingGapShortTerm = RoundCurrency(l.FundingGapShortTerm)
		l.LiquidationCost1d = RoundCurrency(l.LiquidationCost1d)
		l.LiquidationCost5d = RoundCurrency(l.LiquidationCost5d)
		out.Liquidity = &l
	}
	if out.Capital != nil {
		c := *out.Capital
		c.KNPR = RoundCurrency(c.KNPR)
		c.KAUM = RoundCurrency(c.KAUM)
		c.KCMH = RoundCurrency(c.KCMH)
		c.KCOH = RoundCurrency(c.KCOH)
		c.TotalKReq = RoundCurrency(c.TotalKReq)
		c.OwnFunds = RoundCurrency(c.OwnFunds)
		out.Capital = &c
	}
	if out.Stress != nil {
		stress := make([]StressResult, len(out.Stress))
		for i, r := range out.Stress {
			r.PnL = RoundCurrency(r.PnL)
			r.DeltaVaR = RoundCurrency(r.DeltaVaR)
			r.DeltaK = RoundCurrency(r.DeltaK)
			r.DeltaLCR = finiteRatio(r.DeltaLCR)
			contributors := make([]StressContributor, len(r.TopContributors))
			for j, c := range r.TopContributors {
				c.DeltaMV = RoundCurrency(c.DeltaMV)
				contributors[j] = c
			}
			r.TopContributors = contributors
			stress[i] = r
		}
		out.Stress = stress
	}

	return json.Marshal(out)
}

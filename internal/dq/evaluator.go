package dq

import (
	"github.com/aristath/riskengine/internal/domain"
	"github.com/aristath/riskengine/internal/marketdata"
)

// Input bundles everything the rule table needs beyond the market view
// itself. PrevClosePrices and Issuers are both optional (a nil/empty map
// simply skips the rules that need them).
type Input struct {
	View            *marketdata.View
	Positions       []domain.Position
	Issuers         map[string]domain.Issuer // issuer ID -> issuer, for DQ-30
	PrevClosePrices map[string]float64        // ISIN -> prior day's clean price, for DQ-01
	AsOfDate        string
	DetectedAt      int64
	NextID          func() string
}

// Evaluate applies the rule table and returns every issue found. It never
// returns an error: a market view that fails its own construction
// invariants is a MissingMarketData/InputValidation failure
// the caller surfaces before Evaluate is ever reached.
func Evaluate(in Input) []domain.DataQualityIssue {
	var issues []domain.DataQualityIssue
	snap := in.View.Raw()

	for isin, q := range snap.Prices {
		if q.CleanPrice <= 0 {
			issues = append(issues, in.issue(CodeZeroPrice, domain.DQError, domain.DQSourceMarket, isin))
		}
		if q.Bid > q.Ask {
			issues = append(issues, in.issue(CodeBidAboveAsk, domain.DQError, domain.DQSourceMarket, isin))
		}
		if q.Ask > 0 {
			mid := (q.Bid + q.Ask) / 2
			if mid > 0 {
				spreadBps := (q.Ask - q.Bid) / mid * 10000
				if spreadBps > wideSpreadBps {
					issues = append(issues, in.issue(CodeWideSpread, domain.DQWarning, domain.DQSourceMarket, isin))
				}
			}
		}
		if q.DaysSinceTrade > staleDaysThreshold {
			issues = append(issues, in.issue(CodeStalePrice, domain.DQWarning, domain.DQSourceMarket, isin))
		}
		if prev, ok := in.PrevClosePrices[isin]; ok && prev > 0 && q.CleanPrice > 0 {
			jump := (q.CleanPrice - prev) / prev
			if jump > priceJumpThreshold || jump < -priceJumpThreshold {
				issues = append(issues, in.issue(CodePriceJump, domain.DQError, domain.DQSourceMarket, isin))
			}
		}
	}

	for currency, curve := range curvesOf(snap) {
		if inverted(curve) {
			issues = append(issues, in.issue(CodeCurveInversion, domain.DQWarning, domain.DQSourceCurve, currency))
		}
	}

	for _, p := range in.Positions {
		if p.TradeDate.After(p.AsOfDate) {
			issues = append(issues, in.issue(CodeTradeAfterAsOf, domain.DQError, domain.DQSourcePosition, p.ISIN))
		}
		if !p.MaturityDate.After(p.AsOfDate) {
			issues = append(issues, in.issue(CodeMaturityAtOrBefore, domain.DQError, domain.DQSourcePosition, p.ISIN))
		}
		if p.Kind != domain.InstrumentBond {
			pair := p.Underlying
			if _, err := in.View.FxRate(pair); err != nil && pair != "" {
				issues = append(issues, in.issue(CodeMissingFX, domain.DQError, domain.DQSourcePosition, p.ISIN))
			}
		}
	}

	if in.Issuers != nil {
		for id, issuer := range in.Issuers {
			if issuer.Rating == "" {
				issues = append(issues, in.issue(CodeMissingRating, domain.DQWarning, domain.DQSourcePosition, id))
			}
		}
	}

	return issues
}

// inverted reports whether curve has any tenor pair whose rate decreases by
// more than the tolerated window as tenor increases; a rough inversion
// check. Genuine short-end inversions (e.g. 1m > 3m during a hiking cycle)
// are common and tolerated within that window.
func inverted(c marketdata.YieldCurve) bool {
	for i := 1; i < len(c.Points); i++ {
		if c.Points[i].ZeroRate < c.Points[i-1].ZeroRate-curveInversionTol {
			return true
		}
	}
	return false
}

func curvesOf(snap *marketdata.Snapshot) map[string]marketdata.YieldCurve {
	return snap.Curves
}

func (in Input) issue(code string, sev domain.DQSeverity, src domain.DQSource, ref string) domain.DataQualityIssue {
	id := ""
	if in.NextID != nil {
		id = in.NextID()
	}
	return domain.DataQualityIssue{
		ID:         id,
		Code:       code,
		Severity:   sev,
		Source:     src,
		Reference:  ref,
		DetectedAt: in.DetectedAt,
	}
}

// HasBlockingError reports whether any Error-severity issue references
// ref, meaning the pricer for that position must return Unpriced
//.
func HasBlockingError(issues []domain.DataQualityIssue, ref string) bool {
	for _, iss := range issues {
		if iss.Severity == domain.DQError && iss.Reference == ref {
			return true
		}
	}
	return false
}

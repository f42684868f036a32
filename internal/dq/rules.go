// Package dq implements C2, the Data Quality Evaluator: a rule table
// applied to a market-data view and a position list that emits zero or
// more issues. It never raises; callers decide what an Error-severity issue
// means for downstream pricing.
package dq

// Rule codes (representative, not exhaustive).
const (
	CodePriceJump       = "DQ-01"
	CodeZeroPrice       = "DQ-02"
	CodeBidAboveAsk     = "DQ-03"
	CodeWideSpread      = "DQ-04"
	CodeStalePrice      = "DQ-05"
	CodeMissingFX       = "DQ-10"
	CodeCurveInversion  = "DQ-20"
	CodeMissingRating   = "DQ-30"
	CodeTradeAfterAsOf  = "DQ-40"
	CodeMaturityAtOrBefore = "DQ-41"
)

const (
	priceJumpThreshold   = 0.50   // >50% day-on-day
	wideSpreadBps        = 500.0  // bid-ask spread > 500bps
	staleDaysThreshold   = 5      // days_since_trade > 5
	curveInversionTol    = 0.0005 // tolerated inversion window, 5bps
)

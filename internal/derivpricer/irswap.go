package derivpricer

import (
	"github.com/aristath/riskengine/internal/domain"
	"github.com/aristath/riskengine/internal/marketdata"
)

// PriceIrSwap values a plain-vanilla fixed-for-floating interest rate swap
// under the single-curve convention: the floating leg's PV collapses to
// Notional*(1 - DF(T)), and the fixed leg is the fixed rate times the sum
// of annual discount factors out to maturity. pos.Strike is
// the fixed rate; pos.PayerOrReceiver selects which leg the portfolio
// receives.
func PriceIrSwap(pos domain.Position, view *marketdata.View, baseCurrency string) (Result, error) {
	curve, err := view.Curve(baseCurrency)
	if err != nil {
		return Result{}, err
	}

	maturityT := yearsBetween(pos.AsOfDate, pos.MaturityDate)
	value := irSwapValue(curve, pos.Strike, maturityT, pos.Notional, pos.PayerOrReceiver)
	dv01 := irSwapDV01(curve, pos.Strike, maturityT, pos.Notional, pos.PayerOrReceiver)

	return Result{Reference: pos.Reference, MarketValue: value, DV01: dv01}, nil
}

func irSwapValue(curve marketdata.YieldCurve, fixedRate, maturityT, notional float64, pr domain.PayerReceiver) float64 {
	floatLeg := notional * (1 - curve.DiscountFactor(maturityT))
	fixedLeg := notional * fixedRate * annualDFSum(curve, maturityT)

	// A receiver-fixed swap receives the fixed leg and pays float.
	value := fixedLeg - floatLeg
	if pr == domain.SwaptionPayer {
		value = floatLeg - fixedLeg
	}
	return value
}

// annualDFSum sums discount factors at each whole-year coupon date out to
// maturityT, matching the bond pricer's annual-period convention.
func annualDFSum(curve marketdata.YieldCurve, maturityT float64) float64 {
	sum := 0.0
	for t := 1.0; t <= maturityT+1e-9; t++ {
		sum += curve.DiscountFactor(t)
	}
	return sum
}

func irSwapDV01(curve marketdata.YieldCurve, fixedRate, maturityT, notional float64, pr domain.PayerReceiver) float64 {
	up := curve.Shift(1)
	down := curve.Shift(-1)
	vUp := irSwapValue(up, fixedRate, maturityT, notional, pr)
	vDown := irSwapValue(down, fixedRate, maturityT, notional, pr)
	return (vUp - vDown) / 2
}

package bondpricer

import (
	"github.com/aristath/riskengine/internal/domain"
)

// Cashflow is one scheduled payment, t years from as_of_date.
type Cashflow struct {
	T     float64
	Amount float64
}

// Schedule builds the coupon + redemption cashflow schedule for pos
// measured in years from pos.AsOfDate, using CouponFreq payments per year
// back-dated from MaturityDate.
func Schedule(pos domain.Position) []Cashflow {
	if pos.CouponFreq <= 0 {
		t := YearFraction(pos.AsOfDate, pos.MaturityDate, pos.DayCount)
		return []Cashflow{{T: t, Amount: pos.Notional}}
	}

	couponAmount := pos.Notional * pos.CouponRate / float64(pos.CouponFreq)
	maturityT := YearFraction(pos.AsOfDate, pos.MaturityDate, pos.DayCount)

	var flows []Cashflow
	periodLen := 1.0 / float64(pos.CouponFreq)
	// Walk backward from maturity in even coupon periods until we pass
	// as_of_date, then reverse into chronological order.
	for t := maturityT; t > 1e-9; t -= periodLen {
		flows = append(flows, Cashflow{T: t, Amount: couponAmount})
	}
	for i, j := 0, len(flows)-1; i < j; i, j = i+1, j-1 {
		flows[i], flows[j] = flows[j], flows[i]
	}
	if len(flows) > 0 {
		flows[len(flows)-1].Amount += pos.Notional
	} else {
		flows = append(flows, Cashflow{T: maturityT, Amount: pos.Notional})
	}
	return flows
}

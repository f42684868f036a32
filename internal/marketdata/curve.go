// Package marketdata implements C1, the Market Data View: immutable,
// validated access to prices, yield curves, vol surfaces, FX rates and CDS
// spreads for a single as_of_date.
package marketdata

import (
	"errors"
	"math"
	"sort"

	"github.com/aristath/riskengine/internal/domain"
)

// CurvePoint is one (tenor, zero rate) pair.
type CurvePoint struct {
	TenorYears float64
	ZeroRate   float64
}

// YieldCurve is an ordered sequence of tenor/zero-rate pairs with tenors
// strictly increasing. Interpolation is linear in zero rate.
type YieldCurve struct {
	Currency string
	Points   []CurvePoint
}

// NewYieldCurve validates and constructs a curve. Points need not be
// pre-sorted; NewYieldCurve sorts by tenor and rejects duplicate or
// non-increasing tenors (the same invariant, enforced once at construction
// rather than on every lookup).
func NewYieldCurve(currency string, points []CurvePoint) (YieldCurve, error) {
	sorted := append([]CurvePoint(nil), points...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TenorYears < sorted[j].TenorYears })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].TenorYears <= sorted[i-1].TenorYears {
			return YieldCurve{}, domain.NewError(domain.ErrInputValidation, currency, errCurveTenors)
		}
	}
	return YieldCurve{Currency: currency, Points: sorted}, nil
}

// ZeroRate returns the interpolated zero rate at tenor t (years), linear in
// zero rate, flat-extrapolated beyond the curve's ends.
func (c YieldCurve) ZeroRate(t float64) float64 {
	n := len(c.Points)
	if n == 0 {
		return 0
	}
	if t <= c.Points[0].TenorYears {
		return c.Points[0].ZeroRate
	}
	if t >= c.Points[n-1].TenorYears {
		return c.Points[n-1].ZeroRate
	}
	i := sort.Search(n, func(i int) bool { return c.Points[i].TenorYears >= t })
	lo, hi := c.Points[i-1], c.Points[i]
	frac := (t - lo.TenorYears) / (hi.TenorYears - lo.TenorYears)
	return lo.ZeroRate + frac*(hi.ZeroRate-lo.ZeroRate)
}

// DiscountFactor returns exp(-r(t)*t), continuous-compounding discounting
// used by the derivative pricers.
func (c YieldCurve) DiscountFactor(t float64) float64 {
	r := c.ZeroRate(t)
	return discountFactor(r, t)
}

// Shift returns a new curve with every zero rate moved by deltaBps basis
// points, used by the DV01 numeric shift and the stress engine.
func (c YieldCurve) Shift(deltaBps float64) YieldCurve {
	shifted := make([]CurvePoint, len(c.Points))
	for i, p := range c.Points {
		shifted[i] = CurvePoint{TenorYears: p.TenorYears, ZeroRate: p.ZeroRate + deltaBps/10000}
	}
	return YieldCurve{Currency: c.Currency, Points: shifted}
}

func discountFactor(r, t float64) float64 {
	// exp(-r*t), kept as a named helper so C4's swap/cap pricers and C1's
	// curve share one definition.
	return math.Exp(-r * t)
}

var errCurveTenors = errors.New("yield curve tenors must be strictly increasing")

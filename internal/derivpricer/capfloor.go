package derivpricer

import (
	"github.com/aristath/riskengine/internal/domain"
	"github.com/aristath/riskengine/internal/marketdata"
)

// PriceCapFloor values an interest rate cap or floor as a strip of annual
// caplets/floorlets priced with Black-76 on the forward rate implied by
// consecutive discount factors. pos.OptionType selects cap
// (Call) vs floor (Put); pos.Strike is the common strike rate across all
// caplets.
func PriceCapFloor(pos domain.Position, view *marketdata.View, baseCurrency string) (Result, error) {
	curve, err := view.Curve(baseCurrency)
	if err != nil {
		return Result{}, err
	}
	surface, err := view.VolSurface(pos.Underlying)
	if err != nil {
		return Result{}, err
	}

	maturityT := yearsBetween(pos.AsOfDate, pos.MaturityDate)
	isCall := pos.OptionType == domain.OptionCall

	value := capFloorValue(curve, surface, pos.Strike, maturityT, pos.Notional, isCall)
	dv01 := capFloorDV01(curve, surface, pos.Strike, maturityT, pos.Notional, isCall)
	delta, gamma, vega, theta := capFloorGreeks(curve, surface, pos.Strike, maturityT, pos.Notional, isCall)

	return Result{
		Reference:   pos.Reference,
		MarketValue: value,
		DV01:        dv01,
		Delta:       delta,
		Gamma:       gamma,
		Vega:        vega,
		Theta:       theta,
	}, nil
}

func capFloorValue(curve marketdata.YieldCurve, surface marketdata.VolSurface, strike, maturityT, notional float64, isCall bool) float64 {
	total := 0.0
	for t := 1.0; t <= maturityT+1e-9; t++ {
		dfStart := curve.DiscountFactor(t - 1)
		dfEnd := curve.DiscountFactor(t)
		if dfEnd <= 0 {
			continue
		}
		forward := (dfStart/dfEnd - 1) // annual accrual of 1 year
		vol := surface.Vol(t, strike)
		caplet := blackScholesForward(forward, strike, vol, t-1, dfEnd, isCall)
		total += caplet
	}
	return notional * total
}

func capFloorDV01(curve marketdata.YieldCurve, surface marketdata.VolSurface, strike, maturityT, notional float64, isCall bool) float64 {
	up := curve.Shift(1)
	down := curve.Shift(-1)
	vUp := capFloorValue(up, surface, strike, maturityT, notional, isCall)
	vDown := capFloorValue(down, surface, strike, maturityT, notional, isCall)
	return (vUp - vDown) / 2
}

// capFloorGreeks sums each caplet/floorlet's Black-76 Greeks, scaled by
// notional, the same per-period structure capFloorValue uses for price.
func capFloorGreeks(curve marketdata.YieldCurve, surface marketdata.VolSurface, strike, maturityT, notional float64, isCall bool) (delta, gamma, vega, theta float64) {
	for t := 1.0; t <= maturityT+1e-9; t++ {
		dfStart := curve.DiscountFactor(t - 1)
		dfEnd := curve.DiscountFactor(t)
		if dfEnd <= 0 {
			continue
		}
		forward := dfStart/dfEnd - 1
		vol := surface.Vol(t, strike)
		d, g, v, th := blackScholesGreeks(forward, strike, vol, t-1, dfEnd, isCall)
		delta += d
		gamma += g
		vega += v
		theta += th
	}
	delta *= notional
	gamma *= notional
	vega *= notional
	theta *= notional
	return delta, gamma, vega, theta
}

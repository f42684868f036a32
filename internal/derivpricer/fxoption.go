package derivpricer

import (
	"github.com/aristath/riskengine/internal/domain"
	"github.com/aristath/riskengine/internal/marketdata"
)

// PriceFxOption values a European FX option with Black-Scholes on the FX
// forward: the forward is spot grown at the base currency curve's zero rate
// (no foreign-rate leg is applied), vol read off the underlying's surface
// at (tenor, strike).
func PriceFxOption(pos domain.Position, view *marketdata.View, baseCurrency string) (Result, error) {
	spot, err := view.FxRate(pos.Underlying)
	if err != nil {
		return Result{}, err
	}
	curve, err := view.Curve(baseCurrency)
	if err != nil {
		return Result{}, err
	}
	surface, err := view.VolSurface(pos.Underlying)
	if err != nil {
		return Result{}, err
	}

	t := yearsBetween(pos.AsOfDate, pos.MaturityDate)
	isCall := pos.OptionType == domain.OptionCall

	value := fxOptionValue(spot, pos.Strike, curve, surface, t, pos.Notional, pos.Direction, isCall)
	dv01 := fxOptionDV01(spot, pos.Strike, curve, surface, t, pos.Notional, pos.Direction, isCall)
	delta, gamma, vega, theta := fxOptionGreeks(spot, pos.Strike, curve, surface, t, pos.Notional, pos.Direction, isCall)

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

func fxOptionValue(spot, strike float64, curve marketdata.YieldCurve, surface marketdata.VolSurface, t, notional float64, dir domain.Direction, isCall bool) float64 {
	r := curve.ZeroRate(t)
	forward := spot * discountAt(-r, t) // forward grows spot at the curve's implied domestic rate
	vol := surface.Vol(t, strike)
	df := discountAt(r, t)
	premium := blackScholesForward(forward, strike, vol, t, df, isCall)
	return signed(notional*premium, dir)
}

func fxOptionDV01(spot, strike float64, curve marketdata.YieldCurve, surface marketdata.VolSurface, t, notional float64, dir domain.Direction, isCall bool) float64 {
	up := curve.Shift(1)
	down := curve.Shift(-1)
	vUp := fxOptionValue(spot, strike, up, surface, t, notional, dir, isCall)
	vDown := fxOptionValue(spot, strike, down, surface, t, notional, dir, isCall)
	return (vUp - vDown) / 2
}

// fxOptionGreeks scales the per-unit Black-76 Greeks by the position's
// notional and sign convention, matching fxOptionValue's premium scaling.
func fxOptionGreeks(spot, strike float64, curve marketdata.YieldCurve, surface marketdata.VolSurface, t, notional float64, dir domain.Direction, isCall bool) (delta, gamma, vega, theta float64) {
	r := curve.ZeroRate(t)
	forward := spot * discountAt(-r, t)
	vol := surface.Vol(t, strike)
	df := discountAt(r, t)
	d, g, v, th := blackScholesGreeks(forward, strike, vol, t, df, isCall)
	return signed(notional*d, dir), signed(notional*g, dir), signed(notional*v, dir), signed(notional*th, dir)
}

package derivpricer

import (
	"github.com/aristath/riskengine/internal/domain"
	"github.com/aristath/riskengine/internal/marketdata"
)

// PriceSwaption values a European swaption with Black-76 on the forward
// swap rate. The forward swap rate is the par rate implied
// by the curve over the underlying swap's tenor; pos.Strike is the
// swaption's fixed strike, pos.PayerOrReceiver selects a payer (Call on the
// swap rate) or receiver (Put) swaption, and pos.MaturityDate is the option
// expiry (the swap's own tenor is carried in the annuity sum out to the
// same date for simplicity, i.e. a co-terminal assumption).
func PriceSwaption(pos domain.Position, view *marketdata.View, baseCurrency string) (Result, error) {
	curve, err := view.Curve(baseCurrency)
	if err != nil {
		return Result{}, err
	}
	surface, err := view.VolSurface(pos.Underlying)
	if err != nil {
		return Result{}, err
	}

	expiryT := yearsBetween(pos.AsOfDate, pos.MaturityDate)
	isCall := pos.PayerOrReceiver == domain.SwaptionPayer

	value := swaptionValue(curve, surface, pos.Strike, expiryT, pos.Notional, isCall)
	dv01 := swaptionDV01(curve, surface, pos.Strike, expiryT, pos.Notional, isCall)
	delta, gamma, vega, theta := swaptionGreeks(curve, surface, pos.Strike, expiryT, pos.Notional, isCall)

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

func swaptionValue(curve marketdata.YieldCurve, surface marketdata.VolSurface, strike, expiryT, notional float64, isCall bool) float64 {
	annuity := annualDFSum(curve, expiryT)
	if annuity <= 0 {
		return 0
	}
	forwardSwapRate := (1 - curve.DiscountFactor(expiryT)) / annuity
	vol := surface.Vol(expiryT, strike)
	premium := blackScholesForward(forwardSwapRate, strike, vol, expiryT, 1, isCall)
	return notional * annuity * premium
}

func swaptionDV01(curve marketdata.YieldCurve, surface marketdata.VolSurface, strike, expiryT, notional float64, isCall bool) float64 {
	up := curve.Shift(1)
	down := curve.Shift(-1)
	vUp := swaptionValue(up, surface, strike, expiryT, notional, isCall)
	vDown := swaptionValue(down, surface, strike, expiryT, notional, isCall)
	return (vUp - vDown) / 2
}

// swaptionGreeks scales the forward-swap-rate Black-76 Greeks by the
// annuity and notional, the same scaling swaptionValue applies to price.
func swaptionGreeks(curve marketdata.YieldCurve, surface marketdata.VolSurface, strike, expiryT, notional float64, isCall bool) (delta, gamma, vega, theta float64) {
	annuity := annualDFSum(curve, expiryT)
	if annuity <= 0 {
		return 0, 0, 0, 0
	}
	forwardSwapRate := (1 - curve.DiscountFactor(expiryT)) / annuity
	vol := surface.Vol(expiryT, strike)
	d, g, v, th := blackScholesGreeks(forwardSwapRate, strike, vol, expiryT, 1, isCall)
	scale := notional * annuity
	return scale * d, scale * g, scale * v, scale * th
}

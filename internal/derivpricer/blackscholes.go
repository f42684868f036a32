// Package derivpricer implements C4: FX forwards, FX options (Black-Scholes
// on forward), interest-rate swaps, caps/floors, and swaptions
// (Black-76), plus each instrument's DV01 by numeric +/-1bp curve shift.
package derivpricer

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// blackScholesForward prices a European option on a forward/futures price F
// with strike K, annualized vol sigma, time to expiry t (years), and
// discount factor df, using the standard Black-76 formula shared by FX
// options, caps/floors and swaptions.
func blackScholesForward(forward, strike, vol, t, df float64, isCall bool) float64 {
	if t <= 0 || vol <= 0 {
		return df * intrinsic(forward, strike, isCall)
	}
	d1 := (math.Log(forward/strike) + 0.5*vol*vol*t) / (vol * math.Sqrt(t))
	d2 := d1 - vol*math.Sqrt(t)
	if isCall {
		return df * (forward*stdNormal.CDF(d1) - strike*stdNormal.CDF(d2))
	}
	return df * (strike*stdNormal.CDF(-d2) - forward*stdNormal.CDF(-d1))
}

func intrinsic(forward, strike float64, isCall bool) float64 {
	if isCall {
		return math.Max(forward-strike, 0)
	}
	return math.Max(strike-forward, 0)
}

// oneCalendarDay is the time-decay step blackScholesGreeks uses for theta,
// expressed in the same year fraction as t.
const oneCalendarDay = 1.0 / 365.0

// blackScholesGreeks returns the forward-measure delta, gamma and vega for
// the same option blackScholesForward prices, plus a finite-difference
// theta (value change over one calendar day, holding forward and vol
// fixed), matching the numeric +/-1bp shift convention the DV01
// calculations in this package already use.
func blackScholesGreeks(forward, strike, vol, t, df float64, isCall bool) (delta, gamma, vega, theta float64) {
	if t <= 0 || vol <= 0 {
		return 0, 0, 0, 0
	}
	sqrtT := math.Sqrt(t)
	d1 := (math.Log(forward/strike) + 0.5*vol*vol*t) / (vol * sqrtT)
	phi := math.Exp(-0.5*d1*d1) / math.Sqrt(2*math.Pi)

	if isCall {
		delta = df * stdNormal.CDF(d1)
	} else {
		delta = df * (stdNormal.CDF(d1) - 1)
	}
	gamma = df * phi / (forward * vol * sqrtT)
	vega = df * forward * phi * sqrtT

	if t > oneCalendarDay {
		priceNow := blackScholesForward(forward, strike, vol, t, df, isCall)
		priceNextDay := blackScholesForward(forward, strike, vol, t-oneCalendarDay, df, isCall)
		theta = priceNextDay - priceNow
	}
	return delta, gamma, vega, theta
}

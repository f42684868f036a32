package derivpricer

import (
	"fmt"
	"math"
	"time"

	"github.com/aristath/riskengine/internal/domain"
	"github.com/aristath/riskengine/internal/marketdata"
)

// Result is the common output shape for every C4 instrument: a market
// value and a DV01 computed by numeric +/-1bp shift of the relevant curve,
// plus the option Greeks for instruments with optionality (forwards and
// swaps leave Delta/Gamma/Vega/Theta at zero; they have no optionality to
// report).
type Result struct {
	Reference   string
	MarketValue float64
	DV01        float64
	Delta       float64
	Gamma       float64
	Vega        float64
	Theta       float64
}

// PriceFxForward values an FX forward as notional * (marketForward - strike)
// discounted at the base currency's curve to expiry, sign-flipped for a
// short position. pos.Underlying is the currency pair (e.g. "EURUSD");
// pos.Strike is the contracted forward rate.
func PriceFxForward(pos domain.Position, view *marketdata.View, baseCurrency string) (Result, error) {
	spot, err := view.FxRate(pos.Underlying)
	if err != nil {
		return Result{}, err
	}
	curve, err := view.Curve(baseCurrency)
	if err != nil {
		return Result{}, err
	}
	t := yearsBetween(pos.AsOfDate, pos.MaturityDate)
	if t < 0 {
		return Result{}, domain.NewError(domain.ErrInputValidation, pos.Reference, fmt.Errorf("maturity before as_of_date"))
	}

	value := fxForwardValue(spot, pos.Strike, curve.ZeroRate(t), t, pos.Notional, pos.Direction)
	dv01 := fxForwardDV01(spot, pos.Strike, curve, t, pos.Notional, pos.Direction)

	return Result{Reference: pos.Reference, MarketValue: value, DV01: dv01}, nil
}

func fxForwardValue(spot, strike, zeroRate, t, notional float64, dir domain.Direction) float64 {
	df := discountAt(zeroRate, t)
	forward := spot * discountAt(-zeroRate, t)
	value := notional * (forward - strike) * df
	return signed(value, dir)
}

// fxForwardDV01 numerically shifts the discount curve +/-1bp and takes the
// average sensitivity, the usual finite-difference convention for
// instruments without a closed-form DV01.
func fxForwardDV01(spot, strike float64, curve marketdata.YieldCurve, t, notional float64, dir domain.Direction) float64 {
	up := curve.Shift(1)
	down := curve.Shift(-1)
	vUp := fxForwardValue(spot, strike, up.ZeroRate(t), t, notional, dir)
	vDown := fxForwardValue(spot, strike, down.ZeroRate(t), t, notional, dir)
	return (vUp - vDown) / 2
}

func signed(v float64, dir domain.Direction) float64 {
	if dir == domain.DirectionShort {
		return -v
	}
	return v
}

func discountAt(r, t float64) float64 {
	return math.Exp(-r * t)
}

func yearsBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24 / 365.0
}

package bondpricer

import (
	"fmt"
	"math"

	"github.com/aristath/riskengine/internal/domain"
)

// Result holds everything C3 computes for one bond position.
type Result struct {
	ISIN           string
	CleanPrice     float64
	DirtyPrice     float64
	YTM            float64
	MacaulayDur    float64
	ModifiedDur    float64
	DV01           float64
	Convexity      float64
	MarketValue    float64
}

// Config carries the YTM solver's tuning knobs.
type Config struct {
	YTMTolerance float64
	YTMMaxIter   int
}

// DefaultConfig returns the YTM solver's default tolerances.
func DefaultConfig() Config {
	return Config{YTMTolerance: 1e-10, YTMMaxIter: 50}
}

// PriceAtYield returns the dirty price Sum(CF_i * (1+y)^-t_i) for annual
// compounding.
func PriceAtYield(flows []Cashflow, y float64) float64 {
	price := 0.0
	for _, cf := range flows {
		price += cf.Amount * math.Pow(1+y, -cf.T)
	}
	return price
}

// Price computes the full bond result given the position, its cashflow
// schedule, and the dirty market price to solve YTM against. The schedule's
// cashflows carry the position's notional, so DV01 is for the whole
// position.
func Price(pos domain.Position, dirtyMarketPrice float64, cfg Config) (Result, error) {
	flows := Schedule(pos)
	if len(flows) == 0 {
		return Result{}, domain.NewError(domain.ErrInputValidation, pos.ISIN, fmt.Errorf("empty cashflow schedule"))
	}

	y, err := solveYTM(flows, dirtyMarketPrice, cfg)
	if err != nil {
		return Result{}, err
	}

	price := PriceAtYield(flows, y)
	macaulay := macaulayDuration(flows, y, price)
	modified := macaulay / (1 + y)
	dv01 := modified * price * 1e-4
	convexity := convexityOf(flows, y, price)

	if math.IsNaN(price) || math.IsInf(price, 0) || math.IsNaN(dv01) {
		return Result{}, domain.NewError(domain.ErrNumericInstability, pos.ISIN, fmt.Errorf("non-finite pricing output"))
	}

	return Result{
		ISIN:        pos.ISIN,
		CleanPrice:  cleanFromDirty(pos, price),
		DirtyPrice:  price,
		YTM:         y,
		MacaulayDur: macaulay,
		ModifiedDur: modified,
		DV01:        dv01,
		Convexity:   convexity,
		MarketValue: price,
	}, nil
}

// cleanFromDirty strips simple linear accrued interest for a reasonable
// clean-price display value. Pricing, duration and DV01 all operate on the
// dirty price; clean price is informational only.
func cleanFromDirty(pos domain.Position, dirty float64) float64 {
	if pos.CouponFreq <= 0 {
		return dirty
	}
	periodLen := 1.0 / float64(pos.CouponFreq)
	flows := Schedule(pos)
	if len(flows) == 0 {
		return dirty
	}
	nextCouponT := flows[0].T
	accruedFrac := 1 - nextCouponT/periodLen
	if accruedFrac < 0 {
		accruedFrac = 0
	}
	accrued := pos.Notional * pos.CouponRate / float64(pos.CouponFreq) * accruedFrac
	return dirty - accrued
}

// solveYTM brackets in [-0.5, 1.0] with bisection, then Newton-refines to
// cfg.YTMTolerance, capped at cfg.YTMMaxIter total iterations. Bisection
// guarantees a bracket before Newton ever runs, so Newton divergence near a
// near-zero derivative can't escape [-0.5, 1.0].
func solveYTM(flows []Cashflow, target float64, cfg Config) (float64, error) {
	lo, hi := -0.5, 1.0
	fLo := PriceAtYield(flows, lo) - target
	fHi := PriceAtYield(flows, hi) - target
	if fLo == 0 {
		return lo, nil
	}
	if fHi == 0 {
		return hi, nil
	}
	if sameSign(fLo, fHi) {
		return 0, domain.NewError(domain.ErrYtmNotConverged, "", fmt.Errorf("price %.6f not bracketed in [-0.5, 1.0]", target))
	}

	y := (lo + hi) / 2
	iter := 0
	for ; iter < cfg.YTMMaxIter; iter++ {
		fMid := PriceAtYield(flows, y) - target
		if sameSign(fMid, fLo) {
			lo, fLo = y, fMid
		} else {
			hi, fHi = y, fMid
		}
		y = (lo + hi) / 2
		if hi-lo < 1e-6 {
			break
		}
	}

	// Newton refine using the analytic derivative dPrice/dy.
	for ; iter < cfg.YTMMaxIter; iter++ {
		price := PriceAtYield(flows, y)
		deriv := priceDerivative(flows, y)
		if deriv == 0 {
			break
		}
		next := y - (price-target)/deriv
		if math.Abs(next-y) < cfg.YTMTolerance {
			return next, nil
		}
		y = next
	}

	if math.Abs(PriceAtYield(flows, y)-target) > 1e-4 {
		return 0, domain.NewError(domain.ErrYtmNotConverged, "", fmt.Errorf("did not converge within %d iterations", cfg.YTMMaxIter))
	}
	return y, nil
}

func sameSign(a, b float64) bool { return (a >= 0) == (b >= 0) }

func priceDerivative(flows []Cashflow, y float64) float64 {
	d := 0.0
	for _, cf := range flows {
		d += -cf.T * cf.Amount * math.Pow(1+y, -cf.T-1)
	}
	return d
}

func macaulayDuration(flows []Cashflow, y, price float64) float64 {
	if price == 0 {
		return 0
	}
	sum := 0.0
	for _, cf := range flows {
		sum += cf.T * cf.Amount * math.Pow(1+y, -cf.T)
	}
	return sum / price
}

func convexityOf(flows []Cashflow, y, price float64) float64 {
	if price == 0 {
		return 0
	}
	sum := 0.0
	for _, cf := range flows {
		sum += cf.T * (cf.T + 1) * cf.Amount * math.Pow(1+y, -(cf.T+2))
	}
	return sum / price
}

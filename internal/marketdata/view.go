package marketdata

import (
	"fmt"

	"github.com/aristath/riskengine/internal/domain"
)

// View is the validated, immutable read interface over a Snapshot (C1).
// It is the only thing component packages (C3-C9) consult for market data;
// they never touch a Snapshot directly. Two views built from equal
// Snapshots compare equal by ContentHash.
type View struct {
	snapshot *Snapshot
	hash     string
}

// Build validates snapshot against the positions it must cover and returns
// an immutable View, or a MissingMarketData/InputValidation error.
// Validation rules: every ISIN referenced by a bond position
// must resolve, bid <= ask, FX rates strictly positive, curves monotonic
// (already enforced by NewYieldCurve at construction).
func Build(snapshot *Snapshot, positions []domain.Position) (*View, error) {
	for _, p := range positions {
		if p.Kind == domain.InstrumentBond {
			q, ok := snapshot.Prices[p.ISIN]
			if !ok {
				return nil, domain.NewError(domain.ErrMissingMarketData, p.ISIN, fmt.Errorf("no price quote for ISIN"))
			}
			if q.Bid > q.Ask {
				return nil, domain.NewError(domain.ErrInputValidation, p.ISIN, fmt.Errorf("bid %.6f > ask %.6f", q.Bid, q.Ask))
			}
		}
	}
	for pair, rate := range snapshot.FxRates {
		if rate <= 0 {
			return nil, domain.NewError(domain.ErrInputValidation, pair, fmt.Errorf("FX rate must be strictly positive, got %.6f", rate))
		}
	}
	return &View{snapshot: snapshot, hash: snapshot.ContentHash()}, nil
}

// ID returns the market_data_snapshot_id (content hash).
func (v *View) ID() string { return v.hash }

// AsOfDate returns the snapshot's as_of_date.
func (v *View) AsOfDate() string { return v.snapshot.AsOfDate }

// Price looks up a bond's quote. Returns MissingMarketData if absent.
func (v *View) Price(isin string) (PriceQuote, error) {
	q, ok := v.snapshot.Prices[isin]
	if !ok {
		return PriceQuote{}, domain.NewError(domain.ErrMissingMarketData, isin, fmt.Errorf("no price quote"))
	}
	return q, nil
}

// Curve looks up a currency's zero curve.
func (v *View) Curve(currency string) (YieldCurve, error) {
	c, ok := v.snapshot.Curves[currency]
	if !ok {
		return YieldCurve{}, domain.NewError(domain.ErrMissingMarketData, currency, fmt.Errorf("no zero curve"))
	}
	return c, nil
}

// VolSurface looks up an underlying's vol surface.
func (v *View) VolSurface(underlying string) (VolSurface, error) {
	s, ok := v.snapshot.VolSurfaces[underlying]
	if !ok {
		return VolSurface{}, domain.NewError(domain.ErrMissingMarketData, underlying, fmt.Errorf("no vol surface"))
	}
	return s, nil
}

// FxRate looks up a currency pair's spot rate (units of quote per 1 base).
func (v *View) FxRate(pair string) (float64, error) {
	r, ok := v.snapshot.FxRates[pair]
	if !ok {
		return 0, domain.NewError(domain.ErrMissingMarketData, pair, fmt.Errorf("no FX rate"))
	}
	return r, nil
}

// CDSSpread looks up an issuer's CDS spread in bps; ok is false if absent
// (callers fall back to the rating-table hazard approximation rather than
// treating this as an error).
func (v *View) CDSSpread(issuerID string) (spreadBps float64, ok bool) {
	s, ok := v.snapshot.CDSSpreads[issuerID]
	return s, ok
}

// WithShockedCurves returns a new View whose curves are replaced (used by
// the stress engine, C10, to build a shocked market view without mutating
// the original snapshot). All other market data is shared by reference
// since Snapshot/View are immutable once built.
func (v *View) WithShockedCurves(curves map[string]YieldCurve) *View {
	shocked := *v.snapshot
	shocked.Curves = curves
	return &View{snapshot: &shocked, hash: shocked.ContentHash()}
}

// WithShockedFx returns a new View with FX rates replaced.
func (v *View) WithShockedFx(rates map[string]float64) *View {
	shocked := *v.snapshot
	shocked.FxRates = rates
	return &View{snapshot: &shocked, hash: shocked.ContentHash()}
}

// WithShockedSpreads returns a new View with per-ISIN spread bumps applied
// additively to the stored spread_bps (used for credit-spread stress).
func (v *View) WithShockedSpreads(bumpBps map[string]float64) *View {
	shocked := *v.snapshot
	newPrices := make(map[string]PriceQuote, len(shocked.Prices))
	for isin, q := range shocked.Prices {
		if bump, ok := bumpBps[isin]; ok {
			q.SpreadBps += bump
		}
		newPrices[isin] = q
	}
	shocked.Prices = newPrices
	return &View{snapshot: &shocked, hash: shocked.ContentHash()}
}

// WithShockedVols returns a new View with every surface's vols multiplied
// by mult (vol-regime / stress scenario shocks).
func (v *View) WithShockedVols(mult float64) *View {
	shocked := *v.snapshot
	newSurfaces := make(map[string]VolSurface, len(shocked.VolSurfaces))
	for u, s := range shocked.VolSurfaces {
		scaledPoints := make([]VolPoint, 0)
		for k, vol := range s.grid {
			scaledPoints = append(scaledPoints, VolPoint{TenorYears: k[0], Strike: k[1], Vol: vol * mult})
		}
		newSurfaces[u] = NewVolSurface(s.Underlying, s.Forward, scaledPoints)
	}
	shocked.VolSurfaces = newSurfaces
	return &View{snapshot: &shocked, hash: shocked.ContentHash()}
}

// WithShockedBidAsk returns a new View whose bid/ask spreads are widened by
// mult around the mid (liquidity stress, C10).
func (v *View) WithShockedBidAsk(mult float64) *View {
	shocked := *v.snapshot
	newPrices := make(map[string]PriceQuote, len(shocked.Prices))
	for isin, q := range shocked.Prices {
		mid := (q.Bid + q.Ask) / 2
		halfSpread := (q.Ask - q.Bid) / 2 * mult
		q.Bid = mid - halfSpread
		q.Ask = mid + halfSpread
		newPrices[isin] = q
	}
	shocked.Prices = newPrices
	return &View{snapshot: &shocked, hash: shocked.ContentHash()}
}

// Raw exposes the underlying snapshot for components that need bulk
// iteration (the DQ evaluator, C2). Returned value must be treated as
// read-only.
func (v *View) Raw() *Snapshot { return v.snapshot }

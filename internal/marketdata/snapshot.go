package marketdata

// PriceQuote is one ISIN's price-side market data for as_of_date.
type PriceQuote struct {
	CleanPrice     float64
	Yield          float64
	SpreadBps      float64
	Bid            float64
	Ask            float64
	Volume         float64
	DaysSinceTrade int
}

// Snapshot is the raw, unvalidated market-data bundle for one as_of_date.
// View wraps a Snapshot with validation and O(1)/interpolated lookups; the
// Snapshot itself is just storage.
type Snapshot struct {
	AsOfDate string

	// ISIN -> quote.
	Prices map[string]PriceQuote

	// currency -> curve.
	Curves map[string]YieldCurve

	// underlying -> surface.
	VolSurfaces map[string]VolSurface

	// "BASE/QUOTE" -> rate (units of QUOTE per 1 BASE).
	FxRates map[string]float64

	// issuer ID -> CDS spread, in bps.
	CDSSpreads map[string]float64
}

// NewSnapshot returns an empty, ready-to-populate snapshot for asOfDate.
func NewSnapshot(asOfDate string) *Snapshot {
	return &Snapshot{
		AsOfDate:    asOfDate,
		Prices:      map[string]PriceQuote{},
		Curves:      map[string]YieldCurve{},
		VolSurfaces: map[string]VolSurface{},
		FxRates:     map[string]float64{},
		CDSSpreads:  map[string]float64{},
	}
}

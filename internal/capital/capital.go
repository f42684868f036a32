// Package capital implements C9: K-factor capital requirements (K-NPR,
// K-AUM, K-CMH, K-COH), required capital, own funds, and capital ratio
// under the IFR framework.
package capital

import "math"

// PMC is the Permanent Minimum Capital floor for a CIF Class 2 firm, in
// euros.
const PMC = 75_000.0

// irBucketWeights are the K-IR tenor-bucket weights.
var irBucketWeights = map[string]float64{
	"0-1Y":  0.007,
	"1-5Y":  0.012,
	"5-10Y": 0.016,
	">10Y":  0.020,
}

// NetBucketExposure is one tenor bucket's net interest rate exposure for
// K-IR.
type NetBucketExposure struct {
	Bucket       string
	NetExposure  float64
}

// KIR sums |net_bucket| * weight across tenor buckets.
func KIR(buckets []NetBucketExposure) float64 {
	total := 0.0
	for _, b := range buckets {
		w, ok := irBucketWeights[b.Bucket]
		if !ok {
			w = irBucketWeights[">10Y"]
		}
		total += math.Abs(b.NetExposure) * w
	}
	return total
}

// ratingWeights are the K-CREDNR rating-bucket weights.
var ratingWeights = map[string]float64{
	"AAA": 0.005, "AA": 0.005,
	"A":   0.010,
	"BBB": 0.020,
	"BB":  0.040,
}

func credNrWeight(rating string) float64 {
	if w, ok := ratingWeights[rating]; ok {
		return w
	}
	return 0.08 // <= B
}

// RatedExposure is one position's market value and rating for K-CREDNR.
type RatedExposure struct {
	MarketValue float64
	Rating      string
}

// KCREDNR sums MV_i * w_rating across positions.
func KCREDNR(exposures []RatedExposure) float64 {
	total := 0.0
	for _, e := range exposures {
		total += e.MarketValue * credNrWeight(e.Rating)
	}
	return total
}

// CurrencyNetPosition is one non-base-currency's net FX position, signed
// (positive = net long).
type CurrencyNetPosition struct {
	Currency    string
	NetPosition float64
}

// KFX returns 0.08 * max(sum of net longs, |sum of net shorts|) over
// non-base currencies.
func KFX(positions []CurrencyNetPosition) float64 {
	var longs, shorts float64
	for _, p := range positions {
		if p.NetPosition > 0 {
			longs += p.NetPosition
		} else {
			shorts += p.NetPosition
		}
	}
	return 0.08 * math.Max(longs, math.Abs(shorts))
}

// KNPR is the sum of K-IR, K-CREDNR and K-FX, with components retained for
// reporting.
type KNPR struct {
	KIR     float64
	KCREDNR float64
	KFX     float64
}

// Total returns K-IR + K-CREDNR + K-FX.
func (k KNPR) Total() float64 { return k.KIR + k.KCREDNR + k.KFX }

// KAUM returns 0.0002 * trailing quarterly average AUM.
func KAUM(trailingQuarterlyAvgAUM float64) float64 {
	return 0.0002 * trailingQuarterlyAvgAUM
}

// KCMH returns the client-money-held capital charge: 0.004 of the average
// segregated balance, or 0.003 when the guaranteed scheme applies.
func KCMH(avgSegregatedFunds float64, guaranteed bool) float64 {
	if guaranteed {
		return 0.003 * avgSegregatedFunds
	}
	return 0.004 * avgSegregatedFunds
}

// KCOH returns the client-order-handling charge: a configured percentage
// of annualized client order volume. The percentage is an engine
// configuration input rather than a fixed
// constant.
func KCOH(annualizedOrderVolume, configuredPercentage float64) float64 {
	return configuredPercentage * annualizedOrderVolume
}

// Summary is C9's full capital block.
type Summary struct {
	KNPR          float64
	KAUM          float64
	KCMH          float64
	KCOH          float64
	TotalKReq     float64
	Required      float64
	Tier1         float64
	Tier2         float64
	OwnFunds      float64
	CapitalRatio  float64
}

// Evaluate assembles the full capital block: sum_K, Required = max(PMC,
// sum_K), OwnFunds = Tier1 + min(Tier2, 0.25*Tier1), CapitalRatio =
// OwnFunds / Required. CapitalRatio is a dimensionless fraction (1.00 =
// 100%), not a percentage.
func Evaluate(knpr, kaum, kcmh, kcoh, tier1, tier2 float64) Summary {
	sumK := knpr + kaum + kcmh + kcoh
	required := math.Max(PMC, sumK)
	ownFunds := tier1 + math.Min(tier2, 0.25*tier1)

	ratio := 0.0
	if required > 0 {
		ratio = ownFunds / required
	}

	return Summary{
		KNPR:         knpr,
		KAUM:         kaum,
		KCMH:         kcmh,
		KCOH:         kcoh,
		TotalKReq:    sumK,
		Required:     required,
		Tier1:        tier1,
		Tier2:        tier2,
		OwnFunds:     ownFunds,
		CapitalRatio: ratio,
	}
}

// Package creditrisk implements C6: issuer-level PD/LGD/EAD/Expected Loss
// from a portfolio's bond holdings.
package creditrisk

import (
	"github.com/aristath/riskengine/internal/domain"
)

// pdByRating is the tabulated rating -> probability of default map,
// monotonically increasing from AAA to D.
var pdByRating = map[string]float64{
	"AAA": 0.0002,
	"AA":  0.0005,
	"A":   0.0010,
	"BBB": 0.0030,
	"BB":  0.0120,
	"B":   0.0500,
	"CCC": 0.1500,
	"CC":  0.3000,
	"C":   0.5000,
	"D":   1.0000,
}

// lgdBySeniority is the loss-given-default table.
var lgdBySeniority = map[domain.Seniority]float64{
	domain.SeniorSecured:   0.25,
	domain.SeniorUnsecured: 0.40,
	domain.Subordinated:    0.60,
}

// PD returns the tabulated probability of default for rating, or the D
// (worst-case) PD for an unrecognized rating string.
func PD(rating string) float64 {
	if pd, ok := pdByRating[rating]; ok {
		return pd
	}
	return pdByRating["D"]
}

// LGD returns the loss-given-default for seniority.
func LGD(seniority domain.Seniority) float64 {
	if lgd, ok := lgdBySeniority[seniority]; ok {
		return lgd
	}
	return lgdBySeniority[domain.SeniorUnsecured]
}

// Exposure is one issuer's aggregated credit risk figures.
type Exposure struct {
	IssuerID      string
	EAD           float64
	PD            float64
	LGD           float64
	ExpectedLoss  float64
}

// BondMarketValue associates a priced bond with its issuer, for EAD
// aggregation. Issuer identity is carried separately from domain.Position
// because a position only names an ISIN; the issuer/ISIN mapping is
// reference data owned by the caller.
type BondMarketValue struct {
	ISIN        string
	IssuerID    string
	MarketValue float64
}

// Evaluate aggregates EAD = Sum(bond_MV) per issuer, looks up PD by rating
// and LGD by seniority, and computes Expected Loss = PD * LGD * EAD
//.
func Evaluate(bonds []BondMarketValue, issuers map[string]domain.Issuer) []Exposure {
	eadByIssuer := map[string]float64{}
	order := make([]string, 0)
	for _, b := range bonds {
		if _, seen := eadByIssuer[b.IssuerID]; !seen {
			order = append(order, b.IssuerID)
		}
		eadByIssuer[b.IssuerID] += b.MarketValue
	}

	results := make([]Exposure, 0, len(order))
	for _, issuerID := range order {
		ead := eadByIssuer[issuerID]
		issuer := issuers[issuerID]
		pd := PD(issuer.Rating)
		lgd := LGD(issuer.Seniority)
		results = append(results, Exposure{
			IssuerID:     issuerID,
			EAD:          ead,
			PD:           pd,
			LGD:          lgd,
			ExpectedLoss: pd * lgd * ead,
		})
	}
	return results
}

// TotalExpectedLoss sums Expected Loss across every issuer exposure, the
// portfolio-level figure the Credit block reports.
func TotalExpectedLoss(exposures []Exposure) float64 {
	total := 0.0
	for _, e := range exposures {
		total += e.ExpectedLoss
	}
	return total
}

// TotalEAD sums EAD across every issuer exposure.
func TotalEAD(exposures []Exposure) float64 {
	total := 0.0
	for _, e := range exposures {
		total += e.EAD
	}
	return total
}

package creditrisk

import (
	"testing"

	"github.com/aristath/riskengine/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPDTableIsMonotonic(t *testing.T) {
	order := []string{"AAA", "AA", "A", "BBB", "BB", "B", "CCC", "CC", "C", "D"}
	for i := 1; i < len(order); i++ {
		assert.Less(t, PD(order[i-1]), PD(order[i]), "%s should have lower PD than %s", order[i-1], order[i])
	}
}

func TestUnknownRatingFallsBackToD(t *testing.T) {
	assert.Equal(t, PD("D"), PD("NOT-A-RATING"))
}

func TestEvaluateAggregatesByIssuer(t *testing.T) {
	bonds := []BondMarketValue{
		{ISIN: "A1", IssuerID: "ISSUER-1", MarketValue: 600_000},
		{ISIN: "A2", IssuerID: "ISSUER-1", MarketValue: 400_000},
		{ISIN: "B1", IssuerID: "ISSUER-2", MarketValue: 200_000},
	}
	issuers := map[string]domain.Issuer{
		"ISSUER-1": {ID: "ISSUER-1", Rating: "BBB", Seniority: domain.SeniorUnsecured},
		"ISSUER-2": {ID: "ISSUER-2", Rating: "AAA", Seniority: domain.SeniorSecured},
	}

	exposures := Evaluate(bonds, issuers)
	assert.Len(t, exposures, 2)

	var issuer1 Exposure
	for _, e := range exposures {
		if e.IssuerID == "ISSUER-1" {
			issuer1 = e
		}
	}
	assert.InDelta(t, 1_000_000, issuer1.EAD, 1e-9)
	assert.InDelta(t, 0.0030*0.40*1_000_000, issuer1.ExpectedLoss, 1e-6)

	assert.InDelta(t, 1_200_000, TotalEAD(exposures), 1e-9)
}

func TestLGDFallsBackToUnsecuredForUnknownSeniority(t *testing.T) {
	assert.Equal(t, LGD(domain.SeniorUnsecured), LGD(domain.Seniority("unknown")))
}

package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/aristath/riskengine/internal/ccr"
	"github.com/aristath/riskengine/internal/config"
	"github.com/aristath/riskengine/internal/domain"
	"github.com/aristath/riskengine/internal/stress"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePnL(n int) []float64 {
	pnl := make([]float64, n)
	for i := range pnl {
		pnl[i] = float64(i) - float64(n)/2
	}
	return pnl
}

func baseInputs() Inputs {
	return Inputs{
		Portfolio: domain.Portfolio{
			ID:           "PORT-1",
			Type:         domain.PortfolioBondDealer,
			BaseCurrency: "EUR",
			Active:       true,
			Positions: []domain.Position{
				{
					Kind:         domain.InstrumentBond,
					ISIN:         "XS0000000001",
					Notional:     1_000_000,
					CouponRate:   0.04,
					CouponFreq:   1,
					DayCount:     domain.DayCount30360,
					TradeDate:    time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
					AsOfDate:     time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
					MaturityDate: time.Date(2031, 1, 2, 0, 0, 0, 0, time.UTC),
				},
			},
		},
		Snapshot: MarketSnapshotInput{
			AsOfDate:     "2026-01-02",
			BaseCurrency: "EUR",
			Prices: map[string]MarketPrice{
				"XS0000000001": {CleanPrice: 980_000, Bid: 979_000, Ask: 981_000, DaysSinceTrade: 1},
			},
			Curves: map[string]MarketCurve{
				"EUR": {Currency: "EUR", Points: []MarketCurvePoint{{TenorYears: 1, ZeroRate: 0.03}, {TenorYears: 10, ZeroRate: 0.035}}},
			},
			FxRates: map[string]float64{"EURUSD": 1.10},
		},
		Issuers: map[string]domain.Issuer{
			"ISSUER-1": {ID: "ISSUER-1", Rating: "BBB", Seniority: domain.SeniorUnsecured},
		},
		IssuerByISIN: map[string]string{"XS0000000001": "ISSUER-1"},
		PnLHistory:   samplePnL(120),
		CCRVolRegime: ccr.RegimeNormal,
		CapitalInputs: CapitalInputs{
			Tier1: 500_000,
			Tier2: 100_000,
		},
		Config:        config.Default(),
		NextAlertID:   func() string { return "alert-1" },
		NextIssueID:   func() string { return "issue-1" },
		AsOfTimestamp: 1767312000,
	}
}

func TestComputeSuccessPath(t *testing.T) {
	in := baseInputs()
	result := Compute(context.Background(), in, zerolog.Nop())

	require.Equal(t, domain.StatusSuccess, result.Status)
	require.NotNil(t, result.Market)
	assert.Greater(t, result.Market.DV01Total, 0.0)
	require.NotNil(t, result.Credit)
	require.NotNil(t, result.Capital)
	require.NotNil(t, result.Liquidity)
	assert.NotEmpty(t, result.MarketDataSnapshotID)
}

func TestComputeFailedWhenMarketViewCannotBeBuilt(t *testing.T) {
	in := baseInputs()
	delete(in.Snapshot.Prices, "XS0000000001") // bond ISIN now unresolved

	result := Compute(context.Background(), in, zerolog.Nop())
	assert.Equal(t, domain.StatusFailed, result.Status)
	assert.NotEmpty(t, result.ErrorMessage)
}

func TestComputePartialWhenHistoryTooShort(t *testing.T) {
	in := baseInputs()
	in.PnLHistory = samplePnL(10) // below MinObservations

	result := Compute(context.Background(), in, zerolog.Nop())
	assert.Equal(t, domain.StatusPartial, result.Status)
	assert.Nil(t, result.Market)
}

func TestComputeReturnsDQIssuesForWideSpread(t *testing.T) {
	in := baseInputs()
	q := in.Snapshot.Prices["XS0000000001"]
	q.Bid, q.Ask = 900_000, 1_050_000 // ~15% spread, far past the 500bps DQ-04 threshold
	in.Snapshot.Prices["XS0000000001"] = q

	result := Compute(context.Background(), in, zerolog.Nop())
	assert.NotEmpty(t, result.DataQualityIssues)
}

// TestStressPnLCountsEveryDerivativeSeparately guards against derivative
// positions collapsing onto a shared map key during stress repricing: two
// FX forwards with no ISIN must contribute two distinct before/after marks
// to StressResult.PnL, not silently net against each other under "".
func TestStressPnLCountsEveryDerivativeSeparately(t *testing.T) {
	in := baseInputs()
	in.Portfolio.Positions = append(in.Portfolio.Positions,
		domain.Position{
			Kind:         domain.InstrumentFxForward,
			Reference:    "FWD-1",
			Notional:     1_000_000,
			Underlying:   "EURUSD",
			Direction:    domain.DirectionLong,
			Strike:       1.05,
			AsOfDate:     time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			MaturityDate: time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC),
		},
		domain.Position{
			Kind:         domain.InstrumentFxForward,
			Reference:    "FWD-2",
			Notional:     2_000_000,
			Underlying:   "EURUSD",
			Direction:    domain.DirectionShort,
			Strike:       1.05,
			AsOfDate:     time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			MaturityDate: time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	)
	in.Scenarios = []stress.Scenario{
		{Name: "FX-10pct", FxShockPct: map[string]float64{"EURUSD": -0.10}},
	}

	result := Compute(context.Background(), in, zerolog.Nop())
	require.Len(t, result.Stress, 1)

	refs := map[string]bool{}
	for _, c := range result.Stress[0].TopContributors {
		refs[c.Reference] = true
	}
	assert.True(t, refs["FWD-1"])
	assert.True(t, refs["FWD-2"])
	assert.NotContains(t, refs, "")
}

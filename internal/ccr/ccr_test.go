package ccr

import (
	"math"
	"testing"

	"github.com/aristath/riskengine/internal/domain"
	"github.com/stretchr/testify/assert"
)

// TestNettingReducesExposure checks that ISDA netting reduces aggregate
// PFE relative to the gross sum.
func TestNettingReducesExposure(t *testing.T) {
	trades := []Trade{
		{Reference: "T1", Kind: domain.InstrumentFxForward, Notional: 10_000_000, FxPair: "EURUSD", TenorYears: 1, MarketValue: 50_000},
		{Reference: "T2", Kind: domain.InstrumentFxForward, Notional: 8_000_000, FxPair: "EURUSD", TenorYears: 1, MarketValue: -30_000},
	}
	netted := domain.Counterparty{ID: "CPTY-1", ISDANetting: true}
	unnetted := domain.Counterparty{ID: "CPTY-2", ISDANetting: false}

	nettedExp := Evaluate(trades, netted, RegimeNormal)
	unnettedExp := Evaluate(trades, unnetted, RegimeNormal)

	assert.Less(t, nettedExp.NetPFE, unnettedExp.NetPFE)
}

func TestCollateralReducesAdjPFE(t *testing.T) {
	trades := []Trade{
		{Reference: "T1", Kind: domain.InstrumentIrSwap, Notional: 10_000_000, TenorYears: 3, MarketValue: 100_000},
	}
	noCollateral := domain.Counterparty{ID: "CPTY-1"}
	withCollateral := domain.Counterparty{ID: "CPTY-1", CSA: domain.CSA{CollateralHeld: 1_000_000}}

	expNoCollat := Evaluate(trades, noCollateral, RegimeNormal)
	expWithCollat := Evaluate(trades, withCollateral, RegimeNormal)

	assert.Greater(t, expNoCollat.AdjPFE, expWithCollat.AdjPFE)
	assert.Equal(t, 0.0, expWithCollat.AdjPFE)
}

func TestLongOptionPFEIsCappedPremium(t *testing.T) {
	trades := []Trade{
		{Reference: "O1", Kind: domain.InstrumentFxOption, IsOption: true, IsLong: true, PremiumPaid: 50_000, CapPolicy: 40_000, MarketValue: 45_000},
	}
	exp := Evaluate(trades, domain.Counterparty{ID: "CPTY-1"}, RegimeNormal)
	assert.InDelta(t, 40_000, exp.GrossPFE, 1e-9)
}

func TestCVAIsNonNegativeAndGrowsWithSpread(t *testing.T) {
	base := CVAInput{CE: 100_000, TotalPFE: 200_000, RiskFreeRate: 0.03, LGD: 0.6, MaxMaturity: 5, PD1Y: 0.01}
	wide := base
	wide.HasCDSSpread = true
	wide.CDSSpreadBps = 300

	baseCVA := CVA(base)
	wideCVA := CVA(wide)

	assert.GreaterOrEqual(t, baseCVA, 0.0)
	assert.Greater(t, wideCVA, baseCVA)
}

func TestCVAZeroMaturityIsZero(t *testing.T) {
	assert.Equal(t, 0.0, CVA(CVAInput{MaxMaturity: 0}))
}

func TestPortfolioFactorNearFlatBook(t *testing.T) {
	factor := portfolioFactor(12, 6, 10, 1000)
	assert.InDelta(t, 0.5, factor, 1e-9)
}

func TestIrCCFStepsByTenorBucket(t *testing.T) {
	assert.Equal(t, 0.0, irCCF(0.5))
	assert.Equal(t, 0.005, irCCF(3))
	assert.Equal(t, 0.010, irCCF(8))
	assert.Equal(t, 0.015, irCCF(15))
}

func TestCumulativePDMonotonicInTenor(t *testing.T) {
	in := CVAInput{PD1Y: 0.02}
	pd1 := cumulativePD(in, 1)
	pd2 := cumulativePD(in, 2)
	assert.Greater(t, pd2, pd1)
	assert.False(t, math.IsNaN(pd2))
}

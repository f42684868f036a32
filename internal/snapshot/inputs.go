// Package snapshot implements C13: the orchestrator that builds a market
// view, runs data-quality checks, prices every position, and wires C3-C12
// into one RiskSnapshot following a fixed dependency order: market view ->
// DQ -> pricing -> portfolio market metrics -> VaR -> credit/CCR/CVA ->
// liquidity -> capital -> stress -> limits.
package snapshot

import (
	"github.com/aristath/riskengine/internal/ccr"
	"github.com/aristath/riskengine/internal/config"
	"github.com/aristath/riskengine/internal/domain"
	"github.com/aristath/riskengine/internal/liquidity"
	"github.com/aristath/riskengine/internal/stress"
)

// Inputs is the full immutable bundle C13 needs for one portfolio's
// computation.
type Inputs struct {
	Portfolio domain.Portfolio
	Snapshot  MarketSnapshotInput

	Issuers       map[string]domain.Issuer       // issuer ID -> issuer (C6)
	Counterparties map[string]domain.Counterparty // counterparty ID -> counterparty (C7)
	IssuerByISIN  map[string]string               // bond ISIN -> issuer ID, for EAD aggregation

	PnLHistory       []float64 // full history, for C5 historical VaR
	StressWindowPnL  []float64 // crisis-window P&L, for C5 stressed VaR

	CCRVolRegime ccr.VolRegime

	HQLAHoldings []liquidity.HQLAHolding
	Outflows     []liquidity.Outflow
	Inflows      float64
	Positions1d  []liquidity.PositionLiquidity
	Positions5d  []liquidity.PositionLiquidity

	CapitalInputs CapitalInputs

	Limits []domain.Limit

	Scenarios []stress.Scenario

	Config     config.EngineConfig
	NextAlertID func() string
	NextIssueID func() string
	AsOfTimestamp int64 // unix seconds the caller supplies; engine never reads the wall clock
}

// CapitalInputs bundles C9's raw figures (these come from reference data
// the engine does not compute itself: AUM, client funds, order volume,
// capital base).
type CapitalInputs struct {
	IRBuckets              []CapitalIRBucket
	RatedExposures         []CapitalRatedExposure
	FXNetPositions         []CapitalFXPosition
	TrailingQuarterlyAvgAUM float64
	AvgSegregatedFunds      float64
	FundsGuaranteed         bool
	AnnualizedOrderVolume   float64
	KCOHPercentage          float64
	Tier1                   float64
	Tier2                   float64
}

type CapitalIRBucket struct {
	Bucket      string
	NetExposure float64
}

type CapitalRatedExposure struct {
	MarketValue float64
	Rating      string
}

type CapitalFXPosition struct {
	Currency    string
	NetPosition float64
}

// MarketSnapshotInput is the raw market data plus baseCurrency needed to
// build a View (C1).
type MarketSnapshotInput struct {
	AsOfDate     string
	BaseCurrency string
	Prices       map[string]MarketPrice
	Curves       map[string]MarketCurve
	VolSurfaces  map[string]MarketVolSurface
	FxRates      map[string]float64
	CDSSpreads   map[string]float64
}

type MarketPrice struct {
	CleanPrice, Yield, SpreadBps, Bid, Ask, Volume float64
	DaysSinceTrade                                 int
}

type MarketCurve struct {
	Currency string
	Points   []MarketCurvePoint
}

type MarketCurvePoint struct {
	TenorYears, ZeroRate float64
}

type MarketVolSurface struct {
	Underlying string
	Forward    float64
	Points     []MarketVolPoint
}

type MarketVolPoint struct {
	TenorYears, Strike, Vol float64
}

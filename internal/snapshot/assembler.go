package snapshot

import (
	"context"
	"math"

	"github.com/aristath/riskengine/internal/bondpricer"
	"github.com/aristath/riskengine/internal/capital"
	"github.com/aristath/riskengine/internal/ccr"
	"github.com/aristath/riskengine/internal/concurrency"
	"github.com/aristath/riskengine/internal/creditrisk"
	"github.com/aristath/riskengine/internal/derivpricer"
	"github.com/aristath/riskengine/internal/domain"
	"github.com/aristath/riskengine/internal/dq"
	"github.com/aristath/riskengine/internal/liquidity"
	"github.com/aristath/riskengine/internal/limits"
	"github.com/aristath/riskengine/internal/marketdata"
	"github.com/aristath/riskengine/internal/stress"
	"github.com/aristath/riskengine/internal/varengine"
	"github.com/rs/zerolog"
)

// Compute runs the full C1-C12 pipeline for one portfolio and assembles
// the RiskSnapshot. It never panics and never returns an error for anything
// short of a market-view construction failure: every other failure degrades
// the snapshot's Status rather than aborting the run.
func Compute(ctx context.Context, in Inputs, log zerolog.Logger) domain.RiskSnapshot {
	result := domain.RiskSnapshot{
		PortfolioID:          in.Portfolio.ID,
		AsOfDate:             in.Snapshot.AsOfDate,
		CalculationTimestamp: in.AsOfTimestamp,
		EngineVersion:        in.Config.EngineVersion,
		Status:               domain.StatusRunning,
	}

	view, err := buildView(in)
	if err != nil {
		result.Status = domain.StatusFailed
		result.ErrorMessage = err.Error()
		log.Error().Err(err).Str("portfolio_id", in.Portfolio.ID).Msg("market view construction failed")
		return result
	}
	result.MarketDataSnapshotID = view.ID()

	issues := dq.Evaluate(dq.Input{
		View:       view,
		Positions:  in.Portfolio.Positions,
		Issuers:    in.Issuers,
		AsOfDate:   in.Snapshot.AsOfDate,
		DetectedAt: in.AsOfTimestamp,
		NextID:     in.NextIssueID,
	})
	result.DataQualityIssues = issues

	partial := false

	priced, pricingErrs := pricePositions(ctx, in, view)
	if anyError(pricingErrs) {
		partial = true
	}

	marketBlock, err := buildMarketBlock(in, priced)
	if err != nil {
		partial = true
		log.Warn().Err(err).Msg("market block degraded")
	} else {
		result.Market = marketBlock
	}

	creditBlock := buildCreditBlock(in, priced)
	result.Credit = creditBlock

	ccrBlock, cvaTotal := buildCCRBlock(in, priced)
	result.CCR = ccrBlock
	if result.Credit != nil {
		result.Credit.CVATotal = cvaTotal
	}

	liquidityBlock := buildLiquidityBlock(in)
	result.Liquidity = liquidityBlock

	capitalBlock := buildCapitalBlock(in)
	result.Capital = capitalBlock

	result.Stress = buildStressResults(in, view, priced)

	result.Alerts = evaluateLimits(in, result)
	result.AlertsSummary = summarizeAlerts(result.Alerts)

	for _, p := range in.Portfolio.Positions {
		if dq.HasBlockingError(issues, p.ISIN) {
			partial = true
			break
		}
	}

	if partial {
		result.Status = domain.StatusPartial
	} else {
		result.Status = domain.StatusSuccess
	}
	return result
}

func anyError(errs []error) bool {
	for _, e := range errs {
		if e != nil {
			return true
		}
	}
	return false
}

// pricedPosition is one position's market value, DV01 and duration
// contribution, regardless of whether it came from the bond pricer or the
// derivative pricer.
type pricedPosition struct {
	pos         domain.Position
	reference   string
	marketValue float64
	dv01        float64
	duration    float64
	convexity   float64
	delta       float64
}

func buildView(in Inputs) (*marketdata.View, error) {
	snap := marketdata.NewSnapshot(in.Snapshot.AsOfDate)
	for isin, p := range in.Snapshot.Prices {
		snap.Prices[isin] = marketdata.PriceQuote{
			CleanPrice: p.CleanPrice, Yield: p.Yield, SpreadBps: p.SpreadBps,
			Bid: p.Bid, Ask: p.Ask, Volume: p.Volume, DaysSinceTrade: p.DaysSinceTrade,
		}
	}
	for ccy, c := range in.Snapshot.Curves {
		points := make([]marketdata.CurvePoint, len(c.Points))
		for i, pt := range c.Points {
			points[i] = marketdata.CurvePoint{TenorYears: pt.TenorYears, ZeroRate: pt.ZeroRate}
		}
		curve, err := marketdata.NewYieldCurve(ccy, points)
		if err != nil {
			return nil, err
		}
		snap.Curves[ccy] = curve
	}
	for u, s := range in.Snapshot.VolSurfaces {
		points := make([]marketdata.VolPoint, len(s.Points))
		for i, pt := range s.Points {
			points[i] = marketdata.VolPoint{TenorYears: pt.TenorYears, Strike: pt.Strike, Vol: pt.Vol}
		}
		snap.VolSurfaces[u] = marketdata.NewVolSurface(u, s.Forward, points)
	}
	for pair, r := range in.Snapshot.FxRates {
		snap.FxRates[pair] = r
	}
	for issuer, spread := range in.Snapshot.CDSSpreads {
		snap.CDSSpreads[issuer] = spread
	}

	return marketdata.Build(snap, in.Portfolio.Positions)
}

func pricePositions(ctx context.Context, in Inputs, view *marketdata.View) ([]pricedPosition, []error) {
	limit := in.Config.Parallelism
	if limit < 1 {
		limit = 1
	}
	return concurrency.MapTolerant(ctx, limit, in.Portfolio.Positions, func(_ context.Context, pos domain.Position) (pricedPosition, error) {
		if pos.Kind == domain.InstrumentBond {
			q, err := view.Price(pos.ISIN)
			if err != nil {
				return pricedPosition{pos: pos, reference: pos.ISIN}, err
			}
			res, err := bondpricer.Price(pos, q.CleanPrice, bondpricer.Config{YTMTolerance: in.Config.YTMTolerance, YTMMaxIter: in.Config.YTMMaxIter})
			if err != nil {
				return pricedPosition{pos: pos, reference: pos.ISIN}, err
			}
			return pricedPosition{pos: pos, reference: pos.ISIN, marketValue: res.MarketValue, dv01: res.DV01, duration: res.ModifiedDur, convexity: res.Convexity}, nil
		}
		res, err := derivpricer.Price(pos, view, in.Portfolio.BaseCurrency)
		if err != nil {
			return pricedPosition{pos: pos, reference: pos.Reference}, err
		}
		return pricedPosition{pos: pos, reference: pos.Reference, marketValue: res.MarketValue, dv01: res.DV01, delta: res.Delta}, nil
	})
}

func buildMarketBlock(in Inputs, priced []pricedPosition) (*domain.MarketBlock, error) {
	bondResults := make([]bondpricer.Result, 0, len(priced))
	dv01Total := 0.0
	for _, p := range priced {
		dv01Total += p.dv01
		if p.pos.Kind == domain.InstrumentBond {
			bondResults = append(bondResults, bondpricer.Result{MarketValue: p.marketValue, ModifiedDur: p.duration, DV01: p.dv01, Convexity: p.convexity})
		}
	}
	summary := bondpricer.Summarize(bondResults)

	var1d95, err := varengine.Historical1Day95(in.PnLHistory)
	if err != nil {
		return nil, err
	}

	stressedVaR := 0.0
	if sv, err := varengine.StressedVaR(in.StressWindowPnL); err == nil {
		stressedVaR = sv
	}

	return &domain.MarketBlock{
		VaR1d95:     var1d95.VaR,
		StressedVaR: stressedVaR,
		DV01Total:   dv01Total,
		Duration:    summary.WeightedDuration,
		Convexity:   summary.TotalConvexity,
	}, nil
}

func buildCreditBlock(in Inputs, priced []pricedPosition) *domain.CreditBlock {
	bonds := make([]creditrisk.BondMarketValue, 0, len(priced))
	for _, p := range priced {
		if p.pos.Kind != domain.InstrumentBond {
			continue
		}
		bonds = append(bonds, creditrisk.BondMarketValue{
			ISIN:        p.pos.ISIN,
			IssuerID:    in.IssuerByISIN[p.pos.ISIN],
			MarketValue: p.marketValue,
		})
	}
	exposures := creditrisk.Evaluate(bonds, in.Issuers)
	return &domain.CreditBlock{
		TotalExposure: creditrisk.TotalEAD(exposures),
		ExpectedLoss:  creditrisk.TotalExpectedLoss(exposures),
	}
}

func buildCCRBlock(in Inputs, priced []pricedPosition) (*domain.CCRBlock, float64) {
	byCounterparty := map[string][]ccr.Trade{}
	for _, p := range priced {
		if p.pos.Kind == domain.InstrumentBond || p.pos.CounterpartyID == "" {
			continue
		}
		isOption := p.pos.Kind == domain.InstrumentFxOption || p.pos.Kind == domain.InstrumentCapFloor || p.pos.Kind == domain.InstrumentSwaption
		byCounterparty[p.pos.CounterpartyID] = append(byCounterparty[p.pos.CounterpartyID], ccr.Trade{
			Reference:      p.reference,
			CounterpartyID: p.pos.CounterpartyID,
			Kind:           p.pos.Kind,
			Notional:       p.pos.Notional,
			MarketValue:    p.marketValue,
			TenorYears:     yearsBetween(p.pos),
			FxPair:         p.pos.Underlying,
			IsOption:       isOption,
			IsLong:         p.pos.Direction == domain.DirectionLong,
			Delta:          p.delta,
			PremiumPaid:    math.Abs(p.marketValue),
			CapPolicy:      p.pos.Notional,
		})
	}

	ceTotal, pfeTotal, eadTotal, cvaTotal := 0.0, 0.0, 0.0, 0.0
	for cptyID, trades := range byCounterparty {
		cpty := in.Counterparties[cptyID]
		exp := ccr.Evaluate(trades, cpty, in.CCRVolRegime)
		ceTotal += exp.CE
		pfeTotal += exp.NetPFE
		eadTotal += exp.EAD

		rating := cpty.ExternalRating
		cvaTotal += ccr.CVA(ccr.CVAInput{
			CE:           exp.CE,
			TotalPFE:     exp.NetPFE,
			RiskFreeRate: 0.03,
			LGD:          creditrisk.LGD(domain.SeniorUnsecured),
			MaxMaturity:  maxTenor(trades),
			PD1Y:         creditrisk.PD(rating),
		})
	}

	return &domain.CCRBlock{
		PFECurrent: pfeTotal,
		PFEPeak:    pfeTotal,
		EADTotal:   eadTotal,
	}, cvaTotal
}

func yearsBetween(pos domain.Position) float64 {
	return pos.MaturityDate.Sub(pos.AsOfDate).Hours() / 24 / 365.0
}

func maxTenor(trades []ccr.Trade) float64 {
	max := 0.0
	for _, t := range trades {
		if t.TenorYears > max {
			max = t.TenorYears
		}
	}
	return max
}

func buildLiquidityBlock(in Inputs) *domain.LiquidityBlock {
	hqla := liquidity.HQLA(in.HQLAHoldings)
	outflows := liquidity.Outflows30d(in.Outflows)
	netOutflows := liquidity.NetOutflows(outflows, in.Inflows)
	lcr := liquidity.LCR(hqla, netOutflows)

	return &domain.LiquidityBlock{
		LCRRatio:           lcr,
		FundingGapShortTerm: hqla - netOutflows,
		LiquidationCost1d:  liquidity.PortfolioLiquidationCost(in.Positions1d, 1),
		LiquidationCost5d:  liquidity.PortfolioLiquidationCost(in.Positions5d, 5),
		LiquidityScore:     liquidityScore(lcr),
	}
}

// liquidityScore maps LCR onto a bounded 0-100 managerial score so
// dashboards have a single liquidity number to chart; LCR itself remains
// the regulatory figure.
func liquidityScore(lcr float64) float64 {
	if lcr == domain.PosInf {
		return 100
	}
	score := lcr * 100
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

func buildCapitalBlock(in Inputs) *domain.CapitalBlock {
	ci := in.CapitalInputs

	irBuckets := make([]capital.NetBucketExposure, len(ci.IRBuckets))
	for i, b := range ci.IRBuckets {
		irBuckets[i] = capital.NetBucketExposure{Bucket: b.Bucket, NetExposure: b.NetExposure}
	}
	rated := make([]capital.RatedExposure, len(ci.RatedExposures))
	for i, r := range ci.RatedExposures {
		rated[i] = capital.RatedExposure{MarketValue: r.MarketValue, Rating: r.Rating}
	}
	fxPositions := make([]capital.CurrencyNetPosition, len(ci.FXNetPositions))
	for i, f := range ci.FXNetPositions {
		fxPositions[i] = capital.CurrencyNetPosition{Currency: f.Currency, NetPosition: f.NetPosition}
	}

	knpr := capital.KNPR{
		KIR:     capital.KIR(irBuckets),
		KCREDNR: capital.KCREDNR(rated),
		KFX:     capital.KFX(fxPositions),
	}
	kaum := capital.KAUM(ci.TrailingQuarterlyAvgAUM)
	kcmh := capital.KCMH(ci.AvgSegregatedFunds, ci.FundsGuaranteed)
	kcoh := capital.KCOH(ci.AnnualizedOrderVolume, ci.KCOHPercentage)

	summary := capital.Evaluate(knpr.Total(), kaum, kcmh, kcoh, ci.Tier1, ci.Tier2)

	return &domain.CapitalBlock{
		KNPR:         summary.KNPR,
		KAUM:         summary.KAUM,
		KCMH:         summary.KCMH,
		KCOH:         summary.KCOH,
		TotalKReq:    summary.TotalKReq,
		OwnFunds:     summary.OwnFunds,
		CapitalRatio: summary.CapitalRatio,
	}
}

func evaluateLimits(in Inputs, result domain.RiskSnapshot) []domain.Alert {
	var alerts []domain.Alert
	metricValues := currentMetricValues(result)

	seen := map[string]bool{}
	for _, lim := range in.Limits {
		seen[lim.MetricCode] = true
		value, ok := metricValues[lim.MetricCode]
		if !ok {
			continue
		}
		if alert := limits.Evaluate(lim, value, in.NextAlertID, in.AsOfTimestamp); alert != nil {
			alerts = append(alerts, *alert)
		}
	}

	// The CapitalRatio/LCR regulatory floors apply even without a
	// configured limit entry.
	for _, metric := range []string{limits.MetricCapitalRatio, limits.MetricLCR} {
		if seen[metric] {
			continue
		}
		if value, ok := metricValues[metric]; ok {
			if alert := limits.EvaluateFloorOnly(in.Portfolio.ID, metric, value, in.NextAlertID, in.AsOfTimestamp); alert != nil {
				alerts = append(alerts, *alert)
			}
		}
	}
	return alerts
}

func currentMetricValues(result domain.RiskSnapshot) map[string]float64 {
	values := map[string]float64{}
	if result.Market != nil {
		values["VaR1d95"] = result.Market.VaR1d95
		values["DV01Total"] = result.Market.DV01Total
	}
	if result.Capital != nil {
		values[limits.MetricCapitalRatio] = result.Capital.CapitalRatio
	}
	if result.Liquidity != nil {
		values[limits.MetricLCR] = result.Liquidity.LCRRatio
	}
	if result.CCR != nil {
		values["EADTotal"] = result.CCR.EADTotal
	}
	return values
}

// buildStressResults reprices every position on each scenario's shocked
// view and reports the P&L, metric deltas and top contributors. Only
// position market values are recomputed on the shocked view: VaR, capital
// and liquidity are rebuilt from the same unshocked inputs, so ΔVaR, ΔK,
// ΔCapitalRatio and ΔLCR come out as zero.
func buildStressResults(in Inputs, baseline *marketdata.View, basePriced []pricedPosition) []domain.StressResult {
	if len(in.Scenarios) == 0 {
		return nil
	}

	beforeMV := map[string]float64{}
	for _, p := range basePriced {
		beforeMV[p.reference] = p.marketValue
	}
	baseMarket, _ := buildMarketBlock(in, basePriced)
	baseCapital := buildCapitalBlock(in)
	baseLiquidity := buildLiquidityBlock(in)

	results := make([]domain.StressResult, 0, len(in.Scenarios))
	for _, scenario := range in.Scenarios {
		shockedView := applyScenario(baseline, scenario)
		shockedPriced := repricePositions(in, shockedView)

		afterMV := map[string]float64{}
		for _, p := range shockedPriced {
			afterMV[p.reference] = p.marketValue
		}
		afterMarket, _ := buildMarketBlock(in, shockedPriced)
		afterCapital := buildCapitalBlock(in)
		afterLiquidity := buildLiquidityBlock(in)

		deltas := deltasFromBlocks(baseMarket, afterMarket, baseCapital, afterCapital, baseLiquidity, afterLiquidity)
		results = append(results, buildResult(scenario.Name, beforeMV, afterMV, deltas))
	}
	return results
}

func repricePositions(in Inputs, view *marketdata.View) []pricedPosition {
	out := make([]pricedPosition, 0, len(in.Portfolio.Positions))
	for _, pos := range in.Portfolio.Positions {
		if pos.Kind == domain.InstrumentBond {
			q, err := view.Price(pos.ISIN)
			if err != nil {
				continue
			}
			res, err := bondpricer.Price(pos, q.CleanPrice, bondpricer.Config{YTMTolerance: in.Config.YTMTolerance, YTMMaxIter: in.Config.YTMMaxIter})
			if err != nil {
				continue
			}
			out = append(out, pricedPosition{pos: pos, reference: pos.ISIN, marketValue: res.MarketValue, dv01: res.DV01, duration: res.ModifiedDur, convexity: res.Convexity})
			continue
		}
		res, err := derivpricer.Price(pos, view, in.Portfolio.BaseCurrency)
		if err != nil {
			continue
		}
		out = append(out, pricedPosition{pos: pos, reference: pos.Reference, marketValue: res.MarketValue, dv01: res.DV01, delta: res.Delta})
	}
	return out
}

func summarizeAlerts(alerts []domain.Alert) domain.AlertsSummary {
	counts := limits.Summarize(alerts)
	return domain.AlertsSummary{
		Green:    counts[domain.SeverityGreen],
		Yellow:   counts[domain.SeverityYellow],
		Red:      counts[domain.SeverityRed],
		Critical: counts[domain.SeverityCritical],
	}
}

// applyScenario shocks curves and FX per the scenario; issuer-level credit
// spread widenings are resolved to per-ISIN bumps by the caller's
// reference data, which this orchestrator does not carry, so only the
// curve/FX/vol/bid-ask legs of a scenario are applied here.
func applyScenario(view *marketdata.View, scenario stress.Scenario) *marketdata.View {
	return stress.Apply(view, scenario, nil)
}

func deltasFromBlocks(beforeMarket, afterMarket *domain.MarketBlock, beforeCapital, afterCapital *domain.CapitalBlock, beforeLiquidity, afterLiquidity *domain.LiquidityBlock) stress.MetricDeltas {
	d := stress.MetricDeltas{}
	if beforeMarket != nil && afterMarket != nil {
		d.BeforeVaR, d.AfterVaR = beforeMarket.VaR1d95, afterMarket.VaR1d95
	}
	if beforeCapital != nil && afterCapital != nil {
		d.BeforeK, d.AfterK = beforeCapital.TotalKReq, afterCapital.TotalKReq
		d.BeforeCapitalRatio, d.AfterCapitalRatio = beforeCapital.CapitalRatio, afterCapital.CapitalRatio
	}
	if beforeLiquidity != nil && afterLiquidity != nil {
		d.BeforeLCR, d.AfterLCR = beforeLiquidity.LCRRatio, afterLiquidity.LCRRatio
	}
	return d
}

func buildResult(name string, beforeMV, afterMV map[string]float64, deltas stress.MetricDeltas) domain.StressResult {
	return stress.BuildResult(name, beforeMV, afterMV, deltas)
}

// Command riskengine runs one nightly-batch pass of the risk engine over a
// JSON portfolio/market-data fixture and prints the resulting RiskSnapshot.
// It is a thin driver, not a service: the engine itself is a pure function
// of its Inputs, so this binary's only job is reading a
// fixture, supplying the wall-clock and ID-generation the engine refuses to
// own, and serializing the result.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/aristath/riskengine/internal/ccr"
	"github.com/aristath/riskengine/internal/config"
	"github.com/aristath/riskengine/internal/domain"
	"github.com/aristath/riskengine/internal/liquidity"
	"github.com/aristath/riskengine/internal/logging"
	"github.com/aristath/riskengine/internal/snapshot"
	"github.com/aristath/riskengine/internal/stress"
	"github.com/aristath/riskengine/pkg/riskengine"
)

func main() {
	fixturePath := flag.String("fixture", "", "path to a JSON portfolio/market-data fixture")
	logLevel := flag.String("log-level", "info", "debug, info, warn, error")
	pretty := flag.Bool("pretty-log", false, "human-readable console log output")
	flag.Parse()

	log := logging.New(logging.Config{Level: *logLevel, Pretty: *pretty})

	if *fixturePath == "" {
		log.Fatal().Msg("-fixture is required")
	}

	raw, err := os.ReadFile(*fixturePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *fixturePath).Msg("failed to read fixture")
	}

	var fixture Fixture
	if err := json.Unmarshal(raw, &fixture); err != nil {
		log.Fatal().Err(err).Msg("failed to parse fixture")
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load engine configuration")
	}

	engine := riskengine.New(cfg, riskengine.WithLogger(log))
	result := engine.ComputeSnapshot(context.Background(), fixture.toInputs())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatal().Err(err).Msg("failed to encode snapshot")
	}

	if result.Status == domain.StatusFailed {
		os.Exit(1)
	}
}

// Fixture is the on-disk JSON shape a demo run reads. It mirrors
// snapshot.Inputs field-for-field except for the two ID-generator
// functions, which this binary supplies as monotonic counters,
// AsOfTimestamp, which it stamps at load time since fixtures don't carry a
// wall-clock reading of their own, and Config, which the engine fills from
// its own configuration.
type Fixture struct {
	Portfolio domain.Portfolio             `json:"portfolio"`
	Snapshot  snapshot.MarketSnapshotInput `json:"snapshot"`

	Issuers        map[string]domain.Issuer       `json:"issuers"`
	Counterparties map[string]domain.Counterparty `json:"counterparties"`
	IssuerByISIN   map[string]string               `json:"issuer_by_isin"`

	PnLHistory      []float64 `json:"pnl_history"`
	StressWindowPnL []float64 `json:"stress_window_pnl"`

	CCRVolRegime ccr.VolRegime `json:"ccr_vol_regime"`

	HQLAHoldings []liquidity.HQLAHolding       `json:"hqla_holdings"`
	Outflows     []liquidity.Outflow           `json:"outflows"`
	Inflows      float64                       `json:"inflows"`
	Positions1d  []liquidity.PositionLiquidity `json:"positions_1d"`
	Positions5d  []liquidity.PositionLiquidity `json:"positions_5d"`

	CapitalInputs snapshot.CapitalInputs `json:"capital_inputs"`

	Limits    []domain.Limit    `json:"limits"`
	Scenarios []stress.Scenario `json:"scenarios"`
}

func (f Fixture) toInputs() snapshot.Inputs {
	var nextAlert, nextIssue int

	return snapshot.Inputs{
		Portfolio:       f.Portfolio,
		Snapshot:        f.Snapshot,
		Issuers:         f.Issuers,
		Counterparties:  f.Counterparties,
		IssuerByISIN:    f.IssuerByISIN,
		PnLHistory:      f.PnLHistory,
		StressWindowPnL: f.StressWindowPnL,
		CCRVolRegime:    f.CCRVolRegime,
		HQLAHoldings:    f.HQLAHoldings,
		Outflows:        f.Outflows,
		Inflows:         f.Inflows,
		Positions1d:     f.Positions1d,
		Positions5d:     f.Positions5d,
		CapitalInputs:   f.CapitalInputs,
		Limits:          f.Limits,
		Scenarios:       f.Scenarios,
		NextAlertID: func() string {
			nextAlert++
			return "alert-" + strconv.Itoa(nextAlert)
		},
		NextIssueID: func() string {
			nextIssue++
			return "issue-" + strconv.Itoa(nextIssue)
		},
		AsOfTimestamp: time.Now().Unix(),
	}
}

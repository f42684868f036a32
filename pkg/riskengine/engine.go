// Package riskengine is the public entry point: compute_snapshot and
// evaluate_dq, the engine's two primary operations, plus thin wrappers
// over backtesting and limit evaluation for hosts that want to drive those
// independently of a full snapshot run.
package riskengine

import (
	"context"

	"github.com/aristath/riskengine/internal/backtest"
	"github.com/aristath/riskengine/internal/config"
	"github.com/aristath/riskengine/internal/domain"
	"github.com/aristath/riskengine/internal/dq"
	"github.com/aristath/riskengine/internal/limits"
	"github.com/aristath/riskengine/internal/snapshot"
	"github.com/rs/zerolog"
)

// Inputs is the full immutable input bundle one compute_snapshot call
// needs; it re-exports internal/snapshot.Inputs so callers never import an
// internal package directly.
type Inputs = snapshot.Inputs

// Engine wires the engine's own logger through every component call. It
// carries no mutable state: two calls to ComputeSnapshot with identical
// Inputs always return byte-equal sub-blocks.
type Engine struct {
	log zerolog.Logger
	cfg config.EngineConfig
}

// New builds an Engine. A zero-value zerolog.Logger{} (i.e. not calling
// WithLogger) silently discards log output, matching every other
// component's Nop-by-default convention.
func New(cfg config.EngineConfig, opts ...Option) *Engine {
	e := &Engine{log: zerolog.Nop(), cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithLogger attaches a structured logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log.With().Str("component", "riskengine").Logger() }
}

// ComputeSnapshot runs the full C1-C13 pipeline for one portfolio
//. It is pure and deterministic given its Inputs;
// ctx is passed through to the pricing fan-out only; the pipeline does not
// check it for cancellation or a deadline, and never reads the wall clock.
func (e *Engine) ComputeSnapshot(ctx context.Context, in Inputs) domain.RiskSnapshot {
	in.Config = e.cfg
	return snapshot.Compute(ctx, in, e.log)
}

// EvaluateDQ runs the data-quality rule table standalone, for hosts that want DQ issues without a full snapshot.
func EvaluateDQ(in dq.Input) []domain.DataQualityIssue {
	return dq.Evaluate(in)
}

// NewBacktestRecord appends one VaR-forecast-vs-realized-P&L pairing
//. Records are append-only: the caller owns persistence.
func NewBacktestRecord(id, portfolioID, date string, varForecastPrev, realizedPnL float64) domain.BacktestingRecord {
	return backtest.NewRecord(id, portfolioID, date, varForecastPrev, realizedPnL)
}

// BacktestTrafficLight classifies a rolling exception count into the
// Basel-style traffic-light band.
func BacktestTrafficLight(records []domain.BacktestingRecord, window int) (domain.TrafficLight, int) {
	count := backtest.RollingExceptionCount(records, window)
	return backtest.TrafficLight(count), count
}

// EvaluateLimit classifies one metric's current value against a
// configured limit, for hosts that want limit evaluation
// outside a full snapshot run.
func EvaluateLimit(limit domain.Limit, currentValue float64, nextID func() string, createdAt int64) *domain.Alert {
	return limits.Evaluate(limit, currentValue, nextID, createdAt)
}

// Package config holds the engine's recognized configuration options: a
// flat immutable record loaded from the environment, following the host
// application's config.Load() convention layered with functional-option
// defaults.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// VolRegime selects C7's PFE vol multiplier override.
type VolRegime string

const (
	VolRegimeAuto     VolRegime = "Auto"
	VolRegimeNormal   VolRegime = "Normal"
	VolRegimeElevated VolRegime = "Elevated"
	VolRegimeCrisis   VolRegime = "Crisis"
)

// EngineConfig is the engine's full set of recognized options. It is
// immutable once built: components receive it by value.
type EngineConfig struct {
	EngineVersion    string
	VarWindowDays    int
	VarConfidence    float64
	StressWindowFrom string // ISO 8601 date
	StressWindowTo   string
	VolRegimeOverride VolRegime

	LCRL2ACap     float64
	LCRL2BCap     float64
	LCRInflowCap  float64

	PermanentMinCapitalEUR float64

	YTMTolerance float64
	YTMMaxIter   int

	Parallelism int
	DeadlineMS  int
}

// Option mutates an EngineConfig under construction.
type Option func(*EngineConfig)

// Default returns the engine's baseline configuration.
func Default() EngineConfig {
	return EngineConfig{
		EngineVersion:           "riskengine-1.0.0",
		VarWindowDays:           250,
		VarConfidence:           0.95,
		StressWindowFrom:        "2008-09-01",
		StressWindowTo:          "2009-03-31",
		VolRegimeOverride:       VolRegimeAuto,
		LCRL2ACap:               0.40,
		LCRL2BCap:               0.15,
		LCRInflowCap:            0.75,
		PermanentMinCapitalEUR:  75_000,
		YTMTolerance:            1e-10,
		YTMMaxIter:              50,
		Parallelism:             4,
		DeadlineMS:              0,
	}
}

// New builds an EngineConfig from Default() with opts applied in order.
func New(opts ...Option) EngineConfig {
	cfg := Default()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithEngineVersion overrides the identity tag. Any methodology change
// must bump this.
func WithEngineVersion(v string) Option { return func(c *EngineConfig) { c.EngineVersion = v } }

// WithParallelism overrides the bounded worker-pool width.
func WithParallelism(n int) Option {
	return func(c *EngineConfig) {
		if n >= 1 {
			c.Parallelism = n
		}
	}
}

// WithDeadlineMS overrides the on-demand SLA deadline; 0 means none.
func WithDeadlineMS(ms int) Option { return func(c *EngineConfig) { c.DeadlineMS = ms } }

// Validate checks the structural constraints the engine requires: a
// positive VaR window, a confidence level in (0,1), and parallelism >= 1.
func (c EngineConfig) Validate() error {
	if c.VarWindowDays <= 0 {
		return fmt.Errorf("var_window_days must be > 0, got %d", c.VarWindowDays)
	}
	if c.VarConfidence <= 0 || c.VarConfidence >= 1 {
		return fmt.Errorf("var_confidence must be in (0,1), got %f", c.VarConfidence)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be >= 1, got %d", c.Parallelism)
	}
	if c.YTMMaxIter <= 0 {
		return fmt.Errorf("ytm_max_iter must be > 0, got %d", c.YTMMaxIter)
	}
	return nil
}

// LoadFromEnv loads .env (if present) then layers environment-variable
// overrides onto Default(), mirroring the host's config.Load() precedence:
// environment variables override built-in defaults. Unknown environment
// keys are ignored; malformed recognized keys return an error rather than
// silently falling back.
func LoadFromEnv() (EngineConfig, error) {
	_ = godotenv.Load()

	cfg := Default()

	if v := os.Getenv("RISKENGINE_ENGINE_VERSION"); v != "" {
		cfg.EngineVersion = v
	}
	if v, err := envInt("RISKENGINE_VAR_WINDOW_DAYS"); err != nil {
		return EngineConfig{}, err
	} else if v != nil {
		cfg.VarWindowDays = *v
	}
	if v, err := envFloat("RISKENGINE_VAR_CONFIDENCE"); err != nil {
		return EngineConfig{}, err
	} else if v != nil {
		cfg.VarConfidence = *v
	}
	if v := os.Getenv("RISKENGINE_VOL_REGIME_OVERRIDE"); v != "" {
		cfg.VolRegimeOverride = VolRegime(v)
	}
	if v, err := envInt("RISKENGINE_PARALLELISM"); err != nil {
		return EngineConfig{}, err
	} else if v != nil {
		cfg.Parallelism = *v
	}
	if v, err := envInt("RISKENGINE_DEADLINE_MS"); err != nil {
		return EngineConfig{}, err
	} else if v != nil {
		cfg.DeadlineMS = *v
	}

	if err := cfg.Validate(); err != nil {
		return EngineConfig{}, err
	}
	return cfg, nil
}

func envInt(key string) (*int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &v, nil
}

func envFloat(key string) (*float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &v, nil
}

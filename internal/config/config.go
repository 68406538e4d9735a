// Package config defines engine configuration structures and loading hooks.
//
// Every scoring policy knob (thresholds, weights, cutoffs, tolerances) lives
// here so policy is overridable per deployment rather than baked into the
// domain packages.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// WorkerCount sets the number of candidate evaluation workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory evaluation job queue.
	QueueSize int `koanf:"queue_size"`

	// RedisAddr enables the Redis trend cache when non-empty, e.g.
	// "localhost:6379". Empty selects the in-memory cache.
	RedisAddr string `koanf:"redis_addr"`

	// QualifyThreshold and ConditionalThreshold are the debt-to-income
	// boundaries for the affordability verdicts.
	QualifyThreshold     float64 `koanf:"qualify_threshold"`
	ConditionalThreshold float64 `koanf:"conditional_threshold"`

	// RiskAffordabilityWeight, RiskCreditWeight and RiskMarketWeight set the
	// risk composite weights.
	RiskAffordabilityWeight float64 `koanf:"risk_affordability_weight"`
	RiskCreditWeight        float64 `koanf:"risk_credit_weight"`
	RiskMarketWeight        float64 `koanf:"risk_market_weight"`

	// TierLowCutoff, TierModerateCutoff and TierHighCutoff set the risk tier
	// boundaries, strictly descending.
	TierLowCutoff      float64 `koanf:"tier_low_cutoff"`
	TierModerateCutoff float64 `koanf:"tier_moderate_cutoff"`
	TierHighCutoff     float64 `koanf:"tier_high_cutoff"`

	// CreditScaleMax is the top of the credit-quality ordinal scale.
	CreditScaleMax float64 `koanf:"credit_scale_max"`

	// VolatilityReference is the volatility at which market stability
	// bottoms out.
	VolatilityReference float64 `koanf:"volatility_reference"`

	// DownPaymentStep is the advisory down-payment adjustment per risk tier
	// step above moderate, in percentage points.
	DownPaymentStep float64 `koanf:"down_payment_step"`

	// FlatTolerance is the trend flatness band relative to mean price.
	FlatTolerance float64 `koanf:"flat_tolerance"`

	// RankAffordabilityWeight, RankRiskWeight and RankTrendWeight set the
	// recommendation composite weights.
	RankAffordabilityWeight float64 `koanf:"rank_affordability_weight"`
	RankRiskWeight          float64 `koanf:"rank_risk_weight"`
	RankTrendWeight         float64 `koanf:"rank_trend_weight"`

	// DefaultDownPaymentRatio and DefaultTermMonths are assumed when implying
	// loan terms for ranked candidates.
	DefaultDownPaymentRatio float64 `koanf:"default_down_payment_ratio"`
	DefaultTermMonths       int     `koanf:"default_term_months"`

	// DefaultAnnualRatePercent is the financing rate assumed for implied
	// terms.
	DefaultAnnualRatePercent float64 `koanf:"default_annual_rate_percent"`
}

// New creates a Config with engine defaults.
func New() *Config {
	return &Config{
		LogLevel:                 "info",
		WorkerCount:              runtime.NumCPU() * 2,
		QueueSize:                4096,
		RedisAddr:                "",
		QualifyThreshold:         0.36,
		ConditionalThreshold:     0.45,
		RiskAffordabilityWeight:  40,
		RiskCreditWeight:         35,
		RiskMarketWeight:         25,
		TierLowCutoff:            75,
		TierModerateCutoff:       50,
		TierHighCutoff:           25,
		CreditScaleMax:           100,
		VolatilityReference:      0.25,
		DownPaymentStep:          5,
		FlatTolerance:            0.001,
		RankAffordabilityWeight:  50,
		RankRiskWeight:           30,
		RankTrendWeight:          20,
		DefaultDownPaymentRatio:  0.10,
		DefaultTermMonths:        120,
		DefaultAnnualRatePercent: 12,
	}
}

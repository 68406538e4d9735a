package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if RENTOWN_CONFIG is set
//  3. env (prefix RENTOWN_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	// A local .env file can supply the RENTOWN_ variables during development.
	_ = godotenv.Load()

	k := koanf.New(".")

	if path := os.Getenv("RENTOWN_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: RENTOWN_WORKER_COUNT, RENTOWN_QUALIFY_THRESHOLD, ...
	// Map env keys like RENTOWN_WORKER_COUNT -> worker_count (flat keys),
	// preserving underscores to match the koanf tags on the struct.
	envProvider := env.Provider("RENTOWN_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "rentown_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the domain packages would silently ignore.
func (c *Config) validate() error {
	switch {
	case c.QualifyThreshold <= 0 || c.ConditionalThreshold <= c.QualifyThreshold:
		return fmt.Errorf("%w: thresholds must satisfy 0 < qualify < conditional, got %v and %v",
			ErrInvalidConfig, c.QualifyThreshold, c.ConditionalThreshold)
	case c.RiskAffordabilityWeight < 0 || c.RiskCreditWeight < 0 || c.RiskMarketWeight < 0,
		c.RiskAffordabilityWeight+c.RiskCreditWeight+c.RiskMarketWeight <= 0:
		return fmt.Errorf("%w: risk weights must be non-negative with a positive sum", ErrInvalidConfig)
	case c.TierLowCutoff <= c.TierModerateCutoff || c.TierModerateCutoff <= c.TierHighCutoff || c.TierHighCutoff <= 0:
		return fmt.Errorf("%w: tier cutoffs must be strictly descending and positive", ErrInvalidConfig)
	case c.CreditScaleMax <= 0:
		return fmt.Errorf("%w: credit scale max must be positive, got %v", ErrInvalidConfig, c.CreditScaleMax)
	case c.VolatilityReference <= 0:
		return fmt.Errorf("%w: volatility reference must be positive, got %v", ErrInvalidConfig, c.VolatilityReference)
	case c.FlatTolerance < 0:
		return fmt.Errorf("%w: flat tolerance must be non-negative, got %v", ErrInvalidConfig, c.FlatTolerance)
	case c.RankAffordabilityWeight < 0 || c.RankRiskWeight < 0 || c.RankTrendWeight < 0,
		c.RankAffordabilityWeight+c.RankRiskWeight+c.RankTrendWeight <= 0:
		return fmt.Errorf("%w: rank weights must be non-negative with a positive sum", ErrInvalidConfig)
	case c.DefaultDownPaymentRatio <= 0 || c.DefaultDownPaymentRatio >= 1:
		return fmt.Errorf("%w: default down payment ratio must be in (0,1), got %v",
			ErrInvalidConfig, c.DefaultDownPaymentRatio)
	case c.DefaultTermMonths <= 0:
		return fmt.Errorf("%w: default term months must be positive, got %d", ErrInvalidConfig, c.DefaultTermMonths)
	case c.DefaultAnnualRatePercent < 0:
		return fmt.Errorf("%w: default annual rate must be non-negative, got %v",
			ErrInvalidConfig, c.DefaultAnnualRatePercent)
	}
	return nil
}

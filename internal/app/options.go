package app

import (
	"github.com/Mackliffe/rent2own-engine/internal/adapters/cache"
	"github.com/Mackliffe/rent2own-engine/internal/adapters/repository"
	"github.com/Mackliffe/rent2own-engine/internal/config"
	"github.com/Mackliffe/rent2own-engine/pkg/logger"
)

// Option configures the service before its calculators are built.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithStore sets the segment store backing trend summaries.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithCache sets the cache used to memoize trend summaries.
func WithCache(c cache.Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithWorkerCount sets the number of ranking workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the job queue capacity.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithAffordabilityThresholds sets the qualify and conditional
// payment-to-income cutoffs.
func WithAffordabilityThresholds(qualify, conditional float64) Option {
	return func(s *Service) {
		s.qualifyThreshold = qualify
		s.conditionalThreshold = conditional
	}
}

// WithFlatTolerance sets the relative band treated as a flat trend.
func WithFlatTolerance(eps float64) Option {
	return func(s *Service) {
		s.flatTolerance = eps
	}
}

// WithRiskWeights sets the affordability, credit, and market weights
// of the composite risk score.
func WithRiskWeights(affordability, credit, market float64) Option {
	return func(s *Service) {
		s.riskWeights = [3]float64{affordability, credit, market}
	}
}

// WithTierCutoffs sets the low, moderate, and high risk tier cutoffs.
func WithTierCutoffs(low, moderate, high float64) Option {
	return func(s *Service) {
		s.tierCutoffs = [3]float64{low, moderate, high}
	}
}

// WithCreditScale sets the upper bound of the credit quality input.
func WithCreditScale(max float64) Option {
	return func(s *Service) {
		s.creditScale = max
	}
}

// WithVolatilityReference sets the volatility treated as maximal market risk.
func WithVolatilityReference(ref float64) Option {
	return func(s *Service) {
		s.volReference = ref
	}
}

// WithDownPaymentStep sets the percentage-point increment used when
// recommending a larger down payment.
func WithDownPaymentStep(step float64) Option {
	return func(s *Service) {
		s.dpStep = step
	}
}

// WithRankWeights sets the affordability-fit, risk, and trend weights
// of the ranking composite.
func WithRankWeights(fit, inverseRisk, trend float64) Option {
	return func(s *Service) {
		s.rankWeights = [3]float64{fit, inverseRisk, trend}
	}
}

// WithImpliedTerms sets the financing terms assumed for candidates
// during ranking.
func WithImpliedTerms(downPaymentRatio float64, termMonths int, annualRatePercent float64) Option {
	return func(s *Service) {
		s.defaultDown = downPaymentRatio
		s.defaultTerm = termMonths
		s.annualRate = annualRatePercent
	}
}

// WithConfig applies every policy knob from a loaded configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg == nil {
			return
		}
		WithWorkerCount(cfg.WorkerCount)(s)
		WithQueueSize(cfg.QueueSize)(s)
		WithAffordabilityThresholds(cfg.QualifyThreshold, cfg.ConditionalThreshold)(s)
		WithFlatTolerance(cfg.FlatTolerance)(s)
		WithRiskWeights(cfg.RiskAffordabilityWeight, cfg.RiskCreditWeight, cfg.RiskMarketWeight)(s)
		WithTierCutoffs(cfg.TierLowCutoff, cfg.TierModerateCutoff, cfg.TierHighCutoff)(s)
		WithCreditScale(cfg.CreditScaleMax)(s)
		WithVolatilityReference(cfg.VolatilityReference)(s)
		WithDownPaymentStep(cfg.DownPaymentStep)(s)
		WithRankWeights(cfg.RankAffordabilityWeight, cfg.RankRiskWeight, cfg.RankTrendWeight)(s)
		WithImpliedTerms(cfg.DefaultDownPaymentRatio, cfg.DefaultTermMonths, cfg.DefaultAnnualRatePercent)(s)
	}
}

package rank

import (
	"github.com/Mackliffe/rent2own-engine/internal/domain/afford"
	"github.com/Mackliffe/rent2own-engine/internal/domain/risk"
)

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithWeights sets the composite weights for affordability fit, inverse risk
// and trend favorability. Non-positive sums are ignored.
func WithWeights(affordability, inverseRisk, trend float64) Option {
	return func(r *Ranker) {
		if affordability >= 0 && inverseRisk >= 0 && trend >= 0 && affordability+inverseRisk+trend > 0 {
			r.affordabilityWeight = affordability
			r.riskWeight = inverseRisk
			r.trendWeight = trend
		}
	}
}

// WithDefaultDownPaymentRatio sets the down-payment ratio assumed when
// implying loan terms for a candidate.
func WithDefaultDownPaymentRatio(ratio float64) Option {
	return func(r *Ranker) {
		if ratio > 0 && ratio < 1 {
			r.downPaymentRatio = ratio
		}
	}
}

// WithDefaultTermMonths sets the contract term assumed when the buyer states
// no preference.
func WithDefaultTermMonths(months int) Option {
	return func(r *Ranker) {
		if months > 0 {
			r.defaultTermMonths = months
		}
	}
}

// WithAnnualRatePercent sets the financing rate assumed for implied terms.
func WithAnnualRatePercent(rate float64) Option {
	return func(r *Ranker) {
		if rate >= 0 {
			r.annualRatePercent = rate
		}
	}
}

// WithEvaluator replaces the affordability evaluator.
func WithEvaluator(e *afford.Evaluator) Option {
	return func(r *Ranker) {
		if e != nil {
			r.evaluator = e
		}
	}
}

// WithScorer replaces the risk scorer.
func WithScorer(s *risk.Scorer) Option {
	return func(r *Ranker) {
		if s != nil {
			r.scorer = s
		}
	}
}

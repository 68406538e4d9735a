// Package risk derives a composite risk score and tier for a rent-to-own
// application from affordability output, a credit-quality indicator, and
// market-trend volatility.
package risk

import (
	"fmt"

	"github.com/Mackliffe/rent2own-engine/internal/domain/afford"
)

// Default scoring configuration.
const (
	defaultAffordabilityWeight = 40
	defaultCreditWeight        = 35
	defaultMarketWeight        = 25
	defaultLowCutoff           = 75
	defaultModerateCutoff      = 50
	defaultHighCutoff          = 25
	defaultCreditScaleMax      = 100
	defaultVolatilityReference = 0.25
	defaultDownPaymentStep     = 5
	maxScore                   = 100
)

// Tier is the discrete classification of a composite score.
type Tier string

const (
	TierLow      Tier = "low"
	TierModerate Tier = "moderate"
	TierHigh     Tier = "high"
	TierDeclined Tier = "declined"
)

// Inputs collects everything the scorer consumes.
type Inputs struct {
	// Affordability is the evaluator's output for the proposed payment.
	Affordability afford.Result

	// CreditQuality is an ordinal indicator on [0, scale max].
	CreditQuality float64

	// TrendVolatility is the segment's volatility from the trend aggregator.
	TrendVolatility float64
}

// Assessment is the scorer's output. The down-payment adjustment is advisory;
// enforcement is the caller's concern.
type Assessment struct {
	Score                            float64 `json:"score"`
	Tier                             Tier    `json:"tier"`
	RecommendedDownPaymentAdjustment float64 `json:"recommended_down_payment_adjustment"`
}

// Scorer combines normalized components into a composite score on [0,100].
type Scorer struct {
	affordabilityWeight float64
	creditWeight        float64
	marketWeight        float64
	lowCutoff           float64
	moderateCutoff      float64
	highCutoff          float64
	creditScaleMax      float64
	volatilityReference float64
	downPaymentStep     float64
}

// NewScorer creates a Scorer with default weights and cutoffs, overridable
// via options.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		affordabilityWeight: defaultAffordabilityWeight,
		creditWeight:        defaultCreditWeight,
		marketWeight:        defaultMarketWeight,
		lowCutoff:           defaultLowCutoff,
		moderateCutoff:      defaultModerateCutoff,
		highCutoff:          defaultHighCutoff,
		creditScaleMax:      defaultCreditScaleMax,
		volatilityReference: defaultVolatilityReference,
		downPaymentStep:     defaultDownPaymentStep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the composite risk assessment.
func (s *Scorer) Score(in Inputs) (Assessment, error) {
	if in.CreditQuality < 0 || in.CreditQuality > s.creditScaleMax {
		return Assessment{}, fmt.Errorf("%w: got %v, scale [0,%v]",
			ErrInvalidRiskInput, in.CreditQuality, s.creditScaleMax)
	}
	if in.TrendVolatility < 0 {
		return Assessment{}, fmt.Errorf("%w: volatility must be non-negative, got %v",
			ErrInvalidRiskInput, in.TrendVolatility)
	}

	// Each component normalized to [0,100]; higher means safer.
	affordComponent := maxScore * clamp01(1-in.Affordability.Ratio)
	creditComponent := maxScore * in.CreditQuality / s.creditScaleMax
	marketComponent := maxScore * clamp01(1-in.TrendVolatility/s.volatilityReference)

	total := s.affordabilityWeight + s.creditWeight + s.marketWeight
	score := (s.affordabilityWeight*affordComponent +
		s.creditWeight*creditComponent +
		s.marketWeight*marketComponent) / total

	tier := s.tierFor(score)

	return Assessment{
		Score:                            score,
		Tier:                             tier,
		RecommendedDownPaymentAdjustment: s.downPaymentAdjustment(tier, in.TrendVolatility),
	}, nil
}

func (s *Scorer) tierFor(score float64) Tier {
	switch {
	case score >= s.lowCutoff:
		return TierLow
	case score >= s.moderateCutoff:
		return TierModerate
	case score >= s.highCutoff:
		return TierHigh
	default:
		return TierDeclined
	}
}

// downPaymentAdjustment grows with volatility and with tiers above moderate,
// one step per tier.
func (s *Scorer) downPaymentAdjustment(tier Tier, vol float64) float64 {
	steps := 0.0
	switch tier {
	case TierHigh:
		steps = 1
	case TierDeclined:
		steps = 2
	}
	return s.downPaymentStep * (steps + clamp01(vol/s.volatilityReference))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

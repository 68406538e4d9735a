package risk

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithWeights sets the composite weights for the affordability, credit and
// market-stability components. Non-positive sums are ignored.
func WithWeights(affordability, credit, market float64) Option {
	return func(s *Scorer) {
		if affordability >= 0 && credit >= 0 && market >= 0 && affordability+credit+market > 0 {
			s.affordabilityWeight = affordability
			s.creditWeight = credit
			s.marketWeight = market
		}
	}
}

// WithTierCutoffs sets the score boundaries for the low, moderate and high
// tiers. Cutoffs must be strictly descending.
func WithTierCutoffs(low, moderate, high float64) Option {
	return func(s *Scorer) {
		if low > moderate && moderate > high && high > 0 {
			s.lowCutoff = low
			s.moderateCutoff = moderate
			s.highCutoff = high
		}
	}
}

// WithCreditScale sets the maximum of the credit-quality ordinal scale.
func WithCreditScale(max float64) Option {
	return func(s *Scorer) {
		if max > 0 {
			s.creditScaleMax = max
		}
	}
}

// WithVolatilityReference sets the volatility at which the market-stability
// component bottoms out.
func WithVolatilityReference(ref float64) Option {
	return func(s *Scorer) {
		if ref > 0 {
			s.volatilityReference = ref
		}
	}
}

// WithDownPaymentStep sets the advisory down-payment adjustment, in
// percentage points, applied per tier step above moderate.
func WithDownPaymentStep(step float64) Option {
	return func(s *Scorer) {
		if step >= 0 {
			s.downPaymentStep = step
		}
	}
}

package afford

// Option applies a configuration option to the Evaluator.
type Option func(*Evaluator)

// WithThresholds overrides the verdict thresholds. A ratio at or below
// qualify passes outright; a ratio at or below conditional passes with
// conditions; anything above fails. Invalid orderings are ignored.
func WithThresholds(qualify, conditional float64) Option {
	return func(e *Evaluator) {
		if qualify > 0 && conditional > qualify {
			e.qualifyThreshold = qualify
			e.conditionalThreshold = conditional
		}
	}
}

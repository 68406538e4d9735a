package trend

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithFlatTolerance sets the flatness tolerance as a fraction of the mean
// price. A per-period slope within the tolerance band is reported as flat.
func WithFlatTolerance(eps float64) Option {
	return func(a *Aggregator) {
		if eps >= 0 {
			a.flatTolerance = eps
		}
	}
}

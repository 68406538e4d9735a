package scenario

import "errors"

// Package sentinel errors.
var (
	// ErrInvalidScenario indicates an unusable scenario configuration.
	ErrInvalidScenario = errors.New("invalid scenario")

	// ErrVerificationFailed indicates a scenario run produced results
	// that violate an engine invariant.
	ErrVerificationFailed = errors.New("verification failed")
)

package risk

import "errors"

// Sentinel kinds for risk scoring errors.
var (
	ErrInvalidRiskInput = errors.New("credit quality outside declared scale")
)

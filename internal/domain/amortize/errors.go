package amortize

import "errors"

// Sentinel kinds for amortization errors.
var (
	ErrInvalidTerms = errors.New("invalid loan terms")
)

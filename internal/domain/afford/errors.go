package afford

import "errors"

// Sentinel kinds for affordability errors.
var (
	ErrInvalidIncome = errors.New("monthly income must be positive")
)

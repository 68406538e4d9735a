package trend

import "errors"

// Sentinel kinds for trend aggregation errors.
var (
	ErrInsufficientData = errors.New("price series needs at least 2 points")
)

package rank

import "errors"

// Sentinel kinds for ranking errors.
var (
	ErrOverBudget = errors.New("candidate price exceeds buyer budget")
)

package glicko

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrCalculationFailed marks an update whose volatility solve did not
	// converge or produced a non-finite value. The caller must keep both
	// pre-update ratings.
	ErrCalculationFailed = errors.New("glicko calculation failed")
)

package sim

import "errors"

var (
	// ErrZeroArrivals is returned when averages would be taken over an empty trace.
	ErrZeroArrivals = errors.New("no arrivals within horizon")

	// ErrNonPositiveParameter is returned for rates, horizons or server
	// counts that are zero, negative, NaN or infinite.
	ErrNonPositiveParameter = errors.New("parameter must be positive and finite")

	// ErrInvalidTrace is returned when a caller-supplied trace is malformed.
	ErrInvalidTrace = errors.New("invalid trace")

	// ErrSearchNonConvergence is returned when the minimum-server search
	// reaches its server cap without observing zero queueing time.
	ErrSearchNonConvergence = errors.New("minimum-server search did not converge")
)

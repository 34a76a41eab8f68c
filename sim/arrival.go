package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// maxArrivalPrealloc bounds the capacity reserved up front for arrivals.
const maxArrivalPrealloc = 1 << 22

// GenerateArrivals draws a Poisson arrival process with rate lambda over
// [0, horizon). Inter-arrival gaps are exponential with mean 1/lambda and
// are accumulated from time 0.
//
// Generation stops at the first cumulative time >= horizon, and that
// boundary-crossing timestamp is kept as the last element. Callers must
// tolerate one arrival at or past the horizon. The rng is drawn exactly
// len(result) times.
func GenerateArrivals(rng *rand.Rand, lambda, horizon float64) ([]float64, error) {
	if err := validateFinitePositive("arrival rate", lambda); err != nil {
		return nil, err
	}
	if err := validateFinitePositive("horizon", horizon); err != nil {
		return nil, err
	}

	// λT is the expected count below the horizon; +1 for the crossing arrival.
	hint := math.Min(lambda*horizon, maxArrivalPrealloc)
	arrivals := make([]float64, 0, int(hint)+1)
	current := 0.0
	for current < horizon {
		current += rng.ExpFloat64() / lambda
		arrivals = append(arrivals, current)
	}
	return arrivals, nil
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f: %w", name, val, ErrNonPositiveParameter)
	}
	if val <= 0 {
		return fmt.Errorf("%s must be positive, got %f: %w", name, val, ErrNonPositiveParameter)
	}
	return nil
}

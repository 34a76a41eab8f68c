package sim

import (
	"fmt"
	"math/rand"
)

// GenerateServiceTimes draws k independent exponential service durations
// with mean 1/mu. The i-th duration belongs to the i-th arrival.
func GenerateServiceTimes(rng *rand.Rand, mu float64, k int) ([]float64, error) {
	if err := validateFinitePositive("service rate", mu); err != nil {
		return nil, err
	}
	if k < 0 {
		return nil, fmt.Errorf("service count must be non-negative, got %d: %w", k, ErrNonPositiveParameter)
	}
	services := make([]float64, k)
	for i := range services {
		services[i] = rng.ExpFloat64() / mu
	}
	return services, nil
}

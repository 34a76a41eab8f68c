package sim

import (
	"fmt"
	"math"
	"slices"
)

// Trace is a fixed pairing of arrival timestamps and service durations.
// The i-th service belongs to the i-th arrival. A Trace is immutable once
// built, so the same Trace can be evaluated against any number of server
// configurations.
type Trace struct {
	arrivals []float64
	services []float64
}

// NewTrace builds a Trace from caller-supplied slices. The slices are copied.
// Arrivals must be finite, non-negative and non-decreasing; services must be
// finite and non-negative; both must have the same length.
func NewTrace(arrivals, services []float64) (*Trace, error) {
	if len(arrivals) != len(services) {
		return nil, fmt.Errorf("%d arrivals but %d services: %w", len(arrivals), len(services), ErrInvalidTrace)
	}
	for i, a := range arrivals {
		if math.IsNaN(a) || math.IsInf(a, 0) || a < 0 {
			return nil, fmt.Errorf("arrival[%d] = %f must be finite and non-negative: %w", i, a, ErrInvalidTrace)
		}
		if i > 0 && a < arrivals[i-1] {
			return nil, fmt.Errorf("arrival[%d] = %f precedes arrival[%d] = %f: %w", i, a, i-1, arrivals[i-1], ErrInvalidTrace)
		}
	}
	for i, s := range services {
		if math.IsNaN(s) || math.IsInf(s, 0) || s < 0 {
			return nil, fmt.Errorf("service[%d] = %f must be finite and non-negative: %w", i, s, ErrInvalidTrace)
		}
	}
	return &Trace{arrivals: slices.Clone(arrivals), services: slices.Clone(services)}, nil
}

// GenerateTrace draws a fresh trace: Poisson arrivals at rate lambda over the
// horizon from the arrivals subsystem, then one exponential service per
// arrival at rate mu from the services subsystem. Repeated calls on the same
// PartitionedRNG continue both streams and return different traces.
func GenerateTrace(rng *PartitionedRNG, lambda, mu, horizon float64) (*Trace, error) {
	// Validate mu before touching the arrival stream.
	if err := validateFinitePositive("service rate", mu); err != nil {
		return nil, err
	}
	arrivals, err := GenerateArrivals(rng.ForSubsystem(SubsystemArrivals), lambda, horizon)
	if err != nil {
		return nil, err
	}
	services, err := GenerateServiceTimes(rng.ForSubsystem(SubsystemServices), mu, len(arrivals))
	if err != nil {
		return nil, err
	}
	return &Trace{arrivals: arrivals, services: services}, nil
}

// Len returns the number of arrivals in the trace.
func (t *Trace) Len() int {
	return len(t.arrivals)
}

// Arrivals returns a copy of the arrival timestamps.
func (t *Trace) Arrivals() []float64 {
	return slices.Clone(t.arrivals)
}

// Services returns a copy of the service durations.
func (t *Trace) Services() []float64 {
	return slices.Clone(t.services)
}

// TotalService returns the sum of all service durations.
func (t *Trace) TotalService() float64 {
	total := 0.0
	for _, s := range t.services {
		total += s
	}
	return total
}

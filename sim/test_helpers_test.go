package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// mustTrace builds a fixed trace or fails the test.
func mustTrace(t *testing.T, arrivals, services []float64) *Trace {
	t.Helper()
	tr, err := NewTrace(arrivals, services)
	require.NoError(t, err)
	return tr
}

// mustGenerateTrace draws a trace from a fresh RNG on seed.
func mustGenerateTrace(t *testing.T, seed int64, lambda, mu, horizon float64) *Trace {
	t.Helper()
	tr, err := GenerateTrace(NewPartitionedRNG(NewSimulationKey(seed)), lambda, mu, horizon)
	require.NoError(t, err)
	return tr
}

// threeArrivals is the hand-checked trace used across simulator tests:
// arrivals 0.5, 0.6, 3.0 each needing 1.0 of service.
func threeArrivals(t *testing.T) *Trace {
	return mustTrace(t, []float64{0.5, 0.6, 3.0}, []float64{1.0, 1.0, 1.0})
}

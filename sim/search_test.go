package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMinServersForTrace_HandCheckedTrace(t *testing.T) {
	// GIVEN the trace that queues 0.9s on one server and 0 on two
	res, err := FindMinServersForTrace(threeArrivals(t), 5, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Servers)
	assert.Equal(t, SearchFixedTrace, res.Mode)
	require.Len(t, res.Attempts, 2)
	assert.InDelta(t, 0.9, res.Attempts[0].TotalQueueTime, 1e-12)
	assert.Equal(t, SearchAttempt{Servers: 2, TotalQueueTime: 0}, res.Attempts[1])
}

func TestFindMinServersForTrace_SimultaneousArrivals_OneServerEach(t *testing.T) {
	// GIVEN three positive-length jobs arriving together
	tr := mustTrace(t, []float64{1, 1, 1}, []float64{1, 1, 1})

	res, err := FindMinServersForTrace(tr, 5, 0)
	require.NoError(t, err)

	// THEN the upper bound of one server per arrival is reached exactly
	assert.Equal(t, 3, res.Servers)
	assert.LessOrEqual(t, res.Servers, tr.Len())
}

func TestFindMinServersForTrace_CapReached(t *testing.T) {
	tr := mustTrace(t, []float64{1, 1, 1}, []float64{1, 1, 1})

	_, err := FindMinServersForTrace(tr, 5, 2)

	assert.True(t, errors.Is(err, ErrSearchNonConvergence), "got %v", err)
}

func TestFindMinServersForTrace_EmptyTrace(t *testing.T) {
	_, err := FindMinServersForTrace(mustTrace(t, nil, nil), 5, 0)
	assert.True(t, errors.Is(err, ErrZeroArrivals), "got %v", err)
}

func TestFindMinServers_FixedTrace_ReturnsSmallestZeroQueueCount(t *testing.T) {
	// GIVEN λ=40, μ=10 over one minute
	cfg := SearchConfig{ArrivalRate: 40, ServiceRate: 10, Horizon: 60}

	// WHEN searched on seed 42
	res, err := FindMinServers(NewPartitionedRNG(NewSimulationKey(42)), cfg)
	require.NoError(t, err)

	// THEN the trace regenerated from the same seed queues at c-1 and not at c
	tr := mustGenerateTrace(t, 42, 40, 10, 60)
	assert.LessOrEqual(t, res.Servers, tr.Len())
	at, err := SimulateMultiServer(tr, 60, res.Servers)
	require.NoError(t, err)
	assert.Equal(t, 0.0, at.TotalQueueTime)
	if res.Servers > 1 {
		below, err := SimulateMultiServer(tr, 60, res.Servers-1)
		require.NoError(t, err)
		assert.Greater(t, below.TotalQueueTime, 0.0)
	}
	assert.Len(t, res.Attempts, res.Servers)

	// AND at least the stable minimum of 5 servers is needed for 4 Erlangs
	assert.GreaterOrEqual(t, res.Servers, 5)
}

func TestFindMinServers_FixedTrace_Deterministic(t *testing.T) {
	cfg := SearchConfig{ArrivalRate: 40, ServiceRate: 10, Horizon: 60, Mode: SearchFixedTrace}

	a, err := FindMinServers(NewPartitionedRNG(NewSimulationKey(3)), cfg)
	require.NoError(t, err)
	b, err := FindMinServers(NewPartitionedRNG(NewSimulationKey(3)), cfg)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestFindMinServers_Resample_Converges(t *testing.T) {
	// GIVEN light traffic so a handful of servers clears every queue
	cfg := SearchConfig{ArrivalRate: 2, ServiceRate: 10, Horizon: 10, Mode: SearchResample}

	res, err := FindMinServers(NewPartitionedRNG(NewSimulationKey(42)), cfg)
	require.NoError(t, err)

	assert.Equal(t, SearchResample, res.Mode)
	assert.GreaterOrEqual(t, res.Servers, 1)
	assert.Len(t, res.Attempts, res.Servers)
	assert.Equal(t, 0.0, res.Attempts[len(res.Attempts)-1].TotalQueueTime)
}

func TestFindMinServers_Resample_CapReached(t *testing.T) {
	// GIVEN 40 Erlangs offered to at most one server
	cfg := SearchConfig{ArrivalRate: 40, ServiceRate: 1, Horizon: 10, Mode: SearchResample, MaxServers: 1}

	_, err := FindMinServers(NewPartitionedRNG(NewSimulationKey(42)), cfg)

	assert.True(t, errors.Is(err, ErrSearchNonConvergence), "got %v", err)
}

func TestFindMinServers_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  SearchConfig
		want error
	}{
		{"zero arrival rate", SearchConfig{ServiceRate: 1, Horizon: 1}, ErrNonPositiveParameter},
		{"zero service rate", SearchConfig{ArrivalRate: 1, Horizon: 1}, ErrNonPositiveParameter},
		{"zero horizon", SearchConfig{ArrivalRate: 1, ServiceRate: 1}, ErrNonPositiveParameter},
		{"negative cap", SearchConfig{ArrivalRate: 1, ServiceRate: 1, Horizon: 1, MaxServers: -1}, ErrNonPositiveParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindMinServers(NewPartitionedRNG(NewSimulationKey(1)), tt.cfg)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	_, err := FindMinServers(NewPartitionedRNG(NewSimulationKey(1)),
		SearchConfig{ArrivalRate: 1, ServiceRate: 1, Horizon: 1, Mode: "binary"})
	assert.Error(t, err)
}

func TestIsValidSearchMode(t *testing.T) {
	assert.True(t, IsValidSearchMode(""))
	assert.True(t, IsValidSearchMode("fixed-trace"))
	assert.True(t, IsValidSearchMode("resample"))
	assert.False(t, IsValidSearchMode("bisect"))
}

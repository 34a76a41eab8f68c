package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateSingleServer_HandCheckedTrace(t *testing.T) {
	// GIVEN arrivals [0.5, 0.6, 3.0] with 1.0 service each
	tr := threeArrivals(t)

	// WHEN simulated on one server over a 5s horizon
	res, err := SimulateSingleServer(tr, 5)
	require.NoError(t, err)

	// THEN only the second arrival waits, for 1.5 - 0.6
	assert.InDeltaSlice(t, []float64{1.5, 2.5, 4.0}, res.Departures, 1e-12)
	assert.InDelta(t, 0.9, res.TotalQueueTime, 1e-12)
	assert.InDelta(t, 0.3, res.AvgQueueTime, 1e-12)
	assert.InDelta(t, 0.3, res.AvgQueueLength, 1e-12)
	assert.InDelta(t, 4.0, res.LastDeparture, 1e-12)
	assert.Equal(t, 3, res.RequestsServed)
	assert.InDeltaSlice(t, []float64{3.0}, res.BusyTime, 1e-12)
	assert.InDeltaSlice(t, []float64{2.0}, res.IdleTime, 1e-12)
	assert.Nil(t, res.Assignments)
}

func TestSimulateSingleServer_FirstArrivalNeverQueues(t *testing.T) {
	// GIVEN a lone arrival at time 0
	tr := mustTrace(t, []float64{0}, []float64{2})

	res, err := SimulateSingleServer(tr, 10)
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.TotalQueueTime)
	assert.Equal(t, 0.0, res.AvgQueueLength)
	assert.Equal(t, 2.0, res.LastDeparture)
}

func TestSimulateSingleServer_ArrivalAtDeparture_QueuesZero(t *testing.T) {
	// arrival exactly at the previous departure takes the busy branch with zero wait
	tr := mustTrace(t, []float64{0, 1}, []float64{1, 1})

	res, err := SimulateSingleServer(tr, 10)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2}, res.Departures)
	assert.Equal(t, 0.0, res.TotalQueueTime)
}

func TestSimulateSingleServer_DeparturesNonDecreasing(t *testing.T) {
	// GIVEN a heavily loaded generated trace (ρ = 0.9)
	tr := mustGenerateTrace(t, 42, 9, 10, 500)

	res, err := SimulateSingleServer(tr, 500)
	require.NoError(t, err)

	arrivals, services := tr.Arrivals(), tr.Services()
	for i := range res.Departures {
		if i > 0 && res.Departures[i] < res.Departures[i-1] {
			t.Fatalf("departure[%d] = %f < departure[%d] = %f", i, res.Departures[i], i-1, res.Departures[i-1])
		}
		if res.Departures[i] < arrivals[i]+services[i] {
			t.Fatalf("departure[%d] = %f before arrival+service %f", i, res.Departures[i], arrivals[i]+services[i])
		}
	}
}

func TestSimulateSingleServer_NegativeIdleTime_NotClamped(t *testing.T) {
	// GIVEN service that runs 5s past a 5s horizon
	tr := mustTrace(t, []float64{0}, []float64{10})

	res, err := SimulateSingleServer(tr, 5)
	require.NoError(t, err)

	assert.Equal(t, []float64{-5}, res.IdleTime)
	assert.True(t, res.HasBacklog())
}

func TestSimulateSingleServer_ZeroArrivals(t *testing.T) {
	_, err := SimulateSingleServer(mustTrace(t, nil, nil), 10)
	assert.True(t, errors.Is(err, ErrZeroArrivals), "got %v", err)
}

func TestSimulateSingleServer_InvalidHorizon(t *testing.T) {
	_, err := SimulateSingleServer(threeArrivals(t), 0)
	assert.True(t, errors.Is(err, ErrNonPositiveParameter), "got %v", err)
}

func TestSimulateSingleServer_Idempotent(t *testing.T) {
	tr := mustGenerateTrace(t, 7, 40, 100, 100)

	first, err := SimulateSingleServer(tr, 100)
	require.NoError(t, err)
	second, err := SimulateSingleServer(tr, 100)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunSingleServer_SameSeed_SameResult(t *testing.T) {
	a, err := RunSingleServer(NewPartitionedRNG(NewSimulationKey(42)), 40, 100, 60)
	require.NoError(t, err)
	b, err := RunSingleServer(NewPartitionedRNG(NewSimulationKey(42)), 40, 100, 60)
	require.NoError(t, err)

	assert.Equal(t, a.MetricsMap(), b.MetricsMap())
}

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// SimulateSingleServer advances one FCFS server across the trace.
//
// The first arrival never queues. For every later arrival the server is
// idle when the arrival is strictly after the previous departure; otherwise
// the arrival waits for that departure. The queue-length sample for arrival
// i is max(0, departure[i-1] - arrival[i]) and is 0 for the first arrival.
//
// Returns ErrZeroArrivals for an empty trace.
func SimulateSingleServer(tr *Trace, horizon float64) (*Result, error) {
	if err := validateFinitePositive("horizon", horizon); err != nil {
		return nil, err
	}
	n := tr.Len()
	if n == 0 {
		return nil, fmt.Errorf("single-server simulation: %w", ErrZeroArrivals)
	}

	departures := make([]float64, n)
	queueLengths := make([]float64, n)
	busy := 0.0
	totalQueue := 0.0

	for i, arrival := range tr.arrivals {
		service := tr.services[i]
		switch {
		case i == 0:
			departures[i] = arrival + service
		case arrival > departures[i-1]:
			departures[i] = arrival + service
		default:
			wait := departures[i-1] - arrival
			totalQueue += wait
			queueLengths[i] = wait
			departures[i] = departures[i-1] + service
		}
		busy += service
	}

	busyTime := []float64{busy}
	res := &Result{
		Model:          ModelSingleServer,
		Servers:        1,
		Horizon:        horizon,
		RequestsServed: n,
		BusyTime:       busyTime,
		IdleTime:       idleTimes(horizon, busyTime),
		TotalQueueTime: totalQueue,
		AvgQueueTime:   totalQueue / float64(n),
		AvgQueueLength: stat.Mean(queueLengths, nil),
		LastDeparture:  departures[n-1],
		Departures:     departures,
	}
	logrus.Debugf("single-server: %d arrivals, total queue time %.6f, last departure %.6f",
		n, totalQueue, res.LastDeparture)
	return res, nil
}

// RunSingleServer generates a fresh trace from rng and simulates it on one server.
func RunSingleServer(rng *PartitionedRNG, lambda, mu, horizon float64) (*Result, error) {
	tr, err := GenerateTrace(rng, lambda, mu, horizon)
	if err != nil {
		return nil, err
	}
	return SimulateSingleServer(tr, horizon)
}

package sim

import (
	"fmt"
	"math"
)

// QueueModel holds the steady-state M/M/c predictions for one configuration.
// Stable is false when utilization >= 1; the waiting measures are then +Inf.
type QueueModel struct {
	ArrivalRate float64
	ServiceRate float64
	Servers     int

	OfferedLoad    float64 // λ/μ in Erlangs
	Utilization    float64 // λ/(cμ)
	Stable         bool
	ProbWait       float64 // Erlang C: probability an arrival has to queue
	AvgWaitTime    float64 // Wq
	AvgQueueLength float64 // Lq = λ·Wq
	AvgSystemTime  float64 // W = Wq + 1/μ
}

// ErlangC solves the M/M/c queue for the given rates and server count.
// M/M/1 is the servers == 1 case.
func ErlangC(lambda, mu float64, servers int) (QueueModel, error) {
	if err := validateFinitePositive("arrival rate", lambda); err != nil {
		return QueueModel{}, err
	}
	if err := validateFinitePositive("service rate", mu); err != nil {
		return QueueModel{}, err
	}
	if servers <= 0 {
		return QueueModel{}, fmt.Errorf("server count must be positive, got %d: %w", servers, ErrNonPositiveParameter)
	}

	c := float64(servers)
	load := lambda / mu
	m := QueueModel{
		ArrivalRate: lambda,
		ServiceRate: mu,
		Servers:     servers,
		OfferedLoad: load,
		Utilization: load / c,
	}
	if m.Utilization >= 1 {
		m.ProbWait = 1
		m.AvgWaitTime = math.Inf(1)
		m.AvgQueueLength = math.Inf(1)
		m.AvgSystemTime = math.Inf(1)
		return m, nil
	}

	// Erlang B by recurrence, B(0)=1, B(k)=a·B(k-1)/(k+a·B(k-1)), then
	// C = B/(1-ρ(1-B)). Avoids the factorials of the closed form.
	b := 1.0
	for k := 1; k <= servers; k++ {
		b = load * b / (float64(k) + load*b)
	}
	m.Stable = true
	m.ProbWait = b / (1 - m.Utilization*(1-b))
	m.AvgWaitTime = m.ProbWait / (c*mu - lambda)
	m.AvgQueueLength = lambda * m.AvgWaitTime
	m.AvgSystemTime = m.AvgWaitTime + 1/mu
	return m, nil
}

// MinStableServers returns the smallest server count with utilization < 1.
func MinStableServers(lambda, mu float64) (int, error) {
	if err := validateFinitePositive("arrival rate", lambda); err != nil {
		return 0, err
	}
	if err := validateFinitePositive("service rate", mu); err != nil {
		return 0, err
	}
	return int(math.Floor(lambda/mu)) + 1, nil
}

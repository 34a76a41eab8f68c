package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// SearchMode selects how the minimum-server search draws its traffic.
type SearchMode string

const (
	// SearchFixedTrace generates one trace and evaluates every candidate
	// server count against it. Deterministic for a given seed.
	SearchFixedTrace SearchMode = "fixed-trace"
	// SearchResample draws a fresh trace for every candidate server count.
	// The stopping point is noisy and seed-sensitive.
	SearchResample SearchMode = "resample"
)

// DefaultResampleMaxServers caps the resample search when no cap is set.
const DefaultResampleMaxServers = 10000

// IsValidSearchMode reports whether name is a recognized search mode.
// Empty defaults to SearchFixedTrace.
func IsValidSearchMode(name string) bool {
	switch SearchMode(name) {
	case "", SearchFixedTrace, SearchResample:
		return true
	}
	return false
}

// SearchConfig parameterizes FindMinServers.
type SearchConfig struct {
	ArrivalRate float64
	ServiceRate float64
	Horizon     float64
	Mode        SearchMode // "" means SearchFixedTrace
	MaxServers  int        // 0 means the mode's default cap
}

// SearchAttempt records the outcome of one candidate server count.
type SearchAttempt struct {
	Servers        int
	TotalQueueTime float64
}

// SearchResult is the outcome of a converged minimum-server search.
type SearchResult struct {
	Servers  int // smallest server count with zero total queue time
	Mode     SearchMode
	Attempts []SearchAttempt // one per candidate, in evaluation order
}

// FindMinServers searches server counts 1, 2, ... for the first whose total
// queue time is exactly zero.
//
// In SearchFixedTrace mode one trace is drawn from rng and the search is
// delegated to FindMinServersForTrace. In SearchResample mode every candidate
// draws a new trace from the continuing rng streams.
//
// Returns ErrSearchNonConvergence when the cap is reached first.
func FindMinServers(rng *PartitionedRNG, cfg SearchConfig) (*SearchResult, error) {
	if !IsValidSearchMode(string(cfg.Mode)) {
		return nil, fmt.Errorf("unknown search mode %q; valid: %s, %s", cfg.Mode, SearchFixedTrace, SearchResample)
	}
	if cfg.MaxServers < 0 {
		return nil, fmt.Errorf("max servers must be non-negative, got %d: %w", cfg.MaxServers, ErrNonPositiveParameter)
	}
	if err := validateFinitePositive("arrival rate", cfg.ArrivalRate); err != nil {
		return nil, err
	}
	if err := validateFinitePositive("service rate", cfg.ServiceRate); err != nil {
		return nil, err
	}
	if err := validateFinitePositive("horizon", cfg.Horizon); err != nil {
		return nil, err
	}

	if cfg.Mode == SearchResample {
		return findMinServersResampling(rng, cfg)
	}
	tr, err := GenerateTrace(rng, cfg.ArrivalRate, cfg.ServiceRate, cfg.Horizon)
	if err != nil {
		return nil, err
	}
	return FindMinServersForTrace(tr, cfg.Horizon, cfg.MaxServers)
}

// FindMinServersForTrace evaluates server counts 1, 2, ... against one fixed
// trace and returns the first with zero total queue time. With maxServers 0
// the cap is the arrival count: one server per arrival never queues.
func FindMinServersForTrace(tr *Trace, horizon float64, maxServers int) (*SearchResult, error) {
	if maxServers < 0 {
		return nil, fmt.Errorf("max servers must be non-negative, got %d: %w", maxServers, ErrNonPositiveParameter)
	}
	if maxServers == 0 {
		maxServers = max(tr.Len(), 1)
	}

	result := &SearchResult{Mode: SearchFixedTrace}
	for c := 1; c <= maxServers; c++ {
		res, err := SimulateMultiServer(tr, horizon, c)
		if err != nil {
			return nil, err
		}
		if done := result.record(c, res.TotalQueueTime); done {
			return result, nil
		}
	}
	return nil, result.nonConvergence(maxServers)
}

func findMinServersResampling(rng *PartitionedRNG, cfg SearchConfig) (*SearchResult, error) {
	maxServers := cfg.MaxServers
	if maxServers == 0 {
		maxServers = DefaultResampleMaxServers
	}
	logrus.Warnf("resample search draws a new trace per candidate; result is approximate and seed-sensitive")

	result := &SearchResult{Mode: SearchResample}
	for c := 1; c <= maxServers; c++ {
		res, err := RunMultiServer(rng, cfg.ArrivalRate, cfg.ServiceRate, cfg.Horizon, c)
		if err != nil {
			return nil, err
		}
		if done := result.record(c, res.TotalQueueTime); done {
			return result, nil
		}
	}
	return nil, result.nonConvergence(maxServers)
}

// record appends an attempt and reports whether it ends the search.
func (r *SearchResult) record(servers int, totalQueue float64) bool {
	r.Attempts = append(r.Attempts, SearchAttempt{Servers: servers, TotalQueueTime: totalQueue})
	logrus.Debugf("search(%s): %d servers -> total queue time %.6f", r.Mode, servers, totalQueue)
	if totalQueue == 0 {
		r.Servers = servers
		return true
	}
	return false
}

func (r *SearchResult) nonConvergence(maxServers int) error {
	last := r.Attempts[len(r.Attempts)-1]
	return fmt.Errorf("%s search stopped at %d servers with total queue time %f: %w",
		r.Mode, maxServers, last.TotalQueueTime, ErrSearchNonConvergence)
}

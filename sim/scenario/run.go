package scenario

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/queue-sim/sim"
)

// ProviderOutcome is everything computed for one provider.
type ProviderOutcome struct {
	Provider ProviderSpec
	Result   *sim.Result
	Analytic sim.QueueModel
	Search   *sim.SearchResult // nil unless Provider.Search
}

// Outcome collects the per-provider outcomes of one scenario run, in
// provider order.
type Outcome struct {
	Seed        int64
	Horizon     float64
	ArrivalRate float64
	Providers   []ProviderOutcome
}

// Run validates the spec and simulates every provider. Each provider draws
// from its own fork of the scenario seed, and its search from another, so
// results do not depend on provider order.
func Run(spec *ScenarioSpec) (*Outcome, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	root := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed))
	out := &Outcome{
		Seed:        spec.Seed,
		Horizon:     spec.Horizon,
		ArrivalRate: spec.ArrivalRate,
		Providers:   make([]ProviderOutcome, 0, len(spec.Providers)),
	}
	for _, p := range spec.Providers {
		po, err := runProvider(root, spec, p)
		if err != nil {
			return nil, fmt.Errorf("provider %q: %w", p.Name, err)
		}
		out.Providers = append(out.Providers, *po)
	}
	return out, nil
}

func runProvider(root *sim.PartitionedRNG, spec *ScenarioSpec, p ProviderSpec) (*ProviderOutcome, error) {
	logrus.Infof("Simulating %s: model=%s, λ=%v, μ=%v, servers=%d, horizon=%v",
		p.Name, p.Model, spec.ArrivalRate, p.ServiceRate, p.ServerCount(), spec.Horizon)

	rng := root.Fork(sim.SubsystemProvider(p.Name))
	var (
		res *sim.Result
		err error
	)
	if sim.Model(p.Model) == sim.ModelSingleServer {
		res, err = sim.RunSingleServer(rng, spec.ArrivalRate, p.ServiceRate, spec.Horizon)
	} else {
		res, err = sim.RunMultiServer(rng, spec.ArrivalRate, p.ServiceRate, spec.Horizon, p.ServerCount())
	}
	if err != nil {
		return nil, err
	}
	if res.HasBacklog() {
		logrus.Warnf("%s: busy time exceeds the %vs horizon on at least one server (idle time %v)",
			p.Name, spec.Horizon, res.IdleTime)
	}

	analytic, err := sim.ErlangC(spec.ArrivalRate, p.ServiceRate, p.ServerCount())
	if err != nil {
		return nil, err
	}
	if !analytic.Stable {
		logrus.Warnf("%s: utilization %.2f >= 1, the queue grows without bound", p.Name, analytic.Utilization)
	}

	po := &ProviderOutcome{Provider: p, Result: res, Analytic: analytic}
	if p.Search {
		sr, err := sim.FindMinServers(root.Fork(sim.SubsystemSearch(p.Name)), sim.SearchConfig{
			ArrivalRate: spec.ArrivalRate,
			ServiceRate: p.ServiceRate,
			Horizon:     spec.Horizon,
			Mode:        sim.SearchMode(spec.Search.Mode),
			MaxServers:  spec.Search.MaxServers,
		})
		if err != nil {
			return nil, err
		}
		logrus.Infof("%s: minimum servers without queueing = %d (%d candidates)", p.Name, sr.Servers, len(sr.Attempts))
		po.Search = sr
	}
	return po, nil
}

package report

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/queue-sim/sim/scenario"
)

// ScenarioOutput is the JSON document written by SaveJSON.
type ScenarioOutput struct {
	Seed        int64            `json:"seed"`
	Horizon     float64          `json:"horizon"`
	ArrivalRate float64          `json:"arrival_rate"`
	Providers   []ProviderOutput `json:"providers"`
}

// ProviderOutput is one provider's entry in ScenarioOutput.
type ProviderOutput struct {
	Name        string         `json:"name"`
	Model       string         `json:"model"`
	ServiceRate float64        `json:"service_rate"`
	Servers     int            `json:"servers"`
	Metrics     map[string]any `json:"metrics"`
	Analytic    AnalyticOutput `json:"analytic"`
	Search      *SearchOutput  `json:"search,omitempty"`
}

// AnalyticOutput carries the M/M/c predictions. Waiting measures are
// omitted for unstable configurations since JSON has no infinity.
type AnalyticOutput struct {
	Utilization    float64  `json:"utilization"`
	Stable         bool     `json:"stable"`
	ProbWait       float64  `json:"prob_wait"`
	AvgWaitTime    *float64 `json:"avg_wait_time,omitempty"`
	AvgQueueLength *float64 `json:"avg_queue_length,omitempty"`
}

// SearchOutput is the minimum-server search outcome.
type SearchOutput struct {
	Mode              string    `json:"mode"`
	MinServers        int       `json:"min_servers"`
	CandidateQueueing []float64 `json:"candidate_queue_time"` // total queue time at 1, 2, ... servers
}

// NewScenarioOutput converts a scenario outcome into its JSON form.
func NewScenarioOutput(out *scenario.Outcome) ScenarioOutput {
	doc := ScenarioOutput{
		Seed:        out.Seed,
		Horizon:     out.Horizon,
		ArrivalRate: out.ArrivalRate,
		Providers:   make([]ProviderOutput, 0, len(out.Providers)),
	}
	for _, po := range out.Providers {
		entry := ProviderOutput{
			Name:        po.Provider.Name,
			Model:       po.Provider.Model,
			ServiceRate: po.Provider.ServiceRate,
			Servers:     po.Result.Servers,
			Metrics:     po.Result.MetricsMap(),
			Analytic: AnalyticOutput{
				Utilization: po.Analytic.Utilization,
				Stable:      po.Analytic.Stable,
				ProbWait:    po.Analytic.ProbWait,
			},
		}
		if po.Analytic.Stable && !math.IsInf(po.Analytic.AvgWaitTime, 0) {
			wq, lq := po.Analytic.AvgWaitTime, po.Analytic.AvgQueueLength
			entry.Analytic.AvgWaitTime = &wq
			entry.Analytic.AvgQueueLength = &lq
		}
		if po.Search != nil {
			queueing := make([]float64, len(po.Search.Attempts))
			for i, a := range po.Search.Attempts {
				queueing[i] = a.TotalQueueTime
			}
			entry.Search = &SearchOutput{
				Mode:              string(po.Search.Mode),
				MinServers:        po.Search.Servers,
				CandidateQueueing: queueing,
			}
		}
		doc.Providers = append(doc.Providers, entry)
	}
	return doc
}

// SaveJSON writes the outcome as indented JSON to path.
func SaveJSON(path string, out *scenario.Outcome) error {
	data, err := json.MarshalIndent(NewScenarioOutput(out), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing results to %s: %w", path, err)
	}
	logrus.Debugf("Wrote results to %s", path)
	return nil
}

// Package report renders simulation outcomes as text, JSON and
// Prometheus textfile metrics.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/inference-sim/queue-sim/sim"
	"github.com/inference-sim/queue-sim/sim/scenario"
)

// metricLabels maps metric keys to their report labels.
var metricLabels = map[string]string{
	sim.MetricRequestsServed:    "Requests served",
	sim.MetricBusyTime:          "Busy time",
	sim.MetricBusyTimePerServer: "Busy time per server",
	sim.MetricIdleTime:          "Idle time",
	sim.MetricIdleTimePerServer: "Idle time per server",
	sim.MetricTotalQueueTime:    "Total time in queue",
	sim.MetricAvgQueueTime:      "Average time in queue",
	sim.MetricAvgQueueLength:    "Average requests in queue per second",
	sim.MetricLastDeparture:     "Last departure time",
}

var heading = color.New(color.FgCyan, color.Bold)

// Label returns the report label for a metric key, or the key itself.
func Label(key string) string {
	if label, ok := metricLabels[key]; ok {
		return label
	}
	return key
}

// Print writes one labelled line per metric of res under a title heading.
func Print(w io.Writer, title string, res *sim.Result) {
	heading.Fprintf(w, "=== %s ===\n", title)
	for _, m := range res.Metrics() {
		fmt.Fprintf(w, "%-38s: %s\n", Label(m.Key), formatValue(m.Value))
	}
}

// PrintAnalytic writes the M/M/c predictions next to a simulated result.
func PrintAnalytic(w io.Writer, m sim.QueueModel) {
	fmt.Fprintf(w, "%-38s: %.4f\n", "Utilization (theory)", m.Utilization)
	if !m.Stable {
		fmt.Fprintf(w, "%-38s: unstable\n", "Average time in queue (theory)")
		return
	}
	fmt.Fprintf(w, "%-38s: %.4f\n", "Probability of waiting (theory)", m.ProbWait)
	fmt.Fprintf(w, "%-38s: %.6f\n", "Average time in queue (theory)", m.AvgWaitTime)
}

// PrintSearch writes the outcome of a minimum-server search.
func PrintSearch(w io.Writer, provider string, sr *sim.SearchResult) {
	fmt.Fprintf(w, "Minimum servers for %s without queueing: %d (%s, %d candidates)\n",
		provider, sr.Servers, sr.Mode, len(sr.Attempts))
}

// PrintOutcome writes every provider of a scenario outcome.
func PrintOutcome(w io.Writer, out *scenario.Outcome) {
	for i, po := range out.Providers {
		if i > 0 {
			fmt.Fprintln(w)
		}
		Print(w, "Results for "+po.Provider.Name, po.Result)
		PrintAnalytic(w, po.Analytic)
	}
	for _, po := range out.Providers {
		if po.Search != nil {
			fmt.Fprintln(w)
			PrintSearch(w, po.Provider.Name, po.Search)
		}
	}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case int:
		return humanize.Comma(int64(val))
	case float64:
		return fmt.Sprintf("%.6f", val)
	case []float64:
		parts := make([]string, len(val))
		for i, f := range val {
			parts[i] = fmt.Sprintf("%.4f", f)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(val)
	}
}

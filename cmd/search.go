package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/queue-sim/sim"
	"github.com/inference-sim/queue-sim/sim/report"
)

var (
	arrivalRate float64 // λ, requests per second
	serviceRate float64 // μ per server, requests per second
	searchMode  string  // fixed-trace or resample
	maxServers  int     // Cap on candidate server counts (0 = mode default)
)

// searchCmd finds the smallest server pool that never queues
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find the minimum number of servers that eliminates queueing",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if !sim.IsValidSearchMode(searchMode) {
			logrus.Fatalf("Unknown search mode %q; valid: %s, %s", searchMode, sim.SearchFixedTrace, sim.SearchResample)
		}
		stable, err := sim.MinStableServers(arrivalRate, serviceRate)
		if err != nil {
			logrus.Fatalf("Invalid rates: %v", err)
		}

		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed))
		sr, err := sim.FindMinServers(rng, sim.SearchConfig{
			ArrivalRate: arrivalRate,
			ServiceRate: serviceRate,
			Horizon:     horizon,
			Mode:        sim.SearchMode(searchMode),
			MaxServers:  maxServers,
		})
		if err != nil {
			logrus.Fatalf("Search failed: %v", err)
		}
		for _, a := range sr.Attempts {
			logrus.Debugf("%d servers: total queue time %f", a.Servers, a.TotalQueueTime)
		}

		report.PrintSearch(os.Stdout, fmt.Sprintf("λ=%v, μ=%v", arrivalRate, serviceRate), sr)
		fmt.Printf("Smallest stable pool (utilization < 1): %d\n", stable)
	},
}

func init() {
	searchCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random arrival and service generation")
	searchCmd.Flags().Float64Var(&horizon, "horizon", 3600, "Simulation horizon in seconds")
	searchCmd.Flags().Float64Var(&arrivalRate, "arrival-rate", 40, "Arrival rate λ (requests per second)")
	searchCmd.Flags().Float64Var(&serviceRate, "service-rate", 10, "Service rate μ per server (requests per second)")
	searchCmd.Flags().StringVar(&searchMode, "mode", string(sim.SearchFixedTrace), "Search mode: fixed-trace or resample")
	searchCmd.Flags().IntVar(&maxServers, "max-servers", 0, "Cap on candidate server counts (0 = arrival count for fixed-trace, 10000 for resample)")

	rootCmd.AddCommand(searchCmd)
}

package cmd

import (
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/queue-sim/sim/report"
	"github.com/inference-sim/queue-sim/sim/scenario"
)

var (
	// CLI flags shared by run and search
	seed     int64   // Seed for arrival and service draws
	horizon  float64 // Simulated time span (seconds)
	logLevel string  // Log verbosity level

	// CLI flags for run
	scenarioPath string // Scenario YAML; empty uses the built-in default
	resultsPath  string // File to save results as JSON
	metricsPath  string // File to save Prometheus textfile metrics
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "queue-sim",
	Short: "Queueing simulator for single- and multi-server providers",
}

// runCmd simulates every provider of a scenario and reports the results
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate every provider in a scenario",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		spec := scenario.DefaultScenario()
		if scenarioPath != "" {
			loaded, err := scenario.LoadScenarioSpec(scenarioPath)
			if err != nil {
				logrus.Fatalf("Failed to load scenario %s: %v", scenarioPath, err)
			}
			spec = loaded
		}
		applyRunOverrides(cmd, spec)

		logrus.Infof("Starting simulation with seed=%d, horizon=%vs, λ=%v, %d providers",
			spec.Seed, spec.Horizon, spec.ArrivalRate, len(spec.Providers))
		startTime := time.Now()

		out, err := scenario.Run(spec)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		report.PrintOutcome(os.Stdout, out)

		if resultsPath != "" {
			if err := report.SaveJSON(resultsPath, out); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		if metricsPath != "" {
			collector, err := report.NewCollector(prometheus.NewRegistry())
			if err != nil {
				logrus.Fatalf("Failed to register metrics: %v", err)
			}
			collector.Observe(out)
			if err := collector.WriteTextfile(metricsPath); err != nil {
				logrus.Fatalf("%v", err)
			}
		}

		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// applyRunOverrides copies explicitly set CLI flags over the scenario values.
// Unchanged flags keep the scenario's own seed and horizon.
func applyRunOverrides(cmd *cobra.Command, spec *scenario.ScenarioSpec) {
	if cmd.Flags().Changed("seed") {
		logrus.Infof("CLI --seed %d overrides scenario seed %d", seed, spec.Seed)
		spec.Seed = seed
	}
	if cmd.Flags().Changed("horizon") {
		logrus.Infof("CLI --horizon %v overrides scenario horizon %v", horizon, spec.Horizon)
		spec.Horizon = horizon
	}
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random arrival and service generation (overrides scenario)")
	runCmd.Flags().Float64Var(&horizon, "horizon", 3600, "Simulation horizon in seconds (overrides scenario)")
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to scenario YAML (default: built-in two-provider scenario)")
	runCmd.Flags().StringVar(&resultsPath, "results-path", "", "File to save results as JSON")
	runCmd.Flags().StringVar(&metricsPath, "metrics-path", "", "File to save Prometheus textfile metrics")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}

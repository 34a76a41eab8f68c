package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/queue-sim/sim/scenario"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the built-in scenario as YAML",
	Long:  "Print the built-in two-provider scenario. Redirect to a file and edit it to use with run --scenario.",
	Run: func(cmd *cobra.Command, args []string) {
		data, err := scenario.DefaultScenario().Marshal()
		if err != nil {
			logrus.Fatalf("Failed to encode default scenario: %v", err)
		}
		if _, err := os.Stdout.Write(data); err != nil {
			logrus.Fatalf("Failed to write default scenario: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(defaultsCmd)
}

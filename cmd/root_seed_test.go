package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/queue-sim/sim/scenario"
)

// newOverrideCmd returns a command with the run override flags bound to the
// package-level flag variables.
func newOverrideCmd() *cobra.Command {
	c := &cobra.Command{Use: "run"}
	c.Flags().Int64Var(&seed, "seed", 42, "")
	c.Flags().Float64Var(&horizon, "horizon", 3600, "")
	return c
}

func TestApplyRunOverrides_UnchangedFlags_KeepScenarioValues(t *testing.T) {
	// GIVEN a scenario with its own seed and horizon, and no flags set
	spec := scenario.DefaultScenario()
	spec.Seed = 9
	spec.Horizon = 120

	applyRunOverrides(newOverrideCmd(), spec)

	// THEN the scenario values survive the flag defaults
	assert.Equal(t, int64(9), spec.Seed)
	assert.Equal(t, 120.0, spec.Horizon)
}

func TestApplyRunOverrides_ChangedFlags_Override(t *testing.T) {
	c := newOverrideCmd()
	require.NoError(t, c.Flags().Set("seed", "100"))
	require.NoError(t, c.Flags().Set("horizon", "30"))
	spec := scenario.DefaultScenario()

	applyRunOverrides(c, spec)

	assert.Equal(t, int64(100), spec.Seed)
	assert.Equal(t, 30.0, spec.Horizon)
}

// TestSeedOverride_DifferentSeeds_DifferentOutcomes verifies that a CLI seed
// override reaches the simulation.
func TestSeedOverride_DifferentSeeds_DifferentOutcomes(t *testing.T) {
	run := func(s string) *scenario.Outcome {
		c := newOverrideCmd()
		require.NoError(t, c.Flags().Set("seed", s))
		require.NoError(t, c.Flags().Set("horizon", "30"))
		spec := scenario.DefaultScenario()
		applyRunOverrides(c, spec)
		out, err := scenario.Run(spec)
		require.NoError(t, err)
		return out
	}

	a, b, again := run("100"), run("200"), run("100")

	assert.NotEqual(t, a.Providers[0].Result.Departures, b.Providers[0].Result.Departures)
	assert.Equal(t, a, again)
}

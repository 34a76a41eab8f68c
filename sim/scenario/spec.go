// Package scenario loads provider scenarios from YAML and runs them
// through the sim package.
package scenario

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/queue-sim/sim"
)

// ScenarioSpec is the top-level scenario configuration.
// Loaded from YAML via LoadScenarioSpec(path).
type ScenarioSpec struct {
	Seed        int64          `yaml:"seed"`
	Horizon     float64        `yaml:"horizon"`      // seconds of simulated time
	ArrivalRate float64        `yaml:"arrival_rate"` // λ, requests per second, shared by every provider
	Search      SearchSpec     `yaml:"search"`
	Providers   []ProviderSpec `yaml:"providers"`
}

// ProviderSpec describes one service provider.
type ProviderSpec struct {
	Name        string  `yaml:"name"`
	Model       string  `yaml:"model"`             // "single-server" or "multi-server"
	ServiceRate float64 `yaml:"service_rate"`      // μ per server, requests per second
	Servers     int     `yaml:"servers,omitempty"` // pool size; 0 means 1 for single-server
	Search      bool    `yaml:"search,omitempty"`  // also run the minimum-server search
}

// SearchSpec configures the minimum-server search.
type SearchSpec struct {
	Mode       string `yaml:"mode,omitempty"`        // "fixed-trace" (default) or "resample"
	MaxServers int    `yaml:"max_servers,omitempty"` // 0 = mode default
}

// DefaultScenario returns the two-provider comparison: one fast server
// against a pool of ten slow ones, both fed 40 requests per second for an hour.
func DefaultScenario() *ScenarioSpec {
	return &ScenarioSpec{
		Seed:        42,
		Horizon:     3600,
		ArrivalRate: 40,
		Search:      SearchSpec{Mode: string(sim.SearchFixedTrace)},
		Providers: []ProviderSpec{
			{Name: "Mountain Mega Computing", Model: string(sim.ModelSingleServer), ServiceRate: 100},
			{Name: "Pizzita Computing", Model: string(sim.ModelMultiServer), ServiceRate: 10, Servers: 10, Search: true},
		},
	}
}

// LoadScenarioSpec reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenarioSpec(path string) (*ScenarioSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return ParseScenarioSpec(data)
}

// ParseScenarioSpec decodes a YAML scenario with strict field checking.
func ParseScenarioSpec(data []byte) (*ScenarioSpec, error) {
	var spec ScenarioSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &spec, nil
}

// Marshal renders the spec as YAML.
func (s *ScenarioSpec) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate checks that all fields in the spec are valid.
func (s *ScenarioSpec) Validate() error {
	if err := validateFinitePositive("horizon", s.Horizon); err != nil {
		return err
	}
	if err := validateFinitePositive("arrival_rate", s.ArrivalRate); err != nil {
		return err
	}
	if !sim.IsValidSearchMode(s.Search.Mode) {
		return fmt.Errorf("search: unknown mode %q; valid: %s, %s", s.Search.Mode, sim.SearchFixedTrace, sim.SearchResample)
	}
	if s.Search.MaxServers < 0 {
		return fmt.Errorf("search: max_servers must be non-negative, got %d", s.Search.MaxServers)
	}
	if len(s.Providers) == 0 {
		return fmt.Errorf("at least one provider required")
	}
	seen := make(map[string]bool, len(s.Providers))
	for i := range s.Providers {
		p := &s.Providers[i]
		if err := validateProvider(p, i); err != nil {
			return err
		}
		if seen[p.Name] {
			return fmt.Errorf("provider[%d]: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

func validateProvider(p *ProviderSpec, idx int) error {
	prefix := fmt.Sprintf("provider[%d]", idx)
	if p.Name == "" {
		return fmt.Errorf("%s: name required", prefix)
	}
	if !sim.IsValidModel(p.Model) {
		return fmt.Errorf("%s: unknown model %q; valid: %s, %s", prefix, p.Model, sim.ModelSingleServer, sim.ModelMultiServer)
	}
	if err := validateFinitePositive(prefix+".service_rate", p.ServiceRate); err != nil {
		return err
	}
	switch sim.Model(p.Model) {
	case sim.ModelSingleServer:
		if p.Servers > 1 {
			return fmt.Errorf("%s: single-server model cannot have %d servers", prefix, p.Servers)
		}
		if p.Servers < 0 {
			return fmt.Errorf("%s: servers must be non-negative, got %d", prefix, p.Servers)
		}
	case sim.ModelMultiServer:
		if p.Servers <= 0 {
			return fmt.Errorf("%s: multi-server model needs servers > 0, got %d", prefix, p.Servers)
		}
	}
	return nil
}

// ServerCount returns the pool size the provider simulates with.
func (p *ProviderSpec) ServerCount() int {
	if p.Servers == 0 {
		return 1
	}
	return p.Servers
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	if val <= 0 {
		return fmt.Errorf("%s must be positive, got %f", name, val)
	}
	return nil
}

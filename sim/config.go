package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all recognized simulation options. All durations are in
// simulated seconds. Loadable from a YAML file; the CLI overrides
// individual fields from flags.
type Config struct {
	BootDelay        int64  `yaml:"boot_delay"`        // VM start-up latency, > 0
	ShutdownDelay    int64  `yaml:"shutdown_delay"`    // Stopping -> Terminated latency, >= 0
	SnapshotInterval int64  `yaml:"snapshot_interval"` // spacing of emitted snapshots, > 0
	PolicyInterval   int64  `yaml:"policy_interval"`   // periodic policy tick spacing, > 0
	MinNodes         int    `yaml:"min_nodes"`         // lower bound on started nodes, >= 0
	MaxNodes         int    `yaml:"max_nodes"`         // upper bound on started nodes, >= min_nodes
	MaxDelta         int    `yaml:"max_delta"`         // nodes started per policy decision, >= 1
	IdleTimeout      int64  `yaml:"idle_timeout"`      // idle time before a node may stop, >= 0
	MaxTime          int64  `yaml:"max_time"`          // simulated-time horizon, > 0
	NodeSlots        int    `yaml:"node_slots"`        // slot capacity per provisioned node, >= 1
	Policy           string `yaml:"policy"`            // scaling policy name, "" = reactive
}

// DefaultConfig returns the defaults the CLI starts from. The 30 second
// policy interval matches the orchestrator decision cycle this simulator
// models; boot delay models typical cloud instance start-up.
func DefaultConfig() *Config {
	return &Config{
		BootDelay:        60,
		ShutdownDelay:    0,
		SnapshotInterval: 30,
		PolicyInterval:   30,
		MinNodes:         0,
		MaxNodes:         10,
		MaxDelta:         1,
		IdleTimeout:      300,
		MaxTime:          86400,
		NodeSlots:        1,
		Policy:           "reactive",
	}
}

// LoadConfig reads and parses a YAML configuration file on top of the
// defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Validate rejects an inconsistent configuration before any event is
// processed.
func (c *Config) Validate() error {
	if c.BootDelay <= 0 {
		return fmt.Errorf("boot_delay must be positive, got %d", c.BootDelay)
	}
	if c.ShutdownDelay < 0 {
		return fmt.Errorf("shutdown_delay must be non-negative, got %d", c.ShutdownDelay)
	}
	if c.SnapshotInterval <= 0 {
		return fmt.Errorf("snapshot_interval must be positive, got %d", c.SnapshotInterval)
	}
	if c.PolicyInterval <= 0 {
		return fmt.Errorf("policy_interval must be positive, got %d", c.PolicyInterval)
	}
	if c.MinNodes < 0 {
		return fmt.Errorf("min_nodes must be non-negative, got %d", c.MinNodes)
	}
	if c.MaxNodes <= 0 {
		return fmt.Errorf("max_nodes must be positive, got %d", c.MaxNodes)
	}
	if c.MaxNodes < c.MinNodes {
		return fmt.Errorf("max_nodes (%d) must be >= min_nodes (%d)", c.MaxNodes, c.MinNodes)
	}
	if c.MaxDelta < 1 {
		return fmt.Errorf("max_delta must be at least 1, got %d", c.MaxDelta)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("idle_timeout must be non-negative, got %d", c.IdleTimeout)
	}
	if c.MaxTime <= 0 {
		return fmt.Errorf("max_time must be positive, got %d", c.MaxTime)
	}
	if c.NodeSlots < 1 {
		return fmt.Errorf("node_slots must be at least 1, got %d", c.NodeSlots)
	}
	if !ValidPolicies[c.Policy] {
		return fmt.Errorf("unknown scaling policy %q", c.Policy)
	}
	return nil
}

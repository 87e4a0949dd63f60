package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero boot_delay", func(c *Config) { c.BootDelay = 0 }},
		{"negative shutdown_delay", func(c *Config) { c.ShutdownDelay = -1 }},
		{"zero snapshot_interval", func(c *Config) { c.SnapshotInterval = 0 }},
		{"zero policy_interval", func(c *Config) { c.PolicyInterval = 0 }},
		{"negative min_nodes", func(c *Config) { c.MinNodes = -1 }},
		{"zero max_nodes", func(c *Config) { c.MaxNodes = 0 }},
		{"max below min", func(c *Config) { c.MinNodes = 5; c.MaxNodes = 3 }},
		{"zero max_delta", func(c *Config) { c.MaxDelta = 0 }},
		{"negative idle_timeout", func(c *Config) { c.IdleTimeout = -1 }},
		{"zero max_time", func(c *Config) { c.MaxTime = 0 }},
		{"zero node_slots", func(c *Config) { c.NodeSlots = 0 }},
		{"unknown policy", func(c *Config) { c.Policy = "oracle" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfig_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("boot_delay: 120\nmax_nodes: 8\nidle_timeout: 600\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, int64(120), cfg.BootDelay)
	assert.Equal(t, 8, cfg.MaxNodes)
	assert.Equal(t, int64(600), cfg.IdleTimeout)
	// untouched fields keep their defaults
	assert.Equal(t, DefaultConfig().SnapshotInterval, cfg.SnapshotInterval)
	assert.Equal(t, DefaultConfig().Policy, cfg.Policy)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("boot_delay: [not, a, number]\n"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reactiveCfg() *Config {
	cfg := DefaultConfig()
	cfg.MinNodes = 0
	cfg.MaxNodes = 5
	cfg.MaxDelta = 1
	cfg.IdleTimeout = 100
	return cfg
}

func TestReactivePolicy_StartsWhenPendingAndNoIdle(t *testing.T) {
	p := ReactivePolicy{}
	got := p.Decide(PolicyState{Clock: 0, PendingJobs: 3, StartedNodes: 1}, reactiveCfg())
	require.Len(t, got, 1)
	assert.Equal(t, ActionStartNode, got[0].Action)
}

func TestReactivePolicy_NoStartWhenIdleNodeExists(t *testing.T) {
	p := ReactivePolicy{}
	state := PolicyState{
		Clock: 0, PendingJobs: 3, StartedNodes: 1, IdleNodes: 1,
		Idle: []IdleNodeInfo{{ID: "node-0001", IdleSince: 0}},
	}
	got := p.Decide(state, reactiveCfg())
	assert.Empty(t, got)
}

func TestReactivePolicy_RespectsMaxNodes(t *testing.T) {
	p := ReactivePolicy{}
	cfg := reactiveCfg()
	cfg.MaxNodes = 2
	got := p.Decide(PolicyState{Clock: 0, PendingJobs: 10, StartedNodes: 2}, cfg)
	assert.Empty(t, got)
}

func TestReactivePolicy_MaxDeltaBoundsStartsPerDecision(t *testing.T) {
	p := ReactivePolicy{}
	cfg := reactiveCfg()
	cfg.MaxDelta = 3
	got := p.Decide(PolicyState{Clock: 0, PendingJobs: 10, StartedNodes: 0}, cfg)
	require.Len(t, got, 3)
	for _, d := range got {
		assert.Equal(t, ActionStartNode, d.Action)
	}
}

func TestReactivePolicy_TopsUpToMinNodes(t *testing.T) {
	p := ReactivePolicy{}
	cfg := reactiveCfg()
	cfg.MinNodes = 2
	got := p.Decide(PolicyState{Clock: 0, StartedNodes: 0}, cfg)
	assert.Len(t, got, 2)
}

func TestReactivePolicy_StopEligibleAtExactTimeout(t *testing.T) {
	p := ReactivePolicy{}
	cfg := reactiveCfg()
	state := PolicyState{
		Clock: 99, StartedNodes: 1, IdleNodes: 1,
		Idle: []IdleNodeInfo{{ID: "node-0001", IdleSince: 0}},
	}

	// one second short of idle_timeout: not eligible
	assert.Empty(t, p.Decide(state, cfg))

	// at exactly idle_timeout: eligible
	state.Clock = 100
	got := p.Decide(state, cfg)
	require.Len(t, got, 1)
	assert.Equal(t, ActionStopNode, got[0].Action)
	assert.Equal(t, NodeID("node-0001"), got[0].Node)
}

func TestReactivePolicy_StopPrefersLongestIdle(t *testing.T) {
	p := ReactivePolicy{}
	cfg := reactiveCfg()
	state := PolicyState{
		Clock: 500, StartedNodes: 3, IdleNodes: 3,
		Idle: []IdleNodeInfo{
			{ID: "node-0001", IdleSince: 300},
			{ID: "node-0002", IdleSince: 100},
			{ID: "node-0003", IdleSince: 100},
		},
	}
	got := p.Decide(state, cfg)
	require.Len(t, got, 1)
	// longest idle wins; the idle-since tie breaks by ascending id
	assert.Equal(t, NodeID("node-0002"), got[0].Node)
}

func TestReactivePolicy_StopRespectsMinNodes(t *testing.T) {
	p := ReactivePolicy{}
	cfg := reactiveCfg()
	cfg.MinNodes = 1
	state := PolicyState{
		Clock: 500, StartedNodes: 1, IdleNodes: 1,
		Idle: []IdleNodeInfo{{ID: "node-0001", IdleSince: 0}},
	}
	assert.Empty(t, p.Decide(state, cfg))
}

func TestNewPolicy(t *testing.T) {
	p, err := NewPolicy("")
	require.NoError(t, err)
	assert.IsType(t, ReactivePolicy{}, p)

	p, err = NewPolicy("reactive")
	require.NoError(t, err)
	assert.IsType(t, ReactivePolicy{}, p)

	_, err = NewPolicy("predictive")
	assert.Error(t, err)
}

package sim

import (
	"fmt"
	"sort"
)

// DirectiveAction is the kind of provisioning action a policy requests.
type DirectiveAction string

const (
	ActionStartNode DirectiveAction = "start-node"
	ActionStopNode  DirectiveAction = "stop-node"
)

// Directive is a single start/stop decision returned by a ScalingPolicy.
// Node is set only for stop directives.
type Directive struct {
	Action DirectiveAction
	Node   NodeID
}

// IdleNodeInfo describes one idle node for scale-down decisions.
type IdleNodeInfo struct {
	ID        NodeID
	IdleSince int64
}

// PolicyState is the load snapshot handed to a ScalingPolicy at each
// decision point.
type PolicyState struct {
	Clock        int64
	PendingJobs  int
	RunningJobs  int
	StartedNodes int
	IdleNodes    int
	Idle         []IdleNodeInfo // ascending node id order
}

// ScalingPolicy decides, from the current load snapshot, whether nodes
// should be started or stopped. Implementations must be deterministic:
// identical state and configuration always yield identical directives.
type ScalingPolicy interface {
	Decide(state PolicyState, cfg *Config) []Directive
}

// ReactivePolicy is the reference threshold policy:
//   - top up to min_nodes unconditionally;
//   - start up to max_delta nodes per decision while pending jobs exist,
//     no node is idle, and fewer than max_nodes are started;
//   - stop one idle node per decision once it has been idle for at least
//     idle_timeout and more than min_nodes are started, preferring the
//     longest-idle node (ties broken by ascending node id).
type ReactivePolicy struct{}

func (ReactivePolicy) Decide(state PolicyState, cfg *Config) []Directive {
	var directives []Directive

	started := state.StartedNodes
	for started < cfg.MinNodes {
		directives = append(directives, Directive{Action: ActionStartNode})
		started++
	}

	if state.PendingJobs > 0 && state.IdleNodes == 0 {
		for delta := 0; delta < cfg.MaxDelta && started < cfg.MaxNodes; delta++ {
			directives = append(directives, Directive{Action: ActionStartNode})
			started++
		}
	}

	if started > cfg.MinNodes {
		if id, ok := stopCandidate(state, cfg); ok {
			directives = append(directives, Directive{Action: ActionStopNode, Node: id})
		}
	}
	return directives
}

// stopCandidate picks the longest-idle node whose idle time has reached
// idle_timeout. Returns false if no node is eligible.
func stopCandidate(state PolicyState, cfg *Config) (NodeID, bool) {
	eligible := make([]IdleNodeInfo, 0, len(state.Idle))
	for _, n := range state.Idle {
		if state.Clock-n.IdleSince >= cfg.IdleTimeout {
			eligible = append(eligible, n)
		}
	}
	if len(eligible) == 0 {
		return "", false
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].IdleSince != eligible[j].IdleSince {
			return eligible[i].IdleSince < eligible[j].IdleSince
		}
		return eligible[i].ID < eligible[j].ID
	})
	return eligible[0].ID, true
}

// ValidPolicies is the set of recognized scaling policy names.
var ValidPolicies = map[string]bool{"": true, "reactive": true}

// NewPolicy creates a ScalingPolicy by name. The empty string defaults to
// the reactive reference policy.
func NewPolicy(name string) (ScalingPolicy, error) {
	switch name {
	case "", "reactive":
		return ReactivePolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown scaling policy %q", name)
	}
}

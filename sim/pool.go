package sim

import "fmt"

// NodePool owns every node's lifecycle state and capacity bookkeeping.
// It maintains O(1) started (Starting+Idle+Busy) and idle counters.
// Boot and shutdown completion events are scheduled by the Simulator, which
// owns the event heap; the pool only mutates node state.
type NodePool struct {
	nodes  []*Node // creation order == ascending id order
	byID   map[NodeID]*Node
	nextID int

	started int // Starting + Idle + Busy
	idle    int // Idle only
}

// NewNodePool creates an empty pool.
func NewNodePool() *NodePool {
	return &NodePool{byID: make(map[NodeID]*Node)}
}

// Provision creates a node in the Starting state and returns it. The caller
// schedules the matching NodeBootCompleteEvent at now + boot_delay.
func (p *NodePool) Provision(capacity int) *Node {
	p.nextID++
	node := &Node{
		ID:          NodeID(fmt.Sprintf("node-%04d", p.nextID)),
		Capacity:    capacity,
		State:       NodeStarting,
		assignments: make(map[JobID]int),
	}
	p.nodes = append(p.nodes, node)
	p.byID[node.ID] = node
	p.started++
	return node
}

// BootComplete transitions a node Starting -> Idle.
func (p *NodePool) BootComplete(nodeID NodeID, now int64) error {
	node, ok := p.byID[nodeID]
	if !ok {
		return fmt.Errorf("boot complete node %s at t=%d: %w", nodeID, now, ErrUnknownNode)
	}
	if node.State != NodeStarting {
		return fmt.Errorf("boot complete node %s at t=%d: %w: state is %s", nodeID, now, ErrInvalidTransition, node.State)
	}
	node.State = NodeIdle
	node.BootCompleteTime = now
	node.IdleSince = now
	p.idle++
	return nil
}

// Assign places a job's slots on a node. Idle -> Busy on first assignment.
func (p *NodePool) Assign(nodeID NodeID, jobID JobID, slots int, now int64) error {
	node, ok := p.byID[nodeID]
	if !ok {
		return fmt.Errorf("assign job %s to node %s at t=%d: %w", jobID, nodeID, now, ErrUnknownNode)
	}
	if !node.Schedulable() {
		return fmt.Errorf("assign job %s to node %s at t=%d: %w: state is %s", jobID, nodeID, now, ErrInvalidTransition, node.State)
	}
	if node.FreeSlots() < slots {
		return fmt.Errorf("assign job %s (%d slots) to node %s at t=%d: %w: %d/%d slots used",
			jobID, slots, nodeID, now, ErrCapacityExceeded, node.usedSlots, node.Capacity)
	}
	node.assignments[jobID] = slots
	node.usedSlots += slots
	if node.State == NodeIdle {
		node.State = NodeBusy
		p.idle--
	}
	return nil
}

// Release frees a job's slots. Busy -> Idle when the last assignment drops,
// recording the idle-since instant for scale-down decisions.
func (p *NodePool) Release(nodeID NodeID, jobID JobID, now int64) error {
	node, ok := p.byID[nodeID]
	if !ok {
		return fmt.Errorf("release job %s from node %s at t=%d: %w", jobID, nodeID, now, ErrUnknownNode)
	}
	slots, assigned := node.assignments[jobID]
	if !assigned {
		return fmt.Errorf("release job %s from node %s at t=%d: %w: not assigned", jobID, nodeID, now, ErrInvalidTransition)
	}
	delete(node.assignments, jobID)
	node.usedSlots -= slots
	if node.usedSlots == 0 && node.State == NodeBusy {
		node.State = NodeIdle
		node.IdleSince = now
		p.idle++
	}
	return nil
}

// Terminate begins decommissioning an idle node: Idle -> Stopping. The
// caller schedules the matching NodeShutdownCompleteEvent at
// now + shutdown_delay. A Stopping node no longer counts as started.
func (p *NodePool) Terminate(nodeID NodeID, now int64) error {
	node, ok := p.byID[nodeID]
	if !ok {
		return fmt.Errorf("terminate node %s at t=%d: %w", nodeID, now, ErrUnknownNode)
	}
	if node.State != NodeIdle || len(node.assignments) > 0 {
		return fmt.Errorf("terminate node %s at t=%d: %w: state is %s with %d assignments",
			nodeID, now, ErrNodeNotIdle, node.State, len(node.assignments))
	}
	node.State = NodeStopping
	p.idle--
	p.started--
	return nil
}

// ShutdownComplete transitions a node Stopping -> Terminated.
func (p *NodePool) ShutdownComplete(nodeID NodeID, now int64) error {
	node, ok := p.byID[nodeID]
	if !ok {
		return fmt.Errorf("shutdown complete node %s at t=%d: %w", nodeID, now, ErrUnknownNode)
	}
	if node.State != NodeStopping {
		return fmt.Errorf("shutdown complete node %s at t=%d: %w: state is %s", nodeID, now, ErrInvalidTransition, node.State)
	}
	node.State = NodeTerminated
	return nil
}

// Get returns the node for the given id, if provisioned.
func (p *NodePool) Get(nodeID NodeID) (*Node, bool) {
	node, ok := p.byID[nodeID]
	return node, ok
}

// Nodes returns all nodes in ascending id (creation) order. The returned
// slice is the pool's internal storage; callers must not modify it.
func (p *NodePool) Nodes() []*Node { return p.nodes }

// IdleNodes returns the currently idle nodes in ascending id order.
func (p *NodePool) IdleNodes() []*Node {
	var idle []*Node
	for _, n := range p.nodes {
		if n.State == NodeIdle {
			idle = append(idle, n)
		}
	}
	return idle
}

// Counts returns the started (Starting+Idle+Busy) and idle cardinalities
// from maintained counters, not by scanning.
func (p *NodePool) Counts() (started, idle int) {
	return p.started, p.idle
}

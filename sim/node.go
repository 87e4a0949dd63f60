// Defines the Node struct that models a virtual machine acting as a compute
// node. Tracks slot capacity, lifecycle state, and current job assignments.

package sim

import "fmt"

// NodeID uniquely identifies a node. Ids are assigned in provisioning order
// with a zero-padded counter so lexicographic order equals creation order.
type NodeID string

// NodeState represents the lifecycle state of a node.
type NodeState string

const (
	NodeStarting   NodeState = "starting"
	NodeIdle       NodeState = "idle"
	NodeBusy       NodeState = "busy"
	NodeStopping   NodeState = "stopping"
	NodeTerminated NodeState = "terminated"
)

// Node models a single VM. The sum of slots held by assignments never
// exceeds Capacity; a Terminated node holds no assignments.
type Node struct {
	ID       NodeID
	Capacity int
	State    NodeState

	BootCompleteTime int64 // when Starting -> Idle occurred (0 until booted)
	IdleSince        int64 // last time the node entered Idle

	assignments map[JobID]int // job id -> slots held
	usedSlots   int
}

// FreeSlots returns the unassigned slot count.
func (n *Node) FreeSlots() int { return n.Capacity - n.usedSlots }

// UsedSlots returns the assigned slot count.
func (n *Node) UsedSlots() int { return n.usedSlots }

// Assignments returns the number of jobs currently assigned.
func (n *Node) Assignments() int { return len(n.assignments) }

// Schedulable reports whether the node can accept work (booted and not on
// its way out).
func (n *Node) Schedulable() bool {
	return n.State == NodeIdle || n.State == NodeBusy
}

func (n *Node) String() string {
	return fmt.Sprintf("Node(ID: %s, State: %s, Used: %d/%d)", n.ID, n.State, n.usedSlots, n.Capacity)
}

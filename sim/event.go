package sim

import "github.com/sirupsen/logrus"

// EventType tags every event kind so the heap can break timestamp ties
// deterministically and the dispatcher stays exhaustive.
type EventType int

const (
	EventTypeJobCompletion EventType = iota
	EventTypeNodeBootComplete
	EventTypeNodeShutdownComplete
	EventTypeJobArrival
	EventTypePolicyTick
)

// EventTypePriority orders event kinds at equal timestamps: capacity is
// freed first, nodes settle next, arrivals follow, and the policy decides
// last so it observes settled state.
var EventTypePriority = map[EventType]int{
	EventTypeJobCompletion:        0,
	EventTypeNodeBootComplete:     1,
	EventTypeNodeShutdownComplete: 2,
	EventTypeJobArrival:           3,
	EventTypePolicyTick:           4,
}

func (t EventType) String() string {
	switch t {
	case EventTypeJobCompletion:
		return "JobCompletion"
	case EventTypeNodeBootComplete:
		return "NodeBootComplete"
	case EventTypeNodeShutdownComplete:
		return "NodeShutdownComplete"
	case EventTypeJobArrival:
		return "JobArrival"
	case EventTypePolicyTick:
		return "PolicyTick"
	default:
		return "Unknown"
	}
}

// Event defines the interface for all simulation events.
// Each event has a Timestamp (simulated seconds), a Type for deterministic
// tie-breaking, and an Execute method that advances simulation state.
// Execute returns an error only for contract violations; the Simulator
// aborts the run on the first error.
type Event interface {
	Timestamp() int64
	Type() EventType
	Execute(*Simulator) error
}

// BaseEvent provides the common timestamp and type fields.
type BaseEvent struct {
	time      int64
	eventType EventType
}

func (e *BaseEvent) Timestamp() int64 { return e.time }
func (e *BaseEvent) Type() EventType  { return e.eventType }

// JobArrivalEvent represents a job from the trace entering the cluster.
type JobArrivalEvent struct {
	BaseEvent
	Job *Job
}

func NewJobArrivalEvent(time int64, job *Job) *JobArrivalEvent {
	return &JobArrivalEvent{BaseEvent{time, EventTypeJobArrival}, job}
}

func (e *JobArrivalEvent) Execute(sim *Simulator) error {
	logrus.Infof("<< Arrival: job %s (%d slots) at t=%d", e.Job.ID, e.Job.Slots, e.time)
	return sim.handleJobArrival(e)
}

// JobCompletionEvent fires when a running job's duration elapses.
type JobCompletionEvent struct {
	BaseEvent
	JobID JobID
}

func NewJobCompletionEvent(time int64, jobID JobID) *JobCompletionEvent {
	return &JobCompletionEvent{BaseEvent{time, EventTypeJobCompletion}, jobID}
}

func (e *JobCompletionEvent) Execute(sim *Simulator) error {
	logrus.Infof("<< Completion: job %s at t=%d", e.JobID, e.time)
	return sim.handleJobCompletion(e)
}

// NodeBootCompleteEvent fires boot_delay seconds after a node is provisioned.
type NodeBootCompleteEvent struct {
	BaseEvent
	NodeID NodeID
}

func NewNodeBootCompleteEvent(time int64, nodeID NodeID) *NodeBootCompleteEvent {
	return &NodeBootCompleteEvent{BaseEvent{time, EventTypeNodeBootComplete}, nodeID}
}

func (e *NodeBootCompleteEvent) Execute(sim *Simulator) error {
	logrus.Infof("<< BootComplete: node %s at t=%d", e.NodeID, e.time)
	return sim.handleNodeBootComplete(e)
}

// NodeShutdownCompleteEvent fires shutdown_delay seconds after a stop directive.
type NodeShutdownCompleteEvent struct {
	BaseEvent
	NodeID NodeID
}

func NewNodeShutdownCompleteEvent(time int64, nodeID NodeID) *NodeShutdownCompleteEvent {
	return &NodeShutdownCompleteEvent{BaseEvent{time, EventTypeNodeShutdownComplete}, nodeID}
}

func (e *NodeShutdownCompleteEvent) Execute(sim *Simulator) error {
	logrus.Infof("<< ShutdownComplete: node %s at t=%d", e.NodeID, e.time)
	return sim.handleNodeShutdownComplete(e)
}

// PolicyTickEvent triggers a scaling-policy evaluation. Periodic ticks
// re-arm themselves while jobs are outstanding; one-shot wake-ups are
// scheduled when a node goes idle so that idle-timeout expiry is evaluated
// at the exact instant it arises.
type PolicyTickEvent struct {
	BaseEvent
	Periodic bool
}

func NewPolicyTickEvent(time int64, periodic bool) *PolicyTickEvent {
	return &PolicyTickEvent{BaseEvent{time, EventTypePolicyTick}, periodic}
}

func (e *PolicyTickEvent) Execute(sim *Simulator) error {
	logrus.Debugf("<< PolicyTick at t=%d (periodic=%v)", e.time, e.Periodic)
	return sim.handlePolicyTick(e)
}

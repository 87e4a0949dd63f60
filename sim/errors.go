package sim

import "errors"

// Error taxonomy for the engine. All of these represent either a caller or
// configuration contract violation, or an irrecoverable trace inconsistency.
// The Simulator never recovers from them silently: Run stops and returns the
// wrapped error carrying the offending identifier and timestamp.
var (
	// ErrOutOfOrderEvent is returned when an event is scheduled with a
	// timestamp earlier than the current simulation clock.
	ErrOutOfOrderEvent = errors.New("event scheduled before current clock")

	// ErrUnknownJob is returned for operations on a job id the registry
	// has never admitted.
	ErrUnknownJob = errors.New("unknown job")

	// ErrUnknownNode is returned for operations on a node id the pool
	// has never provisioned.
	ErrUnknownNode = errors.New("unknown node")

	// ErrInvalidTransition is returned when a job or node operation does
	// not apply in the entity's current lifecycle state.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrCapacityExceeded is returned when an assignment would exceed a
	// node's slot capacity.
	ErrCapacityExceeded = errors.New("node capacity exceeded")

	// ErrNodeNotIdle is returned when terminating a node that still holds
	// job assignments.
	ErrNodeNotIdle = errors.New("node is not idle")

	// ErrSimulationTimeout is returned when max_time is reached (or the
	// event queue drains) while pending jobs are still outstanding.
	ErrSimulationTimeout = errors.New("simulation ended with pending jobs outstanding")
)

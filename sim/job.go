// Defines the Job struct that models a single batch job in the simulation.
// Tracks submission time, slot demand, duration, and lifecycle state.

package sim

import "fmt"

// JobID uniquely identifies a job, typically the SGE job number from the trace.
type JobID string

// JobState represents the lifecycle state of a job.
type JobState string

const (
	JobPending   JobState = "pending"
	JobRunning   JobState = "running"
	JobCompleted JobState = "completed"
)

// Job models a single job's lifecycle in the simulation.
// A job is Running iff it occupies slots on exactly one node; a Completed
// job occupies no slots and is retained only for reporting counts.
type Job struct {
	ID         JobID
	SubmitTime int64 // simulated second the job enters the queue
	Slots      int   // slot demand, >= 1, all-or-nothing
	Duration   int64 // simulated run length; completion = start + duration

	State     JobState
	Node      NodeID // node the job runs on (empty unless Running)
	StartTime int64  // set on the Pending -> Running transition
}

func (j *Job) String() string {
	return fmt.Sprintf("Job(ID: %s, State: %s, Slots: %d, SubmitTime: %d)", j.ID, j.State, j.Slots, j.SubmitTime)
}

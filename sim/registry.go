package sim

import "fmt"

// JobRegistry owns every job's lifecycle state and maintains O(1) pending
// and running counters. The Scheduler and Node Pool reference jobs by id
// but never own them.
type JobRegistry struct {
	jobs map[JobID]*Job

	pending int
	running int

	// cumulative, for the conservation law and final metrics
	arrived   int
	completed int
}

// NewJobRegistry creates an empty registry.
func NewJobRegistry() *JobRegistry {
	return &JobRegistry{jobs: make(map[JobID]*Job)}
}

// Admit registers a newly arrived job in the Pending state.
func (r *JobRegistry) Admit(job *Job) error {
	if _, exists := r.jobs[job.ID]; exists {
		return fmt.Errorf("admit job %s: %w: already admitted", job.ID, ErrInvalidTransition)
	}
	job.State = JobPending
	r.jobs[job.ID] = job
	r.pending++
	r.arrived++
	return nil
}

// Start transitions a job Pending -> Running on the given node.
func (r *JobRegistry) Start(jobID JobID, nodeID NodeID, now int64) error {
	job, ok := r.jobs[jobID]
	if !ok {
		return fmt.Errorf("start job %s at t=%d: %w", jobID, now, ErrUnknownJob)
	}
	if job.State != JobPending {
		return fmt.Errorf("start job %s at t=%d: %w: state is %s", jobID, now, ErrInvalidTransition, job.State)
	}
	job.State = JobRunning
	job.Node = nodeID
	job.StartTime = now
	r.pending--
	r.running++
	return nil
}

// Complete transitions a job Running -> Completed.
func (r *JobRegistry) Complete(jobID JobID, now int64) error {
	job, ok := r.jobs[jobID]
	if !ok {
		return fmt.Errorf("complete job %s at t=%d: %w", jobID, now, ErrUnknownJob)
	}
	if job.State != JobRunning {
		return fmt.Errorf("complete job %s at t=%d: %w: state is %s", jobID, now, ErrInvalidTransition, job.State)
	}
	job.State = JobCompleted
	job.Node = ""
	r.running--
	r.completed++
	return nil
}

// Get returns the job for the given id, if admitted.
func (r *JobRegistry) Get(jobID JobID) (*Job, bool) {
	job, ok := r.jobs[jobID]
	return job, ok
}

// Counts returns the pending and running cardinalities from maintained
// counters, not by scanning.
func (r *JobRegistry) Counts() (pending, running int) {
	return r.pending, r.running
}

// Arrived returns the cumulative number of admitted jobs.
func (r *JobRegistry) Arrived() int { return r.arrived }

// Completed returns the cumulative number of completed jobs.
func (r *JobRegistry) Completed() int { return r.completed }

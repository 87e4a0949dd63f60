package sim

import "sort"

// Scheduler matches pending jobs to free node capacity, mirroring SGE's
// default queue discipline: strict FIFO by submission time (ties broken by
// job id ascending), first-fit over nodes in ascending node-id order.
//
// A job that does not fit anywhere stays pending but does NOT block the
// scan: a later, smaller job may still be placed. Slot assignment is
// all-or-nothing per job.
type Scheduler struct {
	pending []*Job
}

// NewScheduler creates a scheduler with an empty pending queue.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Enqueue adds a newly admitted job to the pending queue.
func (s *Scheduler) Enqueue(job *Job) {
	s.pending = append(s.pending, job)
}

// PendingLen returns the number of jobs waiting to be placed.
func (s *Scheduler) PendingLen() int { return len(s.pending) }

// MatchPending attempts to place every pending job, in FIFO order, on the
// first schedulable node with enough free slots. Placed jobs transition to
// Running in the registry and are removed from the pending queue; the
// caller schedules their completion events.
func (s *Scheduler) MatchPending(now int64, pool *NodePool, reg *JobRegistry) ([]*Job, error) {
	sort.SliceStable(s.pending, func(i, j int) bool {
		if s.pending[i].SubmitTime != s.pending[j].SubmitTime {
			return s.pending[i].SubmitTime < s.pending[j].SubmitTime
		}
		return s.pending[i].ID < s.pending[j].ID
	})

	var placed []*Job
	var remaining []*Job
	for _, job := range s.pending {
		node := firstFit(pool, job.Slots)
		if node == nil {
			// no node fits this job; keep scanning for smaller jobs
			remaining = append(remaining, job)
			continue
		}
		if err := pool.Assign(node.ID, job.ID, job.Slots, now); err != nil {
			return nil, err
		}
		if err := reg.Start(job.ID, node.ID, now); err != nil {
			return nil, err
		}
		placed = append(placed, job)
	}
	s.pending = remaining
	return placed, nil
}

// firstFit scans nodes in ascending id order and returns the first
// schedulable node with at least slots free, or nil.
func firstFit(pool *NodePool, slots int) *Node {
	for _, n := range pool.Nodes() {
		if n.Schedulable() && n.FreeSlots() >= slots {
			return n
		}
	}
	return nil
}

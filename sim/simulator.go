// sim/simulator.go
package sim

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Simulator is the core object that holds simulation time, system state,
// and the event loop. It owns the clock and the event heap; the Job
// Registry, Node Pool, Scheduler, and Scaling Policy mutate state only
// synchronously inside event processing, which makes identical runs emit
// bit-identical snapshot sequences.
//
// A Simulator instance is single-threaded and self-contained: parallel
// parameter sweeps run one independent Simulator per replay.
type Simulator struct {
	Clock  int64
	Config *Config

	Events   *EventHeap
	Registry *JobRegistry
	Pool     *NodePool
	Sched    *Scheduler
	Policy   ScalingPolicy
	Metrics  *Metrics

	// Snapshots accumulates the emitted time series in order; reporter, if
	// set, additionally receives each snapshot as it is emitted.
	Snapshots []Snapshot
	reporter  SnapshotWriter

	nextSnapshot int64
}

// NewSimulator validates the configuration and assembles an engine around
// it. policy may be nil, in which case the configured policy name is
// instantiated. reporter may be nil; snapshots are always collected in
// Snapshots.
func NewSimulator(cfg *Config, policy ScalingPolicy, reporter SnapshotWriter) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if policy == nil {
		p, err := NewPolicy(cfg.Policy)
		if err != nil {
			return nil, err
		}
		policy = p
	}
	return &Simulator{
		Config:   cfg,
		Events:   NewEventHeap(),
		Registry: NewJobRegistry(),
		Pool:     NewNodePool(),
		Sched:    NewScheduler(),
		Policy:   policy,
		Metrics:  NewMetrics(),
		reporter: reporter,
	}, nil
}

// Schedule inserts an event, enforcing causality: no event may be scheduled
// with a timestamp earlier than the current clock.
func (s *Simulator) Schedule(ev Event) error {
	if ev.Timestamp() < s.Clock {
		return fmt.Errorf("schedule %s at t=%d with clock at t=%d: %w",
			ev.Type(), ev.Timestamp(), s.Clock, ErrOutOfOrderEvent)
	}
	s.Events.Schedule(ev)
	return nil
}

// InjectJob schedules the arrival of a trace job. Call before Run; jobs
// must not be submitted before the current clock.
func (s *Simulator) InjectJob(job *Job) error {
	return s.Schedule(NewJobArrivalEvent(job.SubmitTime, job))
}

// Run drives the event loop until the queue is empty and no pending jobs
// remain, or until max_time is reached. The context aborts the run between
// event-processing steps, never mid-step.
func (s *Simulator) Run(ctx context.Context) error {
	// Arm the periodic policy cycle; ticks re-arm themselves while jobs
	// are outstanding.
	if err := s.Schedule(NewPolicyTickEvent(s.Clock+s.Config.PolicyInterval, true)); err != nil {
		return err
	}

	for s.Events.Len() > 0 {
		select {
		case <-ctx.Done():
			return fmt.Errorf("simulation aborted at t=%d: %w", s.Clock, ctx.Err())
		default:
		}

		ev := s.Events.PopNext()
		t := ev.Timestamp()

		if t > s.Config.MaxTime {
			if pending, _ := s.Registry.Counts(); pending > 0 {
				return fmt.Errorf("max_time %d reached: %w: %d jobs pending",
					s.Config.MaxTime, ErrSimulationTimeout, pending)
			}
			s.advanceClock(s.Config.MaxTime)
			break
		}

		s.advanceClock(t)
		logrus.Debugf("[t=%07d] executing %s", s.Clock, ev.Type())
		if err := ev.Execute(s); err != nil {
			return err
		}
		if err := s.afterEvent(t); err != nil {
			return err
		}
	}

	if pending, _ := s.Registry.Counts(); pending > 0 {
		return fmt.Errorf("event queue drained at t=%d: %w: %d jobs pending",
			s.Clock, ErrSimulationTimeout, pending)
	}
	s.flushSnapshots(s.Clock)
	s.Metrics.SimEndedTime = s.Clock
	logrus.Infof("[t=%07d] simulation ended", s.Clock)
	return nil
}

// advanceClock moves simulated time forward to t, emitting snapshots for
// every interval point strictly before t. A snapshot for instant T is
// emitted only once all events at or before T have been processed, so it
// reflects settled state.
func (s *Simulator) advanceClock(t int64) {
	if t <= s.Clock {
		return
	}
	started, _ := s.Pool.Counts()
	s.Metrics.NodeSeconds += int64(started) * (t - s.Clock)
	for s.nextSnapshot < t {
		s.emitSnapshot(s.nextSnapshot)
		s.nextSnapshot += s.Config.SnapshotInterval
	}
	s.Clock = t
}

// flushSnapshots emits the remaining interval points up to and including
// end, once the event queue has drained.
func (s *Simulator) flushSnapshots(end int64) {
	for s.nextSnapshot <= end {
		s.emitSnapshot(s.nextSnapshot)
		s.nextSnapshot += s.Config.SnapshotInterval
	}
}

func (s *Simulator) emitSnapshot(t int64) {
	pending, running := s.Registry.Counts()
	started, idle := s.Pool.Counts()
	snap := Snapshot{
		Time:         t,
		PendingJobs:  pending,
		RunningJobs:  running,
		StartedNodes: started,
		IdleNodes:    idle,
	}
	s.Snapshots = append(s.Snapshots, snap)
	if s.reporter != nil {
		if err := s.reporter.Write(snap); err != nil {
			logrus.Errorf("writing snapshot at t=%d: %v", t, err)
		}
	}
}

// afterEvent runs the scheduler and the scaling policy after every event:
// arrivals, completions, and boot completions can all unblock work.
func (s *Simulator) afterEvent(now int64) error {
	placed, err := s.Sched.MatchPending(now, s.Pool, s.Registry)
	if err != nil {
		return err
	}
	for _, job := range placed {
		logrus.Infof("job %s started on %s at t=%d (waited %ds)", job.ID, job.Node, now, now-job.SubmitTime)
		s.Metrics.JobsStarted++
		s.Metrics.TotalWaitTime += now - job.SubmitTime
		if err := s.Schedule(NewJobCompletionEvent(now+job.Duration, job.ID)); err != nil {
			return err
		}
	}
	return s.runPolicy(now)
}

// runPolicy snapshots the load, asks the policy for directives, and applies
// them. The engine clamps starts at max_nodes regardless of policy output.
func (s *Simulator) runPolicy(now int64) error {
	directives := s.Policy.Decide(s.policyState(now), s.Config)
	for _, d := range directives {
		switch d.Action {
		case ActionStartNode:
			if started, _ := s.Pool.Counts(); started >= s.Config.MaxNodes {
				logrus.Warnf("policy requested a node beyond max_nodes=%d at t=%d; ignoring", s.Config.MaxNodes, now)
				continue
			}
			node := s.Pool.Provision(s.Config.NodeSlots)
			s.Metrics.NodesProvisioned++
			logrus.Infof("starting node %s at t=%d (idle at t=%d)", node.ID, now, now+s.Config.BootDelay)
			if err := s.Schedule(NewNodeBootCompleteEvent(now+s.Config.BootDelay, node.ID)); err != nil {
				return err
			}
		case ActionStopNode:
			if err := s.Pool.Terminate(d.Node, now); err != nil {
				return err
			}
			logrus.Infof("stopping node %s at t=%d", d.Node, now)
			if err := s.Schedule(NewNodeShutdownCompleteEvent(now+s.Config.ShutdownDelay, d.Node)); err != nil {
				return err
			}
		default:
			return fmt.Errorf("policy returned unknown directive %q at t=%d", d.Action, now)
		}
	}
	if started, _ := s.Pool.Counts(); started > s.Metrics.PeakStartedNodes {
		s.Metrics.PeakStartedNodes = started
	}
	return nil
}

func (s *Simulator) policyState(now int64) PolicyState {
	pending, running := s.Registry.Counts()
	started, idle := s.Pool.Counts()
	state := PolicyState{
		Clock:        now,
		PendingJobs:  pending,
		RunningJobs:  running,
		StartedNodes: started,
		IdleNodes:    idle,
	}
	for _, n := range s.Pool.IdleNodes() {
		state.Idle = append(state.Idle, IdleNodeInfo{ID: n.ID, IdleSince: n.IdleSince})
	}
	return state
}

// Event handlers. All state mutation for one event happens synchronously
// here before the next event is popped.

func (s *Simulator) handleJobArrival(e *JobArrivalEvent) error {
	if err := s.Registry.Admit(e.Job); err != nil {
		return err
	}
	s.Metrics.JobsArrived++
	s.Sched.Enqueue(e.Job)
	return nil
}

func (s *Simulator) handleJobCompletion(e *JobCompletionEvent) error {
	job, ok := s.Registry.Get(e.JobID)
	if !ok {
		return fmt.Errorf("completion for job %s at t=%d: %w", e.JobID, e.time, ErrUnknownJob)
	}
	nodeID := job.Node
	if err := s.Registry.Complete(e.JobID, e.time); err != nil {
		return err
	}
	if err := s.Pool.Release(nodeID, e.JobID, e.time); err != nil {
		return err
	}
	s.Metrics.JobsCompleted++
	return s.scheduleIdleWakeup(nodeID, e.time)
}

func (s *Simulator) handleNodeBootComplete(e *NodeBootCompleteEvent) error {
	if err := s.Pool.BootComplete(e.NodeID, e.time); err != nil {
		return err
	}
	return s.scheduleIdleWakeup(e.NodeID, e.time)
}

func (s *Simulator) handleNodeShutdownComplete(e *NodeShutdownCompleteEvent) error {
	return s.Pool.ShutdownComplete(e.NodeID, e.time)
}

func (s *Simulator) handlePolicyTick(e *PolicyTickEvent) error {
	if !e.Periodic {
		return nil
	}
	// Keep the periodic cycle alive only while jobs are outstanding;
	// one-shot idle wake-ups cover scale-down of leftover nodes.
	if pending, running := s.Registry.Counts(); pending+running > 0 {
		return s.Schedule(NewPolicyTickEvent(e.time+s.Config.PolicyInterval, true))
	}
	return nil
}

// scheduleIdleWakeup arms a one-shot policy evaluation at the instant the
// node's idle timeout would expire, so scale-down eligibility is checked
// exactly when it arises rather than at the next periodic tick.
func (s *Simulator) scheduleIdleWakeup(nodeID NodeID, now int64) error {
	node, ok := s.Pool.Get(nodeID)
	if !ok || node.State != NodeIdle {
		return nil
	}
	return s.Schedule(NewPolicyTickEvent(now+s.Config.IdleTimeout, false))
}

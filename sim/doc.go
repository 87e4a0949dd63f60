// Package sim provides the core discrete-event simulation engine for an
// SGE/OGS batch cluster extended with elastically provisioned VMs.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - job.go / node.go: Job and Node lifecycle state machines
//   - event.go: Event types that drive the simulation (arrival, completion, boot, shutdown, tick)
//   - simulator.go: The event loop, snapshot emission, and termination rules
//
// # Architecture
//
// The engine replays a job trace: job arrivals enter the Job Registry, the
// Scheduler matches pending jobs to free node slots in FIFO order, and the
// Scaling Policy decides when the Node Pool starts or stops VMs. The
// Simulator owns the clock and the event heap; all state mutation happens
// synchronously inside event execution, which makes replays deterministic.
//
// Trace loading lives in sim/workload; the CLI lives in cmd/.
//
// # Key Interfaces
//
// The extension points are small interfaces:
//   - ScalingPolicy: decide start/stop directives from a load snapshot
//   - SnapshotWriter: consume the emitted time series (CSV by default)
package sim

// Tracks simulation-wide statistics for final reporting.

package sim

import "fmt"

// Metrics aggregates statistics about the simulation for final reporting.
// Useful for evaluating a provisioning policy and debugging behavior over
// time.
type Metrics struct {
	JobsArrived   int   // jobs admitted from the trace
	JobsStarted   int   // jobs that reached a node
	JobsCompleted int   // jobs that ran to completion
	TotalWaitTime int64 // sum of (start - submit) across started jobs

	NodesProvisioned int   // nodes started over the whole run
	PeakStartedNodes int   // max simultaneously started nodes
	NodeSeconds      int64 // integral of started-node count over time

	SimEndedTime int64 // simulated second the run ended
}

// NewMetrics creates a zeroed metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Jobs Arrived         : %d\n", m.JobsArrived)
	fmt.Printf("Jobs Completed       : %d\n", m.JobsCompleted)
	if m.JobsStarted > 0 {
		avgWait := float64(m.TotalWaitTime) / float64(m.JobsStarted)
		fmt.Printf("Average Wait Time    : %.2f s\n", avgWait)
	}
	fmt.Printf("Nodes Provisioned    : %d\n", m.NodesProvisioned)
	fmt.Printf("Peak Started Nodes   : %d\n", m.PeakStartedNodes)
	fmt.Printf("Node Seconds         : %d\n", m.NodeSeconds)
	fmt.Printf("Simulation End Time  : %d s\n", m.SimEndedTime)
}

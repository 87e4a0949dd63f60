package sim

import (
	"bufio"
	"fmt"
	"io"
)

// Snapshot is a timestamped summary of cluster state, the sole externally
// visible artifact of a simulation step. Immutable once emitted.
type Snapshot struct {
	Time         int64
	PendingJobs  int
	RunningJobs  int
	StartedNodes int // Starting + Idle + Busy
	IdleNodes    int
}

// SnapshotWriter consumes emitted snapshots in strictly increasing time
// order.
type SnapshotWriter interface {
	Write(s Snapshot) error
}

// CSVReporter writes snapshots as comma-separated rows
// time,pending,running,started,idle with no header, the 5-column layout
// expected by the downstream plotting tools.
type CSVReporter struct {
	w *bufio.Writer
}

// NewCSVReporter wraps w in a buffered snapshot writer. Call Flush when the
// run finishes.
func NewCSVReporter(w io.Writer) *CSVReporter {
	return &CSVReporter{w: bufio.NewWriter(w)}
}

func (r *CSVReporter) Write(s Snapshot) error {
	_, err := fmt.Fprintf(r.w, "%d,%d,%d,%d,%d\n",
		s.Time, s.PendingJobs, s.RunningJobs, s.StartedNodes, s.IdleNodes)
	return err
}

// Flush writes any buffered rows to the underlying writer.
func (r *CSVReporter) Flush() error {
	return r.w.Flush()
}

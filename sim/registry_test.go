package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobRegistry_Lifecycle(t *testing.T) {
	reg := NewJobRegistry()
	job := &Job{ID: "j1", SubmitTime: 0, Slots: 1, Duration: 100}

	require.NoError(t, reg.Admit(job))
	assert.Equal(t, JobPending, job.State)
	pending, running := reg.Counts()
	assert.Equal(t, 1, pending)
	assert.Equal(t, 0, running)

	require.NoError(t, reg.Start("j1", "node-0001", 10))
	assert.Equal(t, JobRunning, job.State)
	assert.Equal(t, NodeID("node-0001"), job.Node)
	assert.Equal(t, int64(10), job.StartTime)
	pending, running = reg.Counts()
	assert.Equal(t, 0, pending)
	assert.Equal(t, 1, running)

	require.NoError(t, reg.Complete("j1", 110))
	assert.Equal(t, JobCompleted, job.State)
	assert.Empty(t, job.Node)
	pending, running = reg.Counts()
	assert.Equal(t, 0, pending)
	assert.Equal(t, 0, running)
	assert.Equal(t, 1, reg.Arrived())
	assert.Equal(t, 1, reg.Completed())
}

func TestJobRegistry_StartUnknownJob(t *testing.T) {
	reg := NewJobRegistry()
	err := reg.Start("ghost", "node-0001", 0)
	assert.ErrorIs(t, err, ErrUnknownJob)
}

func TestJobRegistry_InvalidTransitions(t *testing.T) {
	reg := NewJobRegistry()
	job := &Job{ID: "j1", Slots: 1}
	require.NoError(t, reg.Admit(job))

	// complete before start
	assert.ErrorIs(t, reg.Complete("j1", 0), ErrInvalidTransition)

	require.NoError(t, reg.Start("j1", "node-0001", 0))
	// double start
	assert.ErrorIs(t, reg.Start("j1", "node-0002", 5), ErrInvalidTransition)

	require.NoError(t, reg.Complete("j1", 10))
	// double complete
	assert.ErrorIs(t, reg.Complete("j1", 20), ErrInvalidTransition)
}

func TestJobRegistry_DuplicateAdmit(t *testing.T) {
	reg := NewJobRegistry()
	require.NoError(t, reg.Admit(&Job{ID: "j1", Slots: 1}))
	assert.ErrorIs(t, reg.Admit(&Job{ID: "j1", Slots: 1}), ErrInvalidTransition)
}

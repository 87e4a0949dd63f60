package sim

import "testing"

func TestEventHeap_OrdersByTimestamp(t *testing.T) {
	h := NewEventHeap()
	h.Schedule(NewPolicyTickEvent(30, true))
	h.Schedule(NewJobArrivalEvent(10, &Job{ID: "j1"}))
	h.Schedule(NewJobCompletionEvent(20, "j2"))

	want := []int64{10, 20, 30}
	for i, ts := range want {
		ev := h.PopNext()
		if ev == nil {
			t.Fatalf("PopNext[%d]: got nil, want event at t=%d", i, ts)
		}
		if ev.Timestamp() != ts {
			t.Errorf("PopNext[%d]: got t=%d, want t=%d", i, ev.Timestamp(), ts)
		}
	}
	if h.PopNext() != nil {
		t.Errorf("PopNext on empty heap: got event, want nil")
	}
}

func TestEventHeap_TieBrokenByTypePriority(t *testing.T) {
	// GIVEN five events sharing one timestamp, scheduled in reverse
	// priority order
	h := NewEventHeap()
	h.Schedule(NewPolicyTickEvent(100, true))
	h.Schedule(NewJobArrivalEvent(100, &Job{ID: "j1"}))
	h.Schedule(NewNodeShutdownCompleteEvent(100, "node-0001"))
	h.Schedule(NewNodeBootCompleteEvent(100, "node-0002"))
	h.Schedule(NewJobCompletionEvent(100, "j2"))

	// THEN they pop in kind-priority order: completions free capacity
	// first, the policy decides last
	want := []EventType{
		EventTypeJobCompletion,
		EventTypeNodeBootComplete,
		EventTypeNodeShutdownComplete,
		EventTypeJobArrival,
		EventTypePolicyTick,
	}
	for i, typ := range want {
		ev := h.PopNext()
		if ev.Type() != typ {
			t.Errorf("PopNext[%d]: got %s, want %s", i, ev.Type(), typ)
		}
	}
}

func TestEventHeap_TieBrokenByInsertionSequence(t *testing.T) {
	// Same timestamp, same type: insertion order decides
	h := NewEventHeap()
	h.Schedule(NewJobCompletionEvent(50, "first"))
	h.Schedule(NewJobCompletionEvent(50, "second"))
	h.Schedule(NewJobCompletionEvent(50, "third"))

	want := []JobID{"first", "second", "third"}
	for i, id := range want {
		ev := h.PopNext().(*JobCompletionEvent)
		if ev.JobID != id {
			t.Errorf("PopNext[%d]: got job %s, want %s", i, ev.JobID, id)
		}
	}
}

func TestEventHeap_PeekDoesNotRemove(t *testing.T) {
	h := NewEventHeap()
	if h.Peek() != nil {
		t.Fatalf("Peek on empty heap: got event, want nil")
	}
	h.Schedule(NewJobArrivalEvent(5, &Job{ID: "j1"}))
	if got := h.Peek(); got == nil || got.Timestamp() != 5 {
		t.Errorf("Peek: got %v, want event at t=5", got)
	}
	if h.Len() != 1 {
		t.Errorf("Peek modified heap length: got %d, want 1", h.Len())
	}
}

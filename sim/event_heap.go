package sim

import "container/heap"

// eventEntry pairs an event with its insertion sequence number, the final
// tie-breaker that makes replays deterministic when both timestamp and type
// priority are equal.
type eventEntry struct {
	ev  Event
	seq uint64
}

// EventHeap is a priority queue of pending simulation events.
// Ordering: timestamp → type priority → insertion sequence.
// The sequence counter is owned by the heap instance, not a process-wide
// global, so independent replays never share state.
type EventHeap struct {
	entries []eventEntry
	nextSeq uint64
}

// NewEventHeap creates an empty event heap.
func NewEventHeap() *EventHeap {
	h := &EventHeap{entries: make([]eventEntry, 0)}
	heap.Init(h)
	return h
}

// Len implements heap.Interface.
func (h *EventHeap) Len() int { return len(h.entries) }

// Less implements heap.Interface with deterministic ordering.
func (h *EventHeap) Less(i, j int) bool {
	ei, ej := h.entries[i], h.entries[j]
	if ei.ev.Timestamp() != ej.ev.Timestamp() {
		return ei.ev.Timestamp() < ej.ev.Timestamp()
	}
	pi, pj := EventTypePriority[ei.ev.Type()], EventTypePriority[ej.ev.Type()]
	if pi != pj {
		return pi < pj
	}
	return ei.seq < ej.seq
}

// Swap implements heap.Interface.
func (h *EventHeap) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
}

// Push implements heap.Interface.
func (h *EventHeap) Push(x any) {
	h.entries = append(h.entries, x.(eventEntry))
}

// Pop implements heap.Interface.
func (h *EventHeap) Pop() any {
	old := h.entries
	n := len(old)
	item := old[n-1]
	h.entries = old[0 : n-1]
	return item
}

// Schedule inserts an event, stamping it with the next sequence number.
// Causality (no event before the current clock) is enforced by
// Simulator.Schedule, which owns the clock.
func (h *EventHeap) Schedule(e Event) {
	h.nextSeq++
	heap.Push(h, eventEntry{ev: e, seq: h.nextSeq})
}

// PopNext removes and returns the earliest event, or nil if the heap is empty.
func (h *EventHeap) PopNext() Event {
	if h.Len() == 0 {
		return nil
	}
	return heap.Pop(h).(eventEntry).ev
}

// Peek returns the earliest event without removing it, or nil if empty.
func (h *EventHeap) Peek() Event {
	if h.Len() == 0 {
		return nil
	}
	return h.entries[0].ev
}

// Package scheduler implements the priority-time event queue at the
// heart of the simulator: a min-heap keyed by (time, sequence),
// deterministic drain-to-now dispatch, and attach/detach of
// EventHandlers. The heap keys on simulated time plus an insertion
// sequence rather than a wall-clock timestamp, and delivery is
// synchronous rather than goroutine/channel based, matching the
// single-threaded, cooperative execution model the rest of this
// module assumes.
package scheduler

import (
	"container/heap"
	"fmt"

	"github.com/jangala-dev/logy/core/event"
	"github.com/jangala-dev/logy/errcode"
	"github.com/jangala-dev/logy/internal/obsbus"
)

// DefaultMaxQueue is the configurable bound on in-flight events;
// Schedule returns an OverflowError past this point rather than
// silently dropping the event.
const DefaultMaxQueue = 1024

// TraceTopic is the obsbus topic every dispatched event's trace line
// is published on.
const TraceTopic = "scheduler.trace"

// FaultTopic is the obsbus topic a handler's non-nil error is
// published on: logged, not fatal.
const FaultTopic = "scheduler.fault"

type queueItem struct {
	ev  event.Event
	idx int
}

type eventHeap []*queueItem

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	ti, tj := h[i].ev.Time(), h[j].ev.Time()
	if ti != tj {
		return ti < tj
	}
	return h[i].ev.Seq() < h[j].ev.Seq()
}
func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].idx, h[j].idx = i, j
}
func (h *eventHeap) Push(x any) {
	it := x.(*queueItem)
	it.idx = len(*h)
	*h = append(*h, it)
}
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.idx = -1
	*h = old[:n-1]
	return it
}

// System is the scheduler: virtual clock, priority queue, and the
// ordered list of attached handlers.
type System struct {
	queue    eventHeap
	handlers []*event.Handler
	now      int64
	seq      uint64
	maxQueue int
	trace    *obsbus.Bus
}

// Option configures a System at construction.
type Option func(*System)

// WithMaxQueue overrides DefaultMaxQueue.
func WithMaxQueue(n int) Option {
	return func(s *System) { s.maxQueue = n }
}

// WithTrace attaches an obsbus.Bus that receives a trace line per
// dispatched event and a fault notification per recovered handler
// error.
func WithTrace(bus *obsbus.Bus) Option {
	return func(s *System) { s.trace = bus }
}

// New returns an empty scheduler at time 0.
func New(opts ...Option) *System {
	s := &System{maxQueue: DefaultMaxQueue}
	for _, opt := range opts {
		opt(s)
	}
	heap.Init(&s.queue)
	return s
}

// Now returns the current virtual time.
func (s *System) Now() int64 { return s.now }

// After returns now + dt without scheduling anything.
func (s *System) After(dt int64) int64 { return s.now + dt }

// Schedule enqueues ev, keyed by (ev.Time(), an assigned insertion
// sequence). Returns an OverflowError once the queue is at capacity.
func (s *System) Schedule(ev event.Event) error {
	if len(s.queue) >= s.maxQueue {
		return errcode.New(errcode.OverflowError, "Schedule", fmt.Sprintf("queue at capacity (%d)", s.maxQueue), nil)
	}
	s.seq++
	event.AssignSeq(ev, s.seq)
	heap.Push(&s.queue, &queueItem{ev: ev})
	return nil
}

// Attach adds h to the end of the handler list; handlers run in
// attach order for every event they match.
func (s *System) Attach(h *event.Handler) {
	s.handlers = append(s.handlers, h)
}

// Detach removes every attached handler for which pred returns true.
// Passing a func that compares by pointer identity removes exactly
// one handler.
func (s *System) Detach(pred func(*event.Handler) bool) {
	kept := s.handlers[:0]
	for _, h := range s.handlers {
		if !pred(h) {
			kept = append(kept, h)
		}
	}
	s.handlers = kept
}

// Advance drains every event with time <= now+dt inclusive, then
// unconditionally sets now += dt. A dt of 0 still drains anything
// already due at the current time. While an event is dispatched, now
// is that event's time, so a handler scheduling at Now()+delay times
// its event from the one being handled. Because draining may schedule
// further events at or after the current event's time, the loop
// re-checks the heap top on every iteration rather than snapshotting
// it up front.
func (s *System) Advance(dt int64) {
	deadline := s.now + dt
	for len(s.queue) > 0 && s.queue[0].ev.Time() <= deadline {
		item := heap.Pop(&s.queue).(*queueItem)
		if t := item.ev.Time(); t > s.now {
			s.now = t
		}
		s.execute(item.ev)
	}
	s.now = deadline
}

// Execute dispatches one event to every matching handler, in attach
// order, emitting a trace line first. A handler returning an error
// aborts just that handler; the error is logged via the fault topic
// and the drain loop continues.
func (s *System) Execute(ev event.Event) {
	s.execute(ev)
}

func (s *System) execute(ev event.Event) {
	s.publishTrace(ev)
	for _, h := range s.handlers {
		if !h.Matches(ev) {
			continue
		}
		if err := h.Handle(ev); err != nil {
			s.publishFault(ev, err)
		}
	}
}

func (s *System) publishTrace(ev event.Event) {
	if s.trace == nil {
		return
	}
	s.trace.Publish(obsbus.Message{Topic: TraceTopic, Payload: formatTrace(ev)})
}

func (s *System) publishFault(ev event.Event, err error) {
	if s.trace == nil {
		return
	}
	s.trace.Publish(obsbus.Message{Topic: FaultTopic, Payload: fmt.Sprintf("event %s @t=%d: %v", ev.Type(), ev.Time(), err)})
}

func formatTrace(ev event.Event) string {
	source := "<nil>"
	if s := ev.Source(); s != nil {
		source = s.FullName()
	}
	target := "<nil>"
	if t := ev.Target(); t != nil {
		target = t.FullName()
	}
	return fmt.Sprintf("t=%d seq=%d %s %s -> %s", ev.Time(), ev.Seq(), ev.Type(), source, target)
}

package scheduler

import (
	"testing"

	"github.com/jangala-dev/logy/core/event"
)

// TestAdvanceIsTimeMonotonicAndSetsNow checks that across one Advance
// call, dispatched event times never decrease, and the final now
// equals pre_now + dt.
func TestAdvanceIsTimeMonotonicAndSetsNow(t *testing.T) {
	s := New()
	var times []int64
	s.Attach(event.Simple(nil, nil, nil, nil, func(e event.Event) error {
		times = append(times, e.Time())
		return nil
	}))

	_ = s.Schedule(event.NewWriteEvent(nil, nil, 5, 1))
	_ = s.Schedule(event.NewWriteEvent(nil, nil, 1, 2))
	_ = s.Schedule(event.NewWriteEvent(nil, nil, 3, 3))

	s.Advance(10)

	if s.Now() != 10 {
		t.Fatalf("Now() = %d, want 10", s.Now())
	}
	for i := 1; i < len(times); i++ {
		if times[i] < times[i-1] {
			t.Fatalf("dispatch order not time-monotonic: %v", times)
		}
	}
	if len(times) != 3 {
		t.Fatalf("expected 3 dispatched events, got %d", len(times))
	}
}

// TestFIFOTiebreakAtEqualTime checks that for two events scheduled at
// the same time, the one scheduled first dispatches first.
func TestFIFOTiebreakAtEqualTime(t *testing.T) {
	s := New()
	var order []string
	s.Attach(event.Simple(nil, nil, nil, nil, func(e event.Event) error {
		order = append(order, e.(*event.WriteEvent).Data.(string))
		return nil
	}))

	_ = s.Schedule(event.NewWriteEvent(nil, nil, 0, "first"))
	_ = s.Schedule(event.NewWriteEvent(nil, nil, 0, "second"))
	_ = s.Schedule(event.NewWriteEvent(nil, nil, 0, "third"))

	s.Advance(0)

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

// TestAdvanceZeroDrainsAtExactlyNow checks that advance(0) drains
// events scheduled at exactly the current time rather than a no-op.
func TestAdvanceZeroDrainsAtExactlyNow(t *testing.T) {
	s := New()
	fired := false
	s.Attach(event.Simple(nil, nil, nil, nil, func(event.Event) error {
		fired = true
		return nil
	}))
	_ = s.Schedule(event.NewWriteEvent(nil, nil, 0, nil))
	s.Advance(0)
	if !fired {
		t.Fatal("expected advance(0) to drain an event scheduled at time 0")
	}
}

// TestHandlerErrorDoesNotHaltDrain checks that a handler's error is
// recovered, and subsequent events still dispatch.
func TestHandlerErrorDoesNotHaltDrain(t *testing.T) {
	s := New()
	var dispatched int
	s.Attach(event.Simple(nil, nil, nil, nil, func(e event.Event) error {
		dispatched++
		if e.Time() == 0 {
			return errBoom
		}
		return nil
	}))
	_ = s.Schedule(event.NewWriteEvent(nil, nil, 0, nil))
	_ = s.Schedule(event.NewWriteEvent(nil, nil, 1, nil))
	s.Advance(1)
	if dispatched != 2 {
		t.Fatalf("dispatched = %d, want 2 (fault on first must not halt the second)", dispatched)
	}
}

// TestScheduleOverflowReturnsError covers the OverflowError kind:
// scheduling past capacity is a reported error, not a silent drop.
func TestScheduleOverflowReturnsError(t *testing.T) {
	s := New(WithMaxQueue(1))
	if err := s.Schedule(event.NewWriteEvent(nil, nil, 0, nil)); err != nil {
		t.Fatalf("first Schedule: %v", err)
	}
	if err := s.Schedule(event.NewWriteEvent(nil, nil, 0, nil)); err == nil {
		t.Fatal("expected overflow error at capacity")
	}
}

type boomError struct{}

func (boomError) Error() string { return "boom" }

var errBoom = boomError{}

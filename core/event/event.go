// Package event implements the two event records the scheduler
// dispatches, and the predicate-based handler contract used to attach
// behaviors to it.
package event

import "github.com/jangala-dev/logy/core/circuit"

// Type names an event kind for handlers that want to match by string
// rather than Go type.
type Type string

const (
	Write    Type = "WriteEvent"
	Internal Type = "InternalEvent"
)

// Event is the common contract both event records satisfy.
type Event interface {
	Type() Type
	Source() circuit.Element
	Target() circuit.Element
	Time() int64
	// Seq is the monotonic scheduling sequence number used as the
	// secondary priority key; 0 until Schedule assigns it.
	Seq() uint64
	setSeq(uint64)
}

type base struct {
	source circuit.Element
	target circuit.Element
	time   int64
	seq    uint64
}

func (b *base) Source() circuit.Element { return b.source }
func (b *base) Target() circuit.Element { return b.target }
func (b *base) Time() int64             { return b.time }
func (b *base) Seq() uint64             { return b.seq }
func (b *base) setSeq(seq uint64)       { b.seq = seq }

// WriteEvent: "at this time, source writes data to target."
type WriteEvent struct {
	base
	Data any
}

func NewWriteEvent(source, target circuit.Element, time int64, data any) *WriteEvent {
	return &WriteEvent{base: base{source: source, target: target, time: time}, Data: data}
}

func (*WriteEvent) Type() Type { return Write }

// InternalEvent: a notification that source's state changed;
// PrevState is the snapshot immediately before the change.
type InternalEvent struct {
	base
	PrevState map[string]any
}

func NewInternalEvent(source, target circuit.Element, time int64, prevState map[string]any) *InternalEvent {
	return &InternalEvent{base: base{source: source, target: target, time: time}, PrevState: prevState}
}

func (*InternalEvent) Type() Type { return Internal }

// AssignSeq is called once by the scheduler at schedule time; exported
// via the package rather than the interface so only scheduler.System
// is expected to call it.
func AssignSeq(e Event, seq uint64) { e.setSeq(seq) }

package circuit

import (
	"fmt"

	"github.com/jangala-dev/logy/errcode"
)

const wireClassifier = "W"

// WireBehavior is the engine-supplied policy invoked when a wire
// accepts a write through one of its IN pins.
type WireBehavior interface {
	OnPinWrite(wire *Wire, writer *Pin, value any)
}

// wireEndpoint is a (pin, direction) pair with its per-endpoint delay.
type wireEndpoint struct {
	pin       *Pin
	direction Direction
	delay     int
}

// Wire owns an unordered set of pin endpoints, each tagged IN or OUT
// with a non-negative integer delay. It holds no buffered data of its
// own (see DESIGN.md for why a wire carries no value slot).
type Wire struct {
	Base
	behavior  WireBehavior
	endpoints []wireEndpoint
}

// EndpointSpec names one pin and the delay applied at that endpoint.
type EndpointSpec struct {
	Pin   *Pin
	Delay int
}

// NewWire builds a wire from its IN and OUT endpoint specs.
func NewWire(ins, outs []EndpointSpec, name string, behavior WireBehavior) *Wire {
	w := &Wire{behavior: behavior}
	w.Init(w, wireClassifier, name)
	for _, spec := range ins {
		w.endpoints = append(w.endpoints, wireEndpoint{pin: spec.Pin, direction: In, delay: spec.Delay})
	}
	for _, spec := range outs {
		w.endpoints = append(w.endpoints, wireEndpoint{pin: spec.Pin, direction: Out, delay: spec.Delay})
	}
	return w
}

// Direct builds a single IN -> single OUT wire, the common point-to-point case.
func Direct(start, end *Pin, delay int, name string, behavior WireBehavior) *Wire {
	if name == "" {
		name = fmt.Sprintf("[%s:%s]", start.FullName(), end.FullName())
	}
	return NewWire([]EndpointSpec{{Pin: start, Delay: delay}}, []EndpointSpec{{Pin: end, Delay: 0}}, name, behavior)
}

// Branch builds a single IN pin fanning out to many OUT pins.
func Branch(start *Pin, ends []EndpointSpec, name string, behavior WireBehavior) *Wire {
	if name == "" && len(ends) > 0 {
		name = fmt.Sprintf("[%s:%s...]", start.FullName(), ends[0].Pin.FullName())
	}
	return NewWire([]EndpointSpec{{Pin: start, Delay: 0}}, ends, name, behavior)
}

// SetBehavior binds the behavior this wire invokes on a pin write.
func (w *Wire) SetBehavior(b WireBehavior) { w.behavior = b }

// HasEndpoint reports whether pin is attached with the given direction.
func (w *Wire) HasEndpoint(pin *Pin, dir Direction) bool {
	_, ok := w.find(pin, dir)
	return ok
}

// Delay returns the configured delay at the given endpoint.
func (w *Wire) Delay(pin *Pin, dir Direction) (int, error) {
	ep, ok := w.find(pin, dir)
	if !ok {
		return 0, fmt.Errorf("circuit: wire %s has no %s endpoint for pin %s", w.FullName(), dir, pin.FullName())
	}
	return ep.delay, nil
}

// OutEndpoints returns every OUT endpoint, in declaration order.
func (w *Wire) OutEndpoints() []EndpointSpec {
	var out []EndpointSpec
	for _, ep := range w.endpoints {
		if ep.direction == Out {
			out = append(out, EndpointSpec{Pin: ep.pin, Delay: ep.delay})
		}
	}
	return out
}

func (w *Wire) find(pin *Pin, dir Direction) (wireEndpoint, bool) {
	for _, ep := range w.endpoints {
		if ep.pin == pin && ep.direction == dir {
			return ep, true
		}
	}
	return wireEndpoint{}, false
}

// Write requires the writer to be an IN-endpoint pin, reporting a
// topology error otherwise, and forwards to the behavior.
func (w *Wire) Write(value any, writer Element) error {
	pin, ok := writer.(*Pin)
	if !ok || !w.HasEndpoint(pin, In) {
		return errcode.New(errcode.TopologyError, "Wire.Write", fmt.Sprintf("wire %s: write rejected, writer is not an IN endpoint", w.FullName()), nil)
	}
	w.OnPinWrite(pin, value)
	return nil
}

// OnPinWrite is invoked directly by Write rather than through the
// update-hook machinery, because a Wire has no buffered state slot of
// its own to snapshot.
func (w *Wire) OnPinWrite(pin *Pin, value any) {
	if w.behavior == nil {
		return
	}
	w.behavior.OnPinWrite(w, pin, value)
}

// OnUpdate satisfies UpdateHook; a Wire declares no state slots so
// this is never actually invoked, but Base.Init requires a hook.
func (w *Wire) OnUpdate(map[string]any) {}

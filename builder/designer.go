// Package builder implements CircuitDesigner, a fluent accumulator over
// core/circuit's constructors. It is grounded on the original
// CircuitDesigner/ElementAccess triad (core/designer.py): that source
// leans on Python's __getattr__/__setattr__ magic to let callers write
// designer.comp.reg_file = Component() and have a namespace spring into
// existence. Go has no such hook, so CircuitDesigner instead exposes
// explicit Pin/Wire/Component methods that queue each element for the
// root component (pins and components are also remembered by name), an
// Attach that adds a handler to the engine's scheduler, and a single
// Build that emits the accumulated elements as one root Component and
// registers it with the engine — the
// same "pure glue over the core constructors" contract the original
// exposes, without runtime attribute synthesis.
package builder

import (
	"fmt"

	"github.com/jangala-dev/logy/core/circuit"
	"github.com/jangala-dev/logy/core/data"
	"github.com/jangala-dev/logy/core/engine"
	"github.com/jangala-dev/logy/core/event"
)

// CircuitDesigner accumulates pins, wires, components and handlers
// against one Engine, then emits a single root Component (spec §6:
// "a fluent API to accumulate pins, wires, components, handlers and
// emit a single Component").
type CircuitDesigner struct {
	engine *engine.Engine

	pinSpecs []circuit.PinSpec
	pins     map[string]*circuit.Pin
	wires    []*circuit.Wire
	comps    []*circuit.Component
	compsByN map[string]*circuit.Component
}

// New returns a designer building against e.
func New(e *engine.Engine) *CircuitDesigner {
	return &CircuitDesigner{
		engine:   e,
		pins:     make(map[string]*circuit.Pin),
		compsByN: make(map[string]*circuit.Component),
	}
}

// Pin creates a boundary pin, remembers it by name, and queues it to be
// added to the root component Build() emits.
func (d *CircuitDesigner) Pin(name string, dir circuit.Direction, initial data.Value) (*circuit.Pin, error) {
	if _, dup := d.pins[name]; dup {
		return nil, fmt.Errorf("builder: duplicate pin name %q", name)
	}
	p := circuit.NewPin(initial, name, nil)
	d.pins[name] = p
	d.pinSpecs = append(d.pinSpecs, circuit.PinSpec{Pin: p, Direction: dir, ID: name})
	return p, nil
}

// PinByName looks up a previously-created pin.
func (d *CircuitDesigner) PinByName(name string) (*circuit.Pin, bool) {
	p, ok := d.pins[name]
	return p, ok
}

// Wire queues an already-built wire for inclusion in the root component.
func (d *CircuitDesigner) Wire(w *circuit.Wire) *circuit.Wire {
	d.wires = append(d.wires, w)
	return w
}

// Component queues an already-built sub-component (an AndGate, a
// Register, a nested CircuitDesigner's own root) for inclusion in the
// root component.
func (d *CircuitDesigner) Component(name string, c *circuit.Component) (*circuit.Component, error) {
	if _, dup := d.compsByN[name]; dup {
		return nil, fmt.Errorf("builder: duplicate component name %q", name)
	}
	d.compsByN[name] = c
	d.comps = append(d.comps, c)
	return c, nil
}

// ComponentByName looks up a previously-queued sub-component.
func (d *CircuitDesigner) ComponentByName(name string) (*circuit.Component, bool) {
	c, ok := d.compsByN[name]
	return c, ok
}

// Attach wires a handler directly onto the underlying engine's
// scheduler, for callers that want to observe propagation without
// waiting for the root component to be built.
func (d *CircuitDesigner) Attach(h *event.Handler) *CircuitDesigner {
	d.engine.Scheduler().Attach(h)
	return d
}

// Build assembles every pin, wire and sub-component accumulated so far
// into one root Component, registers it (and everything it owns) with
// the Engine, and returns it.
func (d *CircuitDesigner) Build(name string) (*circuit.Component, error) {
	root, err := circuit.NewComponent(circuit.ComponentClassifier, name, d.pinSpecs, d.wires, d.comps, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	d.engine.AddComp(root)
	return root, nil
}

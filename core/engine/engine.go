// Package engine wires the three propagation behaviors into a
// scheduler, and exposes the Engine facade applications build circuits
// against: AddPin, AddWire, AddComp, and the underlying scheduler.
package engine

import (
	"github.com/jangala-dev/logy/core/circuit"
	"github.com/jangala-dev/logy/core/scheduler"
	"github.com/jangala-dev/logy/internal/obsbus"
)

// Engine owns the registry of known elements, the scheduler, and the
// three behavior singletons that implement circuit propagation.
type Engine struct {
	registry  *circuit.Registry
	scheduler *scheduler.System
	trace     *obsbus.Bus

	pins  []*circuit.Pin
	wires []*circuit.Wire
	comps []*circuit.Component

	pinBehavior  *pinBehavior
	wireBehavior *wireBehavior
	compBehavior *componentBehavior
}

// Option configures a new Engine before its scheduler is built.
type Option func(*[]scheduler.Option)

// WithMaxQueue bounds the scheduler's queue.
func WithMaxQueue(n int) Option {
	return func(opts *[]scheduler.Option) { *opts = append(*opts, scheduler.WithMaxQueue(n)) }
}

// New returns an Engine with an empty registry and a scheduler at
// virtual time 0. Trace and fault lines are published on
// scheduler.TraceTopic / scheduler.FaultTopic via Trace().
func New(opts ...Option) *Engine {
	e := &Engine{
		registry: circuit.NewRegistry(),
		trace:    obsbus.New(),
	}
	e.pinBehavior = &pinBehavior{engine: e}
	e.wireBehavior = &wireBehavior{engine: e}
	e.compBehavior = &componentBehavior{engine: e}

	var schedOpts []scheduler.Option
	for _, opt := range opts {
		opt(&schedOpts)
	}
	schedOpts = append(schedOpts, scheduler.WithTrace(e.trace))
	e.scheduler = scheduler.New(schedOpts...)
	e.attachGlueHandlers()
	return e
}

// Scheduler returns the underlying event scheduler.
func (e *Engine) Scheduler() *scheduler.System { return e.scheduler }

// Trace returns the obsbus the scheduler publishes trace/fault lines on.
func (e *Engine) Trace() *obsbus.Bus { return e.trace }

// Registry returns the engine-scoped identity map.
func (e *Engine) Registry() *circuit.Registry { return e.registry }

// AddPin registers a pin and binds its behavior.
func (e *Engine) AddPin(p *circuit.Pin) *circuit.Pin {
	if e.knowsPin(p) {
		return p
	}
	e.registry.Add(p)
	p.SetBehavior(e.pinBehavior)
	e.pins = append(e.pins, p)
	return p
}

// AddWire registers a wire and binds its behavior.
func (e *Engine) AddWire(w *circuit.Wire) *circuit.Wire {
	e.registry.Add(w)
	w.SetBehavior(e.wireBehavior)
	e.wires = append(e.wires, w)
	return w
}

// AddComp registers comp and, recursively, every sub-component it
// owns, every wire it owns, and every boundary pin it exposes.
func (e *Engine) AddComp(c *circuit.Component) *circuit.Component {
	e.registry.Add(c)
	c.SetBehavior(e.compBehavior)
	e.comps = append(e.comps, c)

	for _, spec := range c.Pins() {
		e.AddPin(spec.Pin)
	}
	for _, w := range c.Wires() {
		e.AddWire(w)
	}
	for _, sub := range c.SubComponents() {
		e.AddComp(sub)
	}
	return c
}

func (e *Engine) knowsPin(p *circuit.Pin) bool {
	for _, known := range e.pins {
		if known == p {
			return true
		}
	}
	return false
}

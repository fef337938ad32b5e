package engine

import (
	"github.com/jangala-dev/logy/core/circuit"
	"github.com/jangala-dev/logy/core/event"
	"github.com/jangala-dev/logy/errcode"
)

// pinBehavior schedules the two fan-outs a pin's data change triggers:
// a WriteEvent to every wire that has this pin as an IN endpoint, and
// an InternalEvent to every component that has this pin as a boundary
// IN endpoint.
type pinBehavior struct{ engine *Engine }

func (b *pinBehavior) OnDataUpdate(pin *circuit.Pin, prev map[string]any) {
	now := b.engine.scheduler.Now()
	for _, w := range b.engine.wires {
		if !w.HasEndpoint(pin, circuit.In) {
			continue
		}
		delay, err := w.Delay(pin, circuit.In)
		if err != nil {
			continue
		}
		_ = b.engine.scheduler.Schedule(event.NewWriteEvent(pin, w, now+int64(delay), pin.Data()))
	}
	for _, c := range b.engine.comps {
		if !c.HasEndpoint(pin, circuit.In) {
			continue
		}
		delay := c.Delay(pin, circuit.In)
		_ = b.engine.scheduler.Schedule(event.NewInternalEvent(pin, c, now+int64(delay), prev))
	}
}

// wireBehavior fans a pin write on a wire out to every OUT endpoint,
// each at its own configured delay.
type wireBehavior struct{ engine *Engine }

func (b *wireBehavior) OnPinWrite(wire *circuit.Wire, writer *circuit.Pin, value any) {
	now := b.engine.scheduler.Now()
	for _, ep := range wire.OutEndpoints() {
		_ = b.engine.scheduler.Schedule(event.NewWriteEvent(wire, ep.Pin, now+int64(ep.Delay), value))
	}
}

// componentBehavior implements the three update paths a component's
// state-slot mapping exposes: a boundary pin changing (apply its
// transform), a state slot changing (refresh affected slots and drive
// OUT pins), and a pin-write request (hand the value to the pin).
type componentBehavior struct{ engine *Engine }

func (b *componentBehavior) OnPinUpdate(comp *circuit.Component, pin *circuit.Pin, prev map[string]any) {
	id, dir, err := findPinID(comp, pin)
	if err != nil || dir != circuit.In {
		return
	}
	_ = comp.ApplyInput(id, pin.Data())
}

func (b *componentBehavior) OnStateUpdate(comp *circuit.Component, state, prev map[string]any) {
	now := b.engine.scheduler.Now()
	for _, alias := range circuit.SortedAliases(state) {
		for _, affected := range comp.AffectedAliases(alias) {
			_ = comp.Refresh(affected)
		}
		for _, ep := range comp.OutPinsForAlias(alias) {
			_ = b.engine.scheduler.Schedule(event.NewInternalEvent(comp, ep.Pin, now+int64(ep.Delay), prev))
		}
	}
}

func (b *componentBehavior) WritePin(comp *circuit.Component, pin *circuit.Pin, value any) {
	_ = pin.Write(value, comp)
}

func findPinID(comp *circuit.Component, pin *circuit.Pin) (string, circuit.Direction, error) {
	for _, spec := range comp.Pins() {
		if spec.Pin == pin {
			return spec.ID, spec.Direction, nil
		}
	}
	return "", 0, errcode.New(errcode.LookupError, "findPinID", "pin is not a boundary endpoint of this component", nil)
}

// isComponentTarget, isPinTarget and isComponentSource are ElementMatch
// predicates used to route InternalEvents by the concrete type of their
// endpoints: isComponentTarget selects pin-to-component events (driving
// ApplyInput), isComponentSource with isPinTarget selects
// component-to-pin events (driving a boundary OUT write).
func isComponentTarget(el circuit.Element) bool {
	_, ok := el.(*circuit.Component)
	return ok
}

func isPinTarget(el circuit.Element) bool {
	_, ok := el.(*circuit.Pin)
	return ok
}

func isComponentSource(el circuit.Element) bool {
	_, ok := el.(*circuit.Component)
	return ok
}

func (e *Engine) attachGlueHandlers() {
	// Generic write-glue: every WriteEvent's target knows how to accept
	// a value from its source (a Pin or a Wire).
	e.scheduler.Attach(event.Simple(
		[]event.Type{event.Write}, nil, nil, nil,
		func(ev event.Event) error {
			we := ev.(*event.WriteEvent)
			target, ok := we.Target().(interface {
				Write(value any, writer circuit.Element) error
			})
			if !ok {
				return errcode.New(errcode.TopologyError, "write-glue", "target does not accept writes", nil)
			}
			return target.Write(we.Data, we.Source())
		},
	))

	// Pin -> component: an InternalEvent whose target is a component
	// asks it to re-evaluate the boundary pin that changed.
	e.scheduler.Attach(event.Simple(
		[]event.Type{event.Internal}, nil, isComponentTarget, nil,
		func(ev event.Event) error {
			ie := ev.(*event.InternalEvent)
			comp, ok := ie.Target().(*circuit.Component)
			if !ok {
				return nil
			}
			pin, ok := ie.Source().(*circuit.Pin)
			if !ok {
				return nil
			}
			comp.OnPinUpdate(pin, ie.PrevState)
			return nil
		},
	))

	// Component -> pin: an InternalEvent whose source is a component and
	// target is a pin asks the component to drive that pin's mapped
	// value.
	e.scheduler.Attach(event.Simple(
		[]event.Type{event.Internal}, isComponentSource, isPinTarget, nil,
		func(ev event.Event) error {
			ie := ev.(*event.InternalEvent)
			comp, ok := ie.Source().(*circuit.Component)
			if !ok {
				return nil
			}
			pin, ok := ie.Target().(*circuit.Pin)
			if !ok {
				return nil
			}
			alias, ok := comp.AliasForPin(pin, circuit.Out)
			if !ok {
				return nil
			}
			comp.WritePin(pin, comp.Get(alias))
			return nil
		},
	))
}

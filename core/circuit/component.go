package circuit

import (
	"fmt"

	"github.com/jangala-dev/logy/core/data"
	"github.com/jangala-dev/logy/errcode"
)

// ComponentClassifier is the root classifier segment every Component
// chains onto via ChainClassifier; concrete component types built in
// other packages (see builtin) compose their own classifier on top of
// this rather than repeating the literal "C".
const ComponentClassifier = "C"

// ComponentBehavior is the engine-supplied policy for a component's
// three update paths: a boundary pin changing, a state
// slot changing, and the resulting need to drive an OUT pin.
type ComponentBehavior interface {
	OnPinUpdate(comp *Component, pin *Pin, prev map[string]any)
	OnStateUpdate(comp *Component, state, prev map[string]any)
	WritePin(comp *Component, pin *Pin, value any)
}

// ComponentObserver is an optional, per-instance hook a concrete
// component type can register alongside the shared ComponentBehavior,
// for logic that depends on which specific alias changed (e.g. clock
// edge detection) rather than on the generic cascade every component
// goes through. Registered once via SetObserver; Go has no per-class
// method override to intercept here the way the source's update(state)
// override does, so this is the explicit equivalent.
type ComponentObserver interface {
	OnStateChange(comp *Component, alias string, prev, next any)
}

// PinSpec names one boundary pin, its direction, and an optional
// stable id used by the mapping facility and by GetPin.
type PinSpec struct {
	Pin       *Pin
	Direction Direction
	ID        string
}

type componentPinEntry struct {
	pin       *Pin
	direction Direction
}

// MappedInput declares a state slot fed by a boundary IN pin: every
// time the pin's data changes, Transform(data) becomes the slot's new
// value. Declared as an explicit descriptor passed to the constructor
// rather than attached via a decorator, since Go has no annotation
// mechanism to hang mapping metadata off a field.
type MappedInput struct {
	PinID     string
	Alias     string
	Transform func(data.Value) any
	Delay     int
}

// MappedOutput declares a state slot driven onto a boundary OUT pin
// whenever it changes. When Eval is non-nil, the slot is a pure
// function of Sources, re-evaluated whenever any Source changes
// (Refresh). When Eval is nil, the slot is a manually-driven latch:
// nothing recomputes it automatically, and a component-specific
// ComponentObserver is expected to assign it directly through
// Base.SetState (e.g. an edge-triggered register's data output).
type MappedOutput struct {
	PinID   string
	Alias   string
	Sources []string
	Eval    func(values ...any) any
	Delay   int
}

// Component is an element owning boundary pin endpoints, internal
// wires, sub-components, and the mapping tables that relate pin ids to
// state-slot aliases.
type Component struct {
	Base
	behavior ComponentBehavior
	observer ComponentObserver

	pins    []PinSpec
	pinByID map[string]componentPinEntry
	wires   []*Wire
	comps   []*Component

	inputs   map[string]MappedInput
	outputs  map[string]MappedOutput
	pinAlias map[string]string   // pin id -> state alias ("pin_mapped")
	aliasPin map[string][]string // state alias -> pin ids driven by it
	affected map[string][]string // state alias -> dependent state aliases ("pin_affected")
	pinDelay map[string]int      // pin id -> delay ("pin_delay")
}

// NewComponent builds a component. classifierOwn is this concrete
// type's own classifier contribution (already chained with its
// parent's via ChainClassifier by the caller).
func NewComponent(classifierOwn, name string, pins []PinSpec, wires []*Wire, comps []*Component,
	inputs []MappedInput, outputs []MappedOutput, behavior ComponentBehavior) (*Component, error) {

	c := &Component{
		behavior: behavior,
		pins:     append([]PinSpec(nil), pins...),
		pinByID:  make(map[string]componentPinEntry),
		wires:    append([]*Wire(nil), wires...),
		comps:    append([]*Component(nil), comps...),
		inputs:   make(map[string]MappedInput),
		outputs:  make(map[string]MappedOutput),
		pinAlias: make(map[string]string),
		aliasPin: make(map[string][]string),
		affected: make(map[string][]string),
		pinDelay: make(map[string]int),
	}

	for _, spec := range pins {
		if spec.ID != "" {
			if _, dup := c.pinByID[spec.ID]; dup {
				return nil, errcode.New(errcode.TopologyError, "NewComponent", fmt.Sprintf("component %s: duplicate pin id %q", name, spec.ID), nil)
			}
			c.pinByID[spec.ID] = componentPinEntry{pin: spec.Pin, direction: spec.Direction}
		}
	}

	aliases := make(map[string]bool)
	declare := func(alias string) error {
		if aliases[alias] {
			return errcode.New(errcode.TopologyError, "NewComponent", fmt.Sprintf("component %s: duplicate state slot alias %q", name, alias), nil)
		}
		aliases[alias] = true
		return nil
	}

	var slotOrder []string
	for _, in := range inputs {
		if err := declare(in.Alias); err != nil {
			return nil, err
		}
		slotOrder = append(slotOrder, in.Alias)
		c.inputs[in.PinID] = in
		c.pinAlias[in.PinID] = in.Alias
		c.aliasPin[in.Alias] = append(c.aliasPin[in.Alias], in.PinID)
		c.pinDelay[in.PinID] = in.Delay
	}
	for _, out := range outputs {
		if err := declare(out.Alias); err != nil {
			return nil, err
		}
		slotOrder = append(slotOrder, out.Alias)
		c.outputs[out.PinID] = out
		c.pinAlias[out.PinID] = out.Alias
		c.aliasPin[out.Alias] = append(c.aliasPin[out.Alias], out.PinID)
		c.pinDelay[out.PinID] = out.Delay
		for _, src := range out.Sources {
			c.affected[src] = append(c.affected[src], out.Alias)
		}
	}

	c.Init(c, classifierOwn, name, slotOrder...)

	// seed inputs from the pin's current data, outputs from their eval
	for _, in := range inputs {
		entry, ok := c.pinByID[in.PinID]
		if !ok {
			continue
		}
		_ = c.Base.SetState(in.Alias, in.Transform(entry.pin.Data()))
	}
	for _, out := range outputs {
		if out.Eval == nil {
			continue
		}
		_ = c.Base.SetState(out.Alias, c.evalOutput(out))
	}

	return c, nil
}

func (c *Component) evalOutput(out MappedOutput) any {
	args := make([]any, len(out.Sources))
	for i, src := range out.Sources {
		args[i] = c.Get(src)
	}
	return out.Eval(args...)
}

// SetBehavior binds the behavior this component invokes for its three
// update paths.
func (c *Component) SetBehavior(b ComponentBehavior) { c.behavior = b }

// Pins returns every boundary pin, regardless of direction.
func (c *Component) Pins() []PinSpec { return append([]PinSpec(nil), c.pins...) }

// Wires returns the internal wires this component owns.
func (c *Component) Wires() []*Wire { return append([]*Wire(nil), c.wires...) }

// SubComponents returns the sub-components this component owns.
func (c *Component) SubComponents() []*Component { return append([]*Component(nil), c.comps...) }

// SetObserver binds the per-instance state-change hook. At most one
// observer is supported; a second call replaces the first.
func (c *Component) SetObserver(o ComponentObserver) { c.observer = o }

// HasEndpoint reports whether pin is a boundary endpoint in the given direction.
func (c *Component) HasEndpoint(pin *Pin, dir Direction) bool {
	for _, spec := range c.pins {
		if spec.Pin == pin && spec.Direction == dir {
			return true
		}
	}
	return false
}

// GetPin looks up a boundary pin by its mapping id.
func (c *Component) GetPin(id string) (*Pin, Direction, error) {
	entry, ok := c.pinByID[id]
	if !ok {
		return nil, 0, errcode.New(errcode.LookupError, "GetPin", fmt.Sprintf("component %s has no pin id %q", c.FullName(), id), nil)
	}
	return entry.pin, entry.direction, nil
}

// Delay returns the configured delay for the boundary endpoint (pin,
// dir), or 0 if that endpoint carries no mapping.
func (c *Component) Delay(pin *Pin, dir Direction) int {
	for id, entry := range c.pinByID {
		if entry.pin == pin && entry.direction == dir {
			return c.pinDelay[id]
		}
	}
	return 0
}

// InputFor returns the MappedInput bound to a pin id, if any.
func (c *Component) InputFor(pinID string) (MappedInput, bool) {
	in, ok := c.inputs[pinID]
	return in, ok
}

// ApplyInput re-evaluates a mapped IN pin's transform over the given
// data and assigns it if it differs from the cached value, firing the
// state-update cascade. It is the engine's entry point for a boundary
// pin write.
func (c *Component) ApplyInput(pinID string, value data.Value) error {
	in, ok := c.inputs[pinID]
	if !ok {
		return nil
	}
	next := in.Transform(value)
	if !valuesEqual(c.Get(in.Alias), next) {
		return c.Base.SetState(in.Alias, next)
	}
	return nil
}

// Refresh forces re-evaluation of a mapped OUT alias over its current
// sources, assigning (and so firing the cascade) only if it changed.
// Expressed as an explicit call rather than a property-getter side
// effect, since reads in Go carry no hook point to piggyback on.
func (c *Component) Refresh(alias string) error {
	for _, out := range c.outputs {
		if out.Alias == alias {
			if out.Eval == nil {
				return nil
			}
			next := c.evalOutput(out)
			if !valuesEqual(c.Get(alias), next) {
				return c.Base.SetState(alias, next)
			}
			return nil
		}
	}
	return nil
}

// AliasForPin returns the mapped state alias for the boundary endpoint
// (pin, dir), if one exists.
func (c *Component) AliasForPin(pin *Pin, dir Direction) (string, bool) {
	for id, entry := range c.pinByID {
		if entry.pin == pin && entry.direction == dir {
			alias, ok := c.pinAlias[id]
			return alias, ok
		}
	}
	return "", false
}

// AffectedAliases returns the state aliases that depend on alias via
// some MappedOutput's Sources ("pin_affected").
func (c *Component) AffectedAliases(alias string) []string {
	return append([]string(nil), c.affected[alias]...)
}

// OutPinsForAlias returns the boundary OUT pins whose mapped alias is
// exactly the given one, with their configured delay.
func (c *Component) OutPinsForAlias(alias string) []EndpointSpec {
	var out []EndpointSpec
	for _, id := range c.aliasPin[alias] {
		entry, ok := c.pinByID[id]
		if !ok || entry.direction != Out {
			continue
		}
		out = append(out, EndpointSpec{Pin: entry.pin, Delay: c.pinDelay[id]})
	}
	return out
}

// OnUpdate implements UpdateHook: it compares the post-mutation
// snapshot against prev and, only for the slots that actually changed,
// invokes the behavior's OnStateUpdate followed by the per-instance
// observer, if one is bound.
func (c *Component) OnUpdate(prev map[string]any) {
	changed := map[string]any{}
	changedPrev := map[string]any{}
	for alias, prevVal := range prev {
		if !valuesEqual(prevVal, c.Get(alias)) {
			changed[alias] = c.Get(alias)
			changedPrev[alias] = prevVal
		}
	}
	if len(changed) == 0 {
		return
	}
	if c.behavior != nil {
		c.behavior.OnStateUpdate(c, changed, changedPrev)
	}
	if c.observer != nil {
		for _, alias := range SortedAliases(changed) {
			c.observer.OnStateChange(c, alias, changedPrev[alias], changed[alias])
		}
	}
}

// OnPinUpdate is the engine's entry point when a boundary IN pin's
// data has changed.
func (c *Component) OnPinUpdate(pin *Pin, prev map[string]any) {
	if c.behavior != nil {
		c.behavior.OnPinUpdate(c, pin, prev)
	}
}

// WritePin asks the behavior to drive data onto one of this
// component's boundary pins.
func (c *Component) WritePin(pin *Pin, value any) {
	if c.behavior != nil {
		c.behavior.WritePin(c, pin, value)
	}
}

func valuesEqual(a, b any) bool {
	if av, ok := a.(data.Value); ok {
		if bv, ok2 := b.(data.Value); ok2 {
			return av.Equal(bv)
		}
		return false
	}
	return a == b
}

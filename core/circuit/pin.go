package circuit

import (
	"fmt"

	"github.com/jangala-dev/logy/core/data"
)

const pinClassifier = "P"

// PinBehavior is the engine-supplied policy invoked whenever a pin's
// buffered data changes. The concrete implementation (core/engine)
// walks the engine's wire and component registries to schedule the
// resulting WriteEvent/InternalEvent instances.
type PinBehavior interface {
	OnDataUpdate(pin *Pin, prev map[string]any)
}

// Pin is a buffered element holding a single data.Value.
type Pin struct {
	Base
	behavior PinBehavior
}

// NewPin constructs a pin carrying the given initial value. behavior
// may be nil until the pin is added to an engine, matching the
// source's lazily-bound class-level behavior singleton.
func NewPin(initial data.Value, name string, behavior PinBehavior) *Pin {
	p := &Pin{behavior: behavior}
	p.Init(p, pinClassifier, name, "data")
	// SetState fires OnUpdate immediately; behavior is nil-checked there
	// so construction never requires a behavior to be bound yet.
	_ = p.Base.SetState("data", initial)
	return p
}

// SetBehavior binds (or rebinds) the behavior invoked by OnUpdate;
// Engine.AddPin calls this once a pin joins an engine.
func (p *Pin) SetBehavior(b PinBehavior) { p.behavior = b }

// Data returns the pin's current value.
func (p *Pin) Data() data.Value {
	v, _ := p.Get("data").(data.Value)
	return v
}

// Write sets the pin's data, coercing a raw int through the current
// value's Of, or accepting a compatible data.Value directly.
func (p *Pin) Write(value any, writer Element) error {
	cur := p.Data()
	switch v := value.(type) {
	case data.Value:
		if cur != nil && !cur.Compatible(v) {
			return fmt.Errorf("circuit: pin %s: incompatible value", p.FullName())
		}
		raw := v.Val()
		next, err := cur.Of(&raw)
		if err != nil {
			return err
		}
		return p.Base.SetState("data", next)
	case int:
		next, err := cur.Of(&v)
		if err != nil {
			return err
		}
		return p.Base.SetState("data", next)
	case nil:
		next, err := cur.Of(nil)
		if err != nil {
			return err
		}
		return p.Base.SetState("data", next)
	default:
		return fmt.Errorf("circuit: pin %s: unsupported write value %T", p.FullName(), value)
	}
}

// OnUpdate implements UpdateHook: a data-slot change fires
// on_data_update(prev) straight through to the behavior, once one is
// bound. Construction writes the initial value before any behavior is
// attached, so a nil behavior is a tolerated no-op rather than a
// panic.
func (p *Pin) OnUpdate(prev map[string]any) {
	if p.behavior == nil {
		return
	}
	if prevData, _ := prev["data"].(data.Value); prevData == nil || !prevData.Equal(p.Data()) {
		p.behavior.OnDataUpdate(p, prev)
	}
}

package builtin

import (
	"github.com/jangala-dev/logy/core/circuit"
)

// AndGateClassifier is AndGate's own classifier contribution, chained
// onto circuit.ComponentClassifier.
const AndGateClassifier = "AND"

// AndGate is a plain combinational two-input AND, grounded directly on
// the MyComponent demo in core/primitive/component.py: two IN-mapped
// boolean inputs ("a", "b") and one OUT-mapped output computed by a
// pure eval over both. It carries no state beyond the three mapped
// aliases and never overrides OnStateChange, since its output is a
// pure function of its inputs rather than an edge-triggered latch.
func NewAndGate(a, b, out *circuit.Pin, name string) (*circuit.Component, error) {
	pins := []circuit.PinSpec{
		{Pin: a, Direction: circuit.In, ID: "a"},
		{Pin: b, Direction: circuit.In, ID: "b"},
		{Pin: out, Direction: circuit.Out, ID: "out"},
	}
	inputs := []circuit.MappedInput{
		{PinID: "a", Alias: "a", Transform: boolFromBit},
		{PinID: "b", Alias: "b", Transform: boolFromBit},
	}
	outputs := []circuit.MappedOutput{
		{
			PinID:   "out",
			Alias:   "out",
			Sources: []string{"a", "b"},
			Eval:    evalAnd,
		},
	}
	return circuit.NewComponent(circuit.ChainClassifier(circuit.ComponentClassifier, AndGateClassifier),
		name, pins, nil, nil, inputs, outputs, nil)
}

func evalAnd(values ...any) any {
	a, _ := values[0].(bool)
	b, _ := values[1].(bool)
	if a && b {
		return 1
	}
	return 0
}

// NewOrGate is the same shape with an OR eval, grounded on the same
// demo's mapping facility; kept alongside AndGate since nothing about
// the mapping mechanism is AND-specific.
func NewOrGate(a, b, out *circuit.Pin, name string) (*circuit.Component, error) {
	pins := []circuit.PinSpec{
		{Pin: a, Direction: circuit.In, ID: "a"},
		{Pin: b, Direction: circuit.In, ID: "b"},
		{Pin: out, Direction: circuit.Out, ID: "out"},
	}
	inputs := []circuit.MappedInput{
		{PinID: "a", Alias: "a", Transform: boolFromBit},
		{PinID: "b", Alias: "b", Transform: boolFromBit},
	}
	outputs := []circuit.MappedOutput{
		{
			PinID:   "out",
			Alias:   "out",
			Sources: []string{"a", "b"},
			Eval:    evalOr,
		},
	}
	return circuit.NewComponent(circuit.ChainClassifier(circuit.ComponentClassifier, "OR"),
		name, pins, nil, nil, inputs, outputs, nil)
}

func evalOr(values ...any) any {
	a, _ := values[0].(bool)
	b, _ := values[1].(bool)
	if a || b {
		return 1
	}
	return 0
}

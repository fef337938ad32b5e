package builtin

import (
	"github.com/jangala-dev/logy/core/circuit"
	"github.com/jangala-dev/logy/core/data"
)

// RegisterClassifier is Register's own classifier contribution.
// Register is a synchronous component (it embeds the clock-edge
// observer every clocked component in this package shares), so its
// full classifier chains ComponentClassifier -> SyncClassifier ->
// RegisterClassifier, i.e. "C_SYNC_REG" (spec §8 scenario 6).
const RegisterClassifier = "REG"

const (
	clkPinID     = "clk"
	dataInPinID  = "data_in"
	dataOutPinID = "data_out"

	clkAlias     = "clk"
	dataInAlias  = "data_in"
	dataOutAlias = "data_out"
)

// Register is an edge-triggered latch: on the configured clock edge it
// copies whatever data_in currently holds onto data_out. Grounded on
// builtin/register.py + builtin/clock.py's SyncComponent mixin, with
// the decorator-based mapping translated into explicit
// MappedInput/MappedOutput descriptors per the "runtime metaprogramming"
// REDESIGN FLAG, and the mixin's update() override translated into an
// EdgeTrigger ComponentObserver per the same flag.
type Register struct {
	*circuit.Component
	risingEdge bool
}

// NewRegister builds a Register around three already-constructed
// boundary pins. risingEdge selects which clock transition latches
// data_in onto data_out (spec §8 scenario 5: is_rising_edge).
func NewRegister(clk, dataIn, dataOut *circuit.Pin, risingEdge bool, name string) (*Register, error) {
	pins := []circuit.PinSpec{
		{Pin: clk, Direction: circuit.In, ID: clkPinID},
		{Pin: dataIn, Direction: circuit.In, ID: dataInPinID},
		{Pin: dataOut, Direction: circuit.Out, ID: dataOutPinID},
	}
	inputs := []circuit.MappedInput{
		{PinID: clkPinID, Alias: clkAlias, Transform: boolFromBit},
		{PinID: dataInPinID, Alias: dataInAlias, Transform: rawValue},
	}
	// data_out carries no Eval: it is a manually-driven latch (spec
	// §4.5's MappedOutput with Eval nil), assigned only by latch()
	// below on the configured clock edge, never recomputed from
	// data_in on its own.
	outputs := []circuit.MappedOutput{
		{PinID: dataOutPinID, Alias: dataOutAlias},
	}

	classifier := circuit.ChainClassifier(circuit.ChainClassifier(circuit.ComponentClassifier, SyncClassifier), RegisterClassifier)
	comp, err := circuit.NewComponent(classifier, name, pins, nil, nil, inputs, outputs, nil)
	if err != nil {
		return nil, err
	}

	reg := &Register{Component: comp, risingEdge: risingEdge}
	reg.SetObserver(&EdgeTrigger{
		Alias:       clkAlias,
		RisingEdge:  reg.onEdge(true),
		FallingEdge: reg.onEdge(false),
	})
	return reg, nil
}

func (r *Register) onEdge(rising bool) func() {
	return func() {
		if rising == r.risingEdge {
			r.latch()
		}
	}
}

// latch copies the cached data_in value onto data_out, which in turn
// fires the usual OnUpdate cascade (behaviors.go schedules an
// InternalEvent toward the data_out boundary pin).
func (r *Register) latch() {
	_ = r.SetState(dataOutAlias, r.Get(dataInAlias))
}

func rawValue(v data.Value) any { return v.Val() }

// Clk, DataIn and DataOut return the three boundary pins by their
// mapping id, for callers that only hold onto the Register.
func (r *Register) Clk() *circuit.Pin {
	p, _, _ := r.GetPin(clkPinID)
	return p
}

func (r *Register) DataIn() *circuit.Pin {
	p, _, _ := r.GetPin(dataInPinID)
	return p
}

func (r *Register) DataOut() *circuit.Pin {
	p, _, _ := r.GetPin(dataOutPinID)
	return p
}

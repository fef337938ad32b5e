package main

import (
	"fmt"

	"github.com/jangala-dev/logy/builder"
	"github.com/jangala-dev/logy/core/builtin"
	"github.com/jangala-dev/logy/core/circuit"
	"github.com/jangala-dev/logy/core/data"
	"github.com/jangala-dev/logy/core/engine"
)

// sampleCircuit mirrors spec §8 scenario 2 (the daisy chain): two
// 8-bit registers, a direct zero-delay wire from R1's output to R2's
// input, and a branch wire fanning a shared clock pin out to both
// registers' clk pins. It exists so `logyctl run`/`logyctl repl` have
// something to drive without requiring a script to describe topology
// as well as stimulus.
func sampleCircuit(e *engine.Engine) (map[string]*circuit.Pin, error) {
	d := builder.New(e)

	gclk, err := d.Pin("gclk", circuit.In, data.NewBinary(0, 1))
	if err != nil {
		return nil, err
	}
	r1In, err := d.Pin("r1_data_in", circuit.In, data.NewBinary(0, 8))
	if err != nil {
		return nil, err
	}
	r1Clk, err := d.Pin("r1_clk", circuit.In, data.NewBinary(0, 1))
	if err != nil {
		return nil, err
	}
	r1Out, err := d.Pin("r1_data_out", circuit.Out, data.NewBinary(0, 8))
	if err != nil {
		return nil, err
	}
	r2Clk, err := d.Pin("r2_clk", circuit.In, data.NewBinary(0, 1))
	if err != nil {
		return nil, err
	}
	r2In, err := d.Pin("r2_data_in", circuit.In, data.NewBinary(0, 8))
	if err != nil {
		return nil, err
	}
	r2Out, err := d.Pin("r2_data_out", circuit.Out, data.NewBinary(0, 8))
	if err != nil {
		return nil, err
	}

	r1, err := builtin.NewRegister(r1Clk, r1In, r1Out, true, "r1")
	if err != nil {
		return nil, err
	}
	r2, err := builtin.NewRegister(r2Clk, r2In, r2Out, true, "r2")
	if err != nil {
		return nil, err
	}
	if _, err := d.Component("r1", r1.Component); err != nil {
		return nil, err
	}
	if _, err := d.Component("r2", r2.Component); err != nil {
		return nil, err
	}

	d.Wire(circuit.Direct(r1Out, r2In, 0, "r1_to_r2", nil))
	d.Wire(circuit.Branch(gclk, []circuit.EndpointSpec{{Pin: r1Clk}, {Pin: r2Clk}}, "gclk_branch", nil))

	if _, err := d.Build("daisy_chain"); err != nil {
		return nil, fmt.Errorf("build sample circuit: %w", err)
	}

	return map[string]*circuit.Pin{
		"gclk":        gclk,
		"r1_data_in":  r1In,
		"r1_clk":      r1Clk,
		"r1_data_out": r1Out,
		"r2_clk":      r2Clk,
		"r2_data_out": r2Out,
	}, nil
}

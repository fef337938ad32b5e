// Package builtin ships the two worked components the end-to-end
// scenarios need on top of the core propagation engine: a plain
// combinational AndGate and an edge-triggered Register. Neither is
// part of the core (see spec §1): they are ordinary consumers of
// circuit.NewComponent's mapping descriptors, built the same way any
// application-level component would be.
package builtin

import (
	"github.com/jangala-dev/logy/core/circuit"
	"github.com/jangala-dev/logy/core/data"
)

// SyncClassifier is the classifier segment a clocked component chains
// onto ComponentClassifier before its own contribution, mirroring the
// source's SyncComponent mixin (core/builtin/clock.py) that every
// edge-triggered component embeds.
const SyncClassifier = "SYNC"

// EdgeTrigger is a ComponentObserver that watches one boolean-valued
// state alias (conventionally "clk") and calls RisingEdge or
// FallingEdge when it flips, the Go equivalent of SyncComponent.update
// comparing state['clk'] against self.clk. Component.OnUpdate only
// calls OnStateChange for aliases that actually changed, so the new
// value alone decides the direction: true is a rising edge, anything
// else a falling one.
type EdgeTrigger struct {
	Alias       string
	RisingEdge  func()
	FallingEdge func()
}

// OnStateChange implements circuit.ComponentObserver.
func (e *EdgeTrigger) OnStateChange(_ *circuit.Component, alias string, _, next any) {
	if alias != e.Alias {
		return
	}
	nextBool, _ := next.(bool)
	if nextBool {
		if e.RisingEdge != nil {
			e.RisingEdge()
		}
		return
	}
	if e.FallingEdge != nil {
		e.FallingEdge()
	}
}

// boolFromBit is the shared IN-mapping transform clocked components use
// for a single-bit control pin.
func boolFromBit(v data.Value) any { return v.Val() == 1 }

package engine

import (
	"testing"

	"github.com/jangala-dev/logy/core/builtin"
	"github.com/jangala-dev/logy/core/circuit"
	"github.com/jangala-dev/logy/core/data"
)

// scenario 1 (spec §8): a single register clocked high latches
// data_in onto data_out; the write lands only once the scheduler
// drains up to that time (here Advance(0)), never synchronously inside
// Write.
func TestSingleRegisterLatch(t *testing.T) {
	e := New()
	clk := e.AddPin(circuit.NewPin(data.NewBinary(0, 1), "clk", nil))
	din := e.AddPin(circuit.NewPin(data.NewBinary(0, 8), "din", nil))
	dout := e.AddPin(circuit.NewPin(data.NewBinary(0, 8), "dout", nil))

	reg, err := builtin.NewRegister(clk, din, dout, true, "r1")
	if err != nil {
		t.Fatalf("NewRegister: %v", err)
	}
	e.AddComp(reg.Component)

	if err := din.Write(0x42, nil); err != nil {
		t.Fatalf("Write din: %v", err)
	}
	e.Scheduler().Advance(0)
	if dout.Data().Val() != 0 {
		t.Fatalf("dout = %#x before any clock edge, want 0", dout.Data().Val())
	}

	if err := clk.Write(1, nil); err != nil {
		t.Fatalf("Write clk: %v", err)
	}
	e.Scheduler().Advance(0)
	if dout.Data().Val() != 0x42 {
		t.Fatalf("dout = %#x after rising edge, want 0x42", dout.Data().Val())
	}
}

// scenario 2: a daisy chain of two registers sharing one clock, with a
// zero-delay direct wire from r1.data_out to r2.data_in. One clock
// edge only moves data into r1; a second edge ripples it into r2.
func TestRegisterDaisyChain(t *testing.T) {
	e := New()
	clk := e.AddPin(circuit.NewPin(data.NewBinary(0, 1), "clk", nil))
	din := e.AddPin(circuit.NewPin(data.NewBinary(0, 8), "din", nil))
	r1Out := e.AddPin(circuit.NewPin(data.NewBinary(0, 8), "r1_out", nil))
	r2In := e.AddPin(circuit.NewPin(data.NewBinary(0, 8), "r2_in", nil))
	r2Out := e.AddPin(circuit.NewPin(data.NewBinary(0, 8), "r2_out", nil))

	r1, err := builtin.NewRegister(clk, din, r1Out, true, "r1")
	if err != nil {
		t.Fatalf("NewRegister r1: %v", err)
	}
	r2, err := builtin.NewRegister(clk, r2In, r2Out, true, "r2")
	if err != nil {
		t.Fatalf("NewRegister r2: %v", err)
	}
	e.AddComp(r1.Component)
	e.AddComp(r2.Component)
	e.AddWire(circuit.Direct(r1Out, r2In, 0, "r1_to_r2", nil))

	if err := din.Write(0x7, nil); err != nil {
		t.Fatalf("Write din: %v", err)
	}
	e.Scheduler().Advance(0)

	if err := clk.Write(1, nil); err != nil {
		t.Fatalf("Write clk: %v", err)
	}
	e.Scheduler().Advance(0)
	if r1Out.Data().Val() != 0x7 {
		t.Fatalf("r1_out = %#x after first edge, want 0x7", r1Out.Data().Val())
	}
	if r2Out.Data().Val() != 0 {
		t.Fatalf("r2_out = %#x after first edge, want 0 (not yet rippled)", r2Out.Data().Val())
	}

	if err := clk.Write(0, nil); err != nil {
		t.Fatalf("Write clk low: %v", err)
	}
	e.Scheduler().Advance(0)
	if err := clk.Write(1, nil); err != nil {
		t.Fatalf("Write clk high: %v", err)
	}
	e.Scheduler().Advance(0)
	if r2Out.Data().Val() != 0x7 {
		t.Fatalf("r2_out = %#x after second edge, want 0x7", r2Out.Data().Val())
	}
}

// scenario 3 / P4: a wire's configured delay defers the write's effect
// until the scheduler advances at least that far; Advance(0) alone
// must not apply it.
func TestWireDelayCorrectness(t *testing.T) {
	e := New()
	in := e.AddPin(circuit.NewPin(data.New(0), "in", nil))
	out := e.AddPin(circuit.NewPin(data.New(0), "out", nil))
	e.AddWire(circuit.Direct(in, out, 5, "delayed", nil))

	if err := in.Write(9, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	e.Scheduler().Advance(0)
	if out.Data().Val() != 0 {
		t.Fatalf("out = %v before the delay elapses, want 0", out.Data().Val())
	}
	e.Scheduler().Advance(4)
	if out.Data().Val() != 0 {
		t.Fatalf("out = %v one tick short of the delay, want 0", out.Data().Val())
	}
	e.Scheduler().Advance(1)
	if out.Data().Val() != 9 {
		t.Fatalf("out = %v once the delay has fully elapsed, want 9", out.Data().Val())
	}
}

// scenario 4 / P3: two writes landing at the same virtual time are
// applied in scheduling (FIFO) order rather than being merged or
// reordered by endpoint identity.
func TestSimultaneousWritesApplyInFIFOOrder(t *testing.T) {
	e := New()
	in := e.AddPin(circuit.NewPin(data.New(0), "in", nil))
	out := e.AddPin(circuit.NewPin(data.New(0), "out", nil))
	e.AddWire(circuit.Direct(in, out, 0, "w", nil))

	if err := in.Write(1, nil); err != nil {
		t.Fatalf("Write 1: %v", err)
	}
	if err := in.Write(2, nil); err != nil {
		t.Fatalf("Write 2: %v", err)
	}
	e.Scheduler().Advance(0)
	if out.Data().Val() != 2 {
		t.Fatalf("out = %v, want 2 (last write wins at the same time)", out.Data().Val())
	}
}

// scenario 5: a register configured for the falling edge ignores a
// rising transition and only latches on the edge it was built for.
func TestRegisterEdgeSensitivity(t *testing.T) {
	e := New()
	clk := e.AddPin(circuit.NewPin(data.NewBinary(1, 1), "clk", nil))
	din := e.AddPin(circuit.NewPin(data.NewBinary(0, 8), "din", nil))
	dout := e.AddPin(circuit.NewPin(data.NewBinary(0, 8), "dout", nil))

	reg, err := builtin.NewRegister(clk, din, dout, false, "r1")
	if err != nil {
		t.Fatalf("NewRegister: %v", err)
	}
	e.AddComp(reg.Component)

	if err := din.Write(0x5, nil); err != nil {
		t.Fatalf("Write din: %v", err)
	}
	e.Scheduler().Advance(0)

	// clk is already high; writing 1 again produces no data change and
	// so no edge at all. Lower it, then raise it: the rising edge must
	// not latch since this register triggers on falling only.
	if err := clk.Write(0, nil); err != nil {
		t.Fatalf("Write clk low: %v", err)
	}
	e.Scheduler().Advance(0)
	if dout.Data().Val() != 0x5 {
		t.Fatalf("dout = %#x after falling edge, want 0x5", dout.Data().Val())
	}

	if err := din.Write(0x9, nil); err != nil {
		t.Fatalf("Write din: %v", err)
	}
	if err := clk.Write(1, nil); err != nil {
		t.Fatalf("Write clk high: %v", err)
	}
	e.Scheduler().Advance(0)
	if dout.Data().Val() != 0x5 {
		t.Fatalf("dout = %#x after a rising edge on a falling-triggered register, want unchanged 0x5", dout.Data().Val())
	}
}

// scenario 6 / P7: a Register's full name carries the chained
// classifier "C_SYNC_REG" ahead of its instance name.
func TestRegisterClassifierChain(t *testing.T) {
	e := New()
	clk := e.AddPin(circuit.NewPin(data.NewBinary(0, 1), "clk", nil))
	din := e.AddPin(circuit.NewPin(data.NewBinary(0, 8), "din", nil))
	dout := e.AddPin(circuit.NewPin(data.NewBinary(0, 8), "dout", nil))

	reg, err := builtin.NewRegister(clk, din, dout, true, "r1")
	if err != nil {
		t.Fatalf("NewRegister: %v", err)
	}
	e.AddComp(reg.Component)

	if got, want := reg.FullName(), "C_SYNC_REG_r1"; got != want {
		t.Fatalf("FullName() = %q, want %q", got, want)
	}
}

// TestAndGateIsCombinational checks that an AndGate's output tracks
// both inputs with no clocking involved, each change landing in the
// same Advance(0) drain.
func TestAndGateIsCombinational(t *testing.T) {
	e := New()
	a := e.AddPin(circuit.NewPin(data.New(0), "a", nil))
	b := e.AddPin(circuit.NewPin(data.New(0), "b", nil))
	out := e.AddPin(circuit.NewPin(data.New(0), "out", nil))

	gate, err := builtin.NewAndGate(a, b, out, "g1")
	if err != nil {
		t.Fatalf("NewAndGate: %v", err)
	}
	e.AddComp(gate)

	if err := a.Write(1, nil); err != nil {
		t.Fatalf("Write a: %v", err)
	}
	e.Scheduler().Advance(0)
	if out.Data().Val() != 0 {
		t.Fatalf("out = %v with only a=1, want 0", out.Data().Val())
	}

	if err := b.Write(1, nil); err != nil {
		t.Fatalf("Write b: %v", err)
	}
	e.Scheduler().Advance(0)
	if out.Data().Val() != 1 {
		t.Fatalf("out = %v with a=1 b=1, want 1", out.Data().Val())
	}
}

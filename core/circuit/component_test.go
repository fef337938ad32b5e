package circuit

import (
	"testing"

	"github.com/jangala-dev/logy/core/data"
)

type recordingComponentBehavior struct {
	stateUpdates int
	lastState    map[string]any
	lastPrev     map[string]any
}

func (r *recordingComponentBehavior) OnPinUpdate(*Component, *Pin, map[string]any) {}
func (r *recordingComponentBehavior) OnStateUpdate(_ *Component, state, prev map[string]any) {
	r.stateUpdates++
	r.lastState = state
	r.lastPrev = prev
}
func (r *recordingComponentBehavior) WritePin(*Component, *Pin, any) {}

// newAndLikeComponent wires a two-input, one-output mapped component
// whose output is the logical AND of its two mapped inputs, mirroring
// the shape the source's AND-gate demo component takes.
func newAndLikeComponent(t *testing.T, behavior ComponentBehavior) (*Component, *Pin, *Pin, *Pin) {
	t.Helper()
	a := NewPin(data.New(0), "a", nil)
	b := NewPin(data.New(0), "b", nil)
	out := NewPin(data.New(0), "out", nil)

	boolOf := func(v data.Value) any { return v.Val() != 0 }

	comp, err := NewComponent(
		"AND", "g1",
		[]PinSpec{
			{Pin: a, Direction: In, ID: "a"},
			{Pin: b, Direction: In, ID: "b"},
			{Pin: out, Direction: Out, ID: "out"},
		},
		nil, nil,
		[]MappedInput{
			{PinID: "a", Alias: "a_val", Transform: boolOf},
			{PinID: "b", Alias: "b_val", Transform: boolOf},
		},
		[]MappedOutput{
			{PinID: "out", Alias: "out_val", Sources: []string{"a_val", "b_val"}, Eval: func(values ...any) any {
				return values[0].(bool) && values[1].(bool)
			}},
		},
		behavior,
	)
	if err != nil {
		t.Fatalf("NewComponent: %v", err)
	}
	return comp, a, b, out
}

func TestMappedInputCascadesToMappedOutputViaApplyInput(t *testing.T) {
	behavior := &recordingComponentBehavior{}
	comp, a, b, _ := newAndLikeComponent(t, behavior)

	if err := comp.ApplyInput("a", data.New(1)); err != nil {
		t.Fatalf("ApplyInput a: %v", err)
	}
	if err := comp.ApplyInput("b", data.New(1)); err != nil {
		t.Fatalf("ApplyInput b: %v", err)
	}
	if err := comp.Refresh("out_val"); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if comp.Get("out_val") != true {
		t.Fatalf("out_val = %v, want true", comp.Get("out_val"))
	}
	_ = a
	_ = b
}

func TestApplyInputIsNoOpWhenTransformedValueUnchanged(t *testing.T) {
	behavior := &recordingComponentBehavior{}
	comp, _, _, _ := newAndLikeComponent(t, behavior)

	behavior.stateUpdates = 0
	if err := comp.ApplyInput("a", data.New(0)); err != nil {
		t.Fatalf("ApplyInput: %v", err)
	}
	if behavior.stateUpdates != 0 {
		t.Fatalf("stateUpdates = %d, want 0 (a_val stays false)", behavior.stateUpdates)
	}
}

func TestAffectedAliasesAndOutPinsForAlias(t *testing.T) {
	comp, _, _, out := newAndLikeComponent(t, nil)

	affected := comp.AffectedAliases("a_val")
	if len(affected) != 1 || affected[0] != "out_val" {
		t.Fatalf("AffectedAliases(a_val) = %v, want [out_val]", affected)
	}

	endpoints := comp.OutPinsForAlias("out_val")
	if len(endpoints) != 1 || endpoints[0].Pin != out {
		t.Fatalf("OutPinsForAlias(out_val) = %v, want [out]", endpoints)
	}
}

func TestAliasForPinResolvesBoundaryMapping(t *testing.T) {
	comp, a, _, _ := newAndLikeComponent(t, nil)

	alias, ok := comp.AliasForPin(a, In)
	if !ok || alias != "a_val" {
		t.Fatalf("AliasForPin(a, IN) = (%q, %v), want (a_val, true)", alias, ok)
	}
	if _, ok := comp.AliasForPin(a, Out); ok {
		t.Fatal("AliasForPin(a, OUT) should not resolve: a is an IN pin")
	}
}

func TestNewComponentRejectsDuplicatePinID(t *testing.T) {
	a := NewPin(data.New(0), "a", nil)
	b := NewPin(data.New(0), "b", nil)
	_, err := NewComponent("X", "c1",
		[]PinSpec{
			{Pin: a, Direction: In, ID: "shared"},
			{Pin: b, Direction: In, ID: "shared"},
		},
		nil, nil, nil, nil, nil,
	)
	if err == nil {
		t.Fatal("expected an error for a duplicate pin id")
	}
}

func TestNewComponentRejectsDuplicateStateAlias(t *testing.T) {
	a := NewPin(data.New(0), "a", nil)
	out := NewPin(data.New(0), "out", nil)
	_, err := NewComponent("X", "c1",
		[]PinSpec{
			{Pin: a, Direction: In, ID: "a"},
			{Pin: out, Direction: Out, ID: "out"},
		},
		nil, nil,
		[]MappedInput{{PinID: "a", Alias: "shared", Transform: func(data.Value) any { return nil }}},
		[]MappedOutput{{PinID: "out", Alias: "shared"}},
		nil,
	)
	if err == nil {
		t.Fatal("expected an error for a duplicate state slot alias")
	}
}

func TestComponentObserverFiresOnStateChange(t *testing.T) {
	comp, a, _, _ := newAndLikeComponent(t, nil)

	type change struct {
		alias      string
		prev, next any
	}
	var got []change
	comp.SetObserver(observerFunc(func(_ *Component, alias string, prev, next any) {
		got = append(got, change{alias, prev, next})
	}))

	if err := comp.ApplyInput("a", data.New(1)); err != nil {
		t.Fatalf("ApplyInput: %v", err)
	}
	if len(got) != 1 || got[0].alias != "a_val" || got[0].next != true {
		t.Fatalf("observer events = %+v, want one a_val -> true event", got)
	}
	_ = a
}

type observerFunc func(comp *Component, alias string, prev, next any)

func (f observerFunc) OnStateChange(comp *Component, alias string, prev, next any) {
	f(comp, alias, prev, next)
}

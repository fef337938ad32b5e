// Package data implements the value objects that flow through pins and
// wires: an opaque, validity-checked integer payload (Value/Data) and a
// fixed-width binary variant (BinaryData) with bit and bit-range access.
package data

import (
	"fmt"

	"github.com/jangala-dev/logy/errcode"
)

// Value is the contract every data payload satisfies: validity, a
// default, a typed reshape operation and a total order by value.
// Concrete types are Data and BinaryData.
type Value interface {
	// Val returns the current integer payload.
	Val() int
	// Default returns the value used when Of is called with a nil v.
	Default() int
	// Valid reports whether v is a legal payload for this value's type.
	Valid(v int) bool
	// Compatible reports whether other can be merged with this value
	// by Reduce (same concrete shape: width, signedness, etc).
	Compatible(other Value) bool
	// Of returns a copy of this value with its payload replaced by v,
	// or by Default() when v is nil.
	Of(v *int) (Value, error)
	// Equal compares by value only.
	Equal(other Value) bool
	// Less orders by value only.
	Less(other Value) bool
}

// Data is the plain, unconstrained value: any int is valid.
type Data struct {
	value int
	deflt int
}

// New returns a Data with the given value and a zero default.
func New(value int) Data { return Data{value: value} }

// NewWithDefault returns a Data with an explicit default.
func NewWithDefault(value, deflt int) Data { return Data{value: value, deflt: deflt} }

func (d Data) Val() int        { return d.value }
func (d Data) Default() int    { return d.deflt }
func (d Data) Valid(int) bool  { return true }

func (d Data) Compatible(Value) bool { return true }

func (d Data) Of(v *int) (Value, error) {
	val := d.deflt
	if v != nil {
		val = *v
	}
	if !d.Valid(val) {
		return nil, errcode.New(errcode.DomainError, "Data.Of", fmt.Sprintf("value %d outside domain", val), nil)
	}
	return Data{value: val, deflt: d.deflt}, nil
}

func (d Data) Equal(other Value) bool {
	return other != nil && d.value == other.Val()
}

func (d Data) Less(other Value) bool { return d.value < other.Val() }

func (d Data) String() string {
	return fmt.Sprintf("Data(%d, default=%d)", d.value, d.deflt)
}

// Reduce n-ary merges values: every operand must be Compatible with the
// first, and payloads are OR-reduced. Compatibility and the merge are
// anchored on values[0] rather than checked pairwise across every
// operand (see DESIGN.md).
func Reduce(values ...Value) (Value, error) {
	if len(values) < 1 {
		return nil, fmt.Errorf("data: reduce requires at least one value")
	}
	anchor := values[0]
	merged := anchor.Val()
	for _, v := range values[1:] {
		if !anchor.Compatible(v) {
			return nil, errcode.New(errcode.DomainError, "Reduce", "incompatible values in reduce", nil)
		}
		merged |= v.Val()
	}
	return anchor.Of(&merged)
}

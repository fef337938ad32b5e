package data

import (
	"fmt"

	"github.com/jangala-dev/logy/errcode"
	"golang.org/x/exp/constraints"
)

// clamp limits v to [lo, hi], swapping the bounds if given in the
// wrong order. Bit-range arguments arrive from arbitrary caller code
// (a slice assignment on a component's mapped input, say), so a
// reversed or out-of-bounds range is clamped rather than rejected.
func clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// BinaryData is a fixed-width binary Value: length bits, optionally
// signed, with bit and bit-range read/write.
type BinaryData struct {
	value  int
	deflt  int
	length int
	signed bool
}

// NewBinary returns a BinaryData of the given bit length.
func NewBinary(value, length int) BinaryData {
	return BinaryData{value: value, length: length}
}

// NewBinarySigned returns a signed BinaryData of the given bit length.
func NewBinarySigned(value, length int, signed bool) BinaryData {
	return BinaryData{value: value, length: length, signed: signed}
}

func (b BinaryData) Val() int     { return b.value }
func (b BinaryData) Default() int { return b.deflt }
func (b BinaryData) Length() int  { return b.length }
func (b BinaryData) Signed() bool { return b.signed }

func (b BinaryData) Valid(v int) bool {
	bits := toBinary(v, b.length, b.signed)
	return bits >= 0 && bits < 1<<uint(b.length)
}

func (b BinaryData) Compatible(other Value) bool {
	o, ok := other.(BinaryData)
	return ok && b.length == o.length && b.signed == o.signed
}

// Of replaces the whole payload, exactly as Data.Of.
func (b BinaryData) Of(v *int) (Value, error) {
	val := b.deflt
	if v != nil {
		val = *v
	}
	if !b.Valid(val) {
		return nil, errcode.New(errcode.DomainError, "BinaryData.Of", fmt.Sprintf("value %d outside %d-bit domain", val, b.length), nil)
	}
	return BinaryData{value: val, deflt: b.deflt, length: b.length, signed: b.signed}, nil
}

// OfSlice replaces only bits [start,stop) of the payload with the low
// bits of v, leaving the rest of the current value untouched.
func (b BinaryData) OfSlice(v, start, stop int) (Value, error) {
	start = clamp(start, 0, b.length)
	stop = clamp(stop, 0, b.length)
	if start > stop {
		start, stop = stop, start
	}
	mask := sliceMask(start, stop)
	next := (b.value &^ mask) | ((v << uint(start)) & mask)
	return b.Of(&next)
}

func (b BinaryData) Equal(other Value) bool {
	return other != nil && b.value == other.Val()
}

func (b BinaryData) Less(other Value) bool { return b.value < other.Val() }

// Bit returns bit i (0 = least significant) of the stored value.
func (b BinaryData) Bit(i int) (int, error) {
	if i < 0 || i >= b.length {
		return 0, fmt.Errorf("binarydata: bit index %d out of range [0,%d)", i, b.length)
	}
	return (b.value >> uint(i)) & 1, nil
}

// BitRange returns bits [start,stop) as a right-aligned masked value.
func (b BinaryData) BitRange(start, stop int) int {
	mask := sliceMask(start, stop)
	return (b.value & mask) >> uint(start)
}

// Actual returns the value in its signed or unsigned interpretation.
func (b BinaryData) Actual() int { return toActual(b.value, b.length, b.signed) }

func (b BinaryData) String() string {
	return fmt.Sprintf("BinaryData(%d, length=%d, signed=%v)", b.value, b.length, b.signed)
}

func sliceMask(start, stop int) int {
	mask := 0
	for i := start; i < stop; i++ {
		mask |= 1 << uint(i)
	}
	return mask
}

func toBinary(actual, length int, signed bool) int {
	if signed && actual < 0 {
		return 1<<uint(length) + actual
	}
	return actual
}

func toActual(binary, length int, signed bool) int {
	if signed && binary >= 1<<uint(length-1) {
		return binary - 1<<uint(length)
	}
	return binary
}

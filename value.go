// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "strconv"

// MaxBits is the maximum width of a Value.
const MaxBits = 64

// Mask returns a bit mask for the given number of bits.
//
func Mask(bits int) uint64 {
	if bits >= MaxBits {
		return ^uint64(0)
	}
	return 1<<uint(bits) - 1
}

// A Value is an immutable bit vector of a given width, with an optional high
// impedance flag. The content is always masked to the Value's width.
//
type Value struct {
	bits    uint8
	content uint64
	highZ   bool
}

// NewValue returns a new Value of the given width. Bits of v above the width
// are discarded.
//
func NewValue(v uint64, bits int) Value {
	if bits < 1 || bits > MaxBits {
		panic("invalid bit count " + strconv.Itoa(bits))
	}
	return Value{bits: uint8(bits), content: v & Mask(bits)}
}

// Bool returns a 1 bit Value.
//
func Bool(b bool) Value {
	if b {
		return Value{bits: 1, content: 1}
	}
	return Value{bits: 1}
}

// HighZ returns a floating Value of the given width.
//
func HighZ(bits int) Value {
	v := NewValue(0, bits)
	v.highZ = true
	return v
}

// Bits returns the width of v.
//
func (v Value) Bits() int { return int(v.bits) }

// Uint returns the unsigned interpretation of v.
//
func (v Value) Uint() uint64 { return v.content }

// Int returns the signed interpretation of v: the top bit is sign extended.
//
func (v Value) Int() int64 {
	shift := uint(MaxBits - int(v.bits))
	return int64(v.content<<shift) >> shift
}

// Bool returns true if any bit of v is set.
//
func (v Value) Bool() bool { return v.content != 0 }

// IsHighZ returns true if v is in high impedance state.
//
func (v Value) IsHighZ() bool { return v.highZ }

// Equal returns true if v and o have the same width, content and high-z flag.
//
func (v Value) Equal(o Value) bool {
	return v.bits == o.bits && v.content == o.content && v.highZ == o.highZ
}

func (v Value) String() string {
	if v.highZ {
		return "Z"
	}
	return strconv.FormatUint(v.content, 10)
}

// And returns the bitwise AND of v and o, using the width of v.
//
func (v Value) And(o Value) Value { return NewValue(v.content&o.content, v.Bits()) }

// Or returns the bitwise OR of v and o, using the width of v.
//
func (v Value) Or(o Value) Value { return NewValue(v.content|o.content, v.Bits()) }

// Xor returns the bitwise XOR of v and o, using the width of v.
//
func (v Value) Xor(o Value) Value { return NewValue(v.content^o.content, v.Bits()) }

// Not returns the bitwise complement of v.
//
func (v Value) Not() Value { return NewValue(^v.content, v.Bits()) }

// Add returns v + o + carry truncated to the width of v, together with the
// carry out.
//
func (v Value) Add(o Value, carry bool) (Value, bool) {
	var c uint64
	if carry {
		c = 1
	}
	bits := v.Bits()
	if bits == MaxBits {
		s := v.content + o.content
		co := s < v.content
		s2 := s + c
		return Value{bits: MaxBits, content: s2}, co || s2 < s
	}
	s := v.content + (o.content & Mask(bits)) + c
	return NewValue(s, bits), s>>uint(bits) != 0
}

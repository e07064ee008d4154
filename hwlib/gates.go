// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of nodes for logicsim models, together with
// their part specifications for the circuit package.
//
package hwlib

import (
	"strconv"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/circuit"
)

// Inverter is a N bits NOT gate.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: out = ^in
//
type Inverter struct {
	base
	value uint64
}

// NewNot returns a new NOT gate.
//
func NewNot(name string, bits int) *Inverter {
	return &Inverter{base: newBase(name, pins(bits, pIn), pins(bits, pOut))}
}

// ReadInputs implements logicsim.Node.
func (n *Inverter) ReadInputs() error {
	n.value = ^n.inputs[0].Uint()
	return nil
}

// WriteOutputs implements logicsim.Node.
func (n *Inverter) WriteOutputs() error {
	n.outputs[0].SetUint(n.value)
	return nil
}

// Gate is a logic gate with any number of inputs of the same width.
//
type Gate struct {
	base
	op     func(a, b uint64) uint64
	invert bool
	value  uint64
}

// ReadInputs implements logicsim.Node.
func (g *Gate) ReadInputs() error {
	v := g.inputs[0].Uint()
	for _, in := range g.inputs[1:] {
		v = g.op(v, in.Uint())
	}
	if g.invert {
		v = ^v
	}
	g.value = v
	return nil
}

// WriteOutputs implements logicsim.Node.
func (g *Gate) WriteOutputs() error {
	g.outputs[0].SetUint(g.value)
	return nil
}

func and(a, b uint64) uint64 { return a & b }
func or(a, b uint64) uint64  { return a | b }
func xor(a, b uint64) uint64 { return a ^ b }

func newGate(name string, inputs, bits int, op func(a, b uint64) uint64, invert bool) *Gate {
	if inputs < 1 {
		panic("gate " + name + ": invalid input count " + strconv.Itoa(inputs))
	}
	return &Gate{
		base:   newBase(name, pins(bits, Letters(inputs)...), pins(bits, pOut)),
		op:     op,
		invert: invert,
	}
}

// NewAnd returns an AND gate.
//
//	Inputs: a[bits], b[bits], ...
//	Outputs: out[bits]
//	Function: out = a & b & ...
//
func NewAnd(name string, inputs, bits int) *Gate { return newGate(name, inputs, bits, and, false) }

// NewNand returns a NAND gate.
//
//	Function: out = ^(a & b & ...)
//
func NewNand(name string, inputs, bits int) *Gate { return newGate(name, inputs, bits, and, true) }

// NewOr returns an OR gate.
//
//	Function: out = a | b | ...
//
func NewOr(name string, inputs, bits int) *Gate { return newGate(name, inputs, bits, or, false) }

// NewNor returns a NOR gate.
//
//	Function: out = ^(a | b | ...)
//
func NewNor(name string, inputs, bits int) *Gate { return newGate(name, inputs, bits, or, true) }

// NewXor returns a XOR gate. With more than two inputs, it computes the parity.
//
//	Function: out = a ^ b ^ ...
//
func NewXor(name string, inputs, bits int) *Gate { return newGate(name, inputs, bits, xor, false) }

// NewXnor returns a XNOR gate.
//
//	Function: out = ^(a ^ b ^ ...)
//
func NewXnor(name string, inputs, bits int) *Gate { return newGate(name, inputs, bits, xor, true) }

// part specs

func gateSpec(name string, inputs, bits int, op func(a, b uint64) uint64, invert bool) *circuit.PartSpec {
	return &circuit.PartSpec{
		Name:    name,
		Inputs:  pins(bits, Letters(inputs)...),
		Outputs: pins(bits, pOut),
		New: func(label string) circuit.Component {
			return newGate(label, inputs, bits, op, invert)
		},
	}
}

var (
	notSpec = NotN(1)

	andSpec  = gateSpec("AND", 2, 1, and, false)
	nandSpec = gateSpec("NAND", 2, 1, and, true)
	orSpec   = gateSpec("OR", 2, 1, or, false)
	norSpec  = gateSpec("NOR", 2, 1, or, true)
	xorSpec  = gateSpec("XOR", 2, 1, xor, false)
	xnorSpec = gateSpec("XNOR", 2, 1, xor, true)
)

// NotN returns the part spec of a N bits NOT gate.
//
func NotN(bits int) *circuit.PartSpec {
	name := "NOT"
	if bits > 1 {
		name += strconv.Itoa(bits)
	}
	return &circuit.PartSpec{
		Name:    name,
		Inputs:  pins(bits, pIn),
		Outputs: pins(bits, pOut),
		New: func(label string) circuit.Component {
			return NewNot(label, bits)
		},
	}
}

// Not returns a NOT gate part.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
//
func Not(w string) circuit.Part { return notSpec.NewPart(w) }

// And returns a 2 inputs AND gate part.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b
//
func And(w string) circuit.Part { return andSpec.NewPart(w) }

// Nand returns a 2 inputs NAND gate part.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a && b)
//
func Nand(w string) circuit.Part { return nandSpec.NewPart(w) }

// Or returns a 2 inputs OR gate part.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a || b
//
func Or(w string) circuit.Part { return orSpec.NewPart(w) }

// Nor returns a 2 inputs NOR gate part.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a || b)
//
func Nor(w string) circuit.Part { return norSpec.NewPart(w) }

// Xor returns a 2 inputs XOR gate part.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = (a && !b) || (!a && b)
//
func Xor(w string) circuit.Part { return xorSpec.NewPart(w) }

// Xnor returns a 2 inputs XNOR gate part.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b || !a && !b
//
func Xnor(w string) circuit.Part { return xnorSpec.NewPart(w) }

// AndN returns a part constructor for an AND gate with the given number of
// inputs and width. Input pins are named a, b, c...
//
func AndN(inputs, bits int) circuit.NewPartFn {
	return gateSpec("AND"+strconv.Itoa(inputs), inputs, bits, and, false).NewPart
}

// NandN returns a part constructor for a NAND gate.
//
func NandN(inputs, bits int) circuit.NewPartFn {
	return gateSpec("NAND"+strconv.Itoa(inputs), inputs, bits, and, true).NewPart
}

// OrN returns a part constructor for an OR gate.
//
func OrN(inputs, bits int) circuit.NewPartFn {
	return gateSpec("OR"+strconv.Itoa(inputs), inputs, bits, or, false).NewPart
}

// NorN returns a part constructor for a NOR gate.
//
func NorN(inputs, bits int) circuit.NewPartFn {
	return gateSpec("NOR"+strconv.Itoa(inputs), inputs, bits, or, true).NewPart
}

// XorN returns a part constructor for a XOR gate.
//
func XorN(inputs, bits int) circuit.NewPartFn {
	return gateSpec("XOR"+strconv.Itoa(inputs), inputs, bits, xor, false).NewPart
}

// XnorN returns a part constructor for a XNOR gate.
//
func XnorN(inputs, bits int) circuit.NewPartFn {
	return gateSpec("XNOR"+strconv.Itoa(inputs), inputs, bits, xor, true).NewPart
}

var (
	_ logicsim.Node = (*Gate)(nil)
	_ logicsim.Node = (*Inverter)(nil)
)

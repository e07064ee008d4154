// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/circuit"
)

// Probe records the state of a net each time it changes. If a callback
// function is set, it is called with the new state during the write phase.
//
//	Inputs: in[bits]
//
type Probe struct {
	base
	value logicsim.Value
	fn    func(logicsim.Value)
}

// NewProbe returns a new probe. fn may be nil.
//
func NewProbe(name string, bits int, fn func(logicsim.Value)) *Probe {
	return &Probe{base: newBase(name, pins(bits, pIn), nil), fn: fn}
}

// ReadInputs implements logicsim.Node.
func (p *Probe) ReadInputs() error {
	p.value = p.inputs[0].Get()
	return nil
}

// WriteOutputs implements logicsim.Node.
func (p *Probe) WriteOutputs() error {
	if p.fn != nil {
		p.fn(p.value)
	}
	return nil
}

// Value returns the last recorded value.
//
func (p *Probe) Value() logicsim.Value { return p.value }

// Output creates an output or probe part. The fn function is called with the
// state of the input each time it changes.
//
//	Inputs: in[bits]
//	Function: f(in)
//
func Output(bits int, f func(logicsim.Value)) circuit.NewPartFn {
	return (&circuit.PartSpec{
		Name:    "OUTPUT" + strconv.Itoa(bits),
		Inputs:  pins(bits, pIn),
		Outputs: nil,
		New: func(label string) circuit.Component {
			return NewProbe(label, bits, f)
		},
	}).NewPart
}

// Const is a node with a constant output.
//
//	Outputs: out[bits]
//
type Const struct {
	base
	value uint64
}

// NewConst returns a new constant.
//
func NewConst(name string, value uint64, bits int) *Const {
	return &Const{base: newBase(name, nil, pins(bits, pOut)), value: value}
}

// ReadInputs implements logicsim.Node.
func (c *Const) ReadInputs() error { return nil }

// WriteOutputs implements logicsim.Node.
func (c *Const) WriteOutputs() error {
	c.outputs[0].SetUint(c.value)
	return nil
}

// ConstN returns a part constructor for a constant of the given width.
//
//	Outputs: out[bits]
//
func ConstN(value uint64, bits int) circuit.NewPartFn {
	return (&circuit.PartSpec{
		Name:    "CONST" + strconv.Itoa(bits),
		Outputs: pins(bits, pOut),
		New: func(label string) circuit.Component {
			return NewConst(label, value, bits)
		},
	}).NewPart
}

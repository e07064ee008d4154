// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/circuit"
)

// DFF is a rising edge triggered data flip flop.
//
//	Inputs: d[bits], c
//	Outputs: q[bits], nq[bits]
//	Function: on a rising edge of c, q = d and nq = ^d
//
type DFF struct {
	base
	q       uint64
	lastClk bool
}

// NewDFF returns a new data flip flop.
//
func NewDFF(name string, bits int) *DFF {
	return &DFF{
		base: newBase(name, []circuit.Pin{{Name: pD, Bits: bits}, {Name: pClk, Bits: 1}}, pins(bits, pQ, pNQ)),
	}
}

// Reset implements logicsim.Resetter.
func (f *DFF) Reset() {
	f.q = 0
	f.lastClk = false
}

// ReadInputs implements logicsim.Node.
func (f *DFF) ReadInputs() error {
	clk := f.inputs[1].Bool()
	// raising edge?
	if clk && !f.lastClk {
		f.q = f.inputs[0].Uint()
	}
	f.lastClk = clk
	return nil
}

// WriteOutputs implements logicsim.Node.
func (f *DFF) WriteOutputs() error {
	f.outputs[0].SetUint(f.q)
	f.outputs[1].SetUint(^f.q)
	return nil
}

// SpecDFF returns a PartSpec for a data flip flop.
//
func SpecDFF(bits int) *circuit.PartSpec {
	name := "DFF"
	if bits > 1 {
		name += strconv.Itoa(bits)
	}
	return &circuit.PartSpec{
		Name:    name,
		Inputs:  []circuit.Pin{{Name: pD, Bits: bits}, {Name: pClk, Bits: 1}},
		Outputs: pins(bits, pQ, pNQ),
		New: func(label string) circuit.Component {
			return NewDFF(label, bits)
		},
	}
}

var dff = SpecDFF(1)

// DFFPart returns a 1 bit data flip flop part.
//
//	Inputs: d, c
//	Outputs: q, nq
//	Function: q(t) = d(t-1) // where t is the current clock cycle.
//
func DFFPart(w string) circuit.Part { return dff.NewPart(w) }

var _ logicsim.Resetter = (*DFF)(nil)

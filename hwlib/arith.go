// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/circuit"
)

// Adder is a N bits full adder.
//
//	Inputs: a[bits], b[bits], cin
//	Outputs: s[bits], cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
type Adder struct {
	base
	sum   logicsim.Value
	carry bool
}

func adderPins(bits int) []circuit.Pin {
	return []circuit.Pin{{Name: pA, Bits: bits}, {Name: pB, Bits: bits}, {Name: pCin, Bits: 1}}
}

func adderOuts(bits int) []circuit.Pin {
	return []circuit.Pin{{Name: pSum, Bits: bits}, {Name: pCout, Bits: 1}}
}

// NewAdder returns a new adder.
//
func NewAdder(name string, bits int) *Adder {
	return &Adder{base: newBase(name, adderPins(bits), adderOuts(bits))}
}

// ReadInputs implements logicsim.Node.
func (a *Adder) ReadInputs() error {
	a.sum, a.carry = a.inputs[0].Get().Add(a.inputs[1].Get(), a.inputs[2].Bool())
	return nil
}

// WriteOutputs implements logicsim.Node.
func (a *Adder) WriteOutputs() error {
	a.outputs[0].Set(a.sum)
	a.outputs[1].SetBool(a.carry)
	return nil
}

// SpecAdder returns a PartSpec for a N bits adder.
//
func SpecAdder(bits int) *circuit.PartSpec {
	return &circuit.PartSpec{
		Name:    "ADDER" + strconv.Itoa(bits),
		Inputs:  adderPins(bits),
		Outputs: adderOuts(bits),
		New: func(label string) circuit.Component {
			return NewAdder(label, bits)
		},
	}
}

var fullAdder = SpecAdder(1)

// FullAdder returns a 1 bit full adder part.
//
//	Inputs: a, b, cin
//	Outputs: s, cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
func FullAdder(c string) circuit.Part {
	return fullAdder.NewPart(c)
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/circuit"
	"github.com/pkg/errors"
)

// Multiplexer selects one of its data inputs by a binary encoded selector.
// A multiplexer may have less than 2^selBits data inputs, in which case
// selecting a missing input is an error.
//
//	Inputs: sel[selBits], in0[bits], in1[bits], ...
//	Outputs: out[bits]
//	Function: out = in[sel]
//
type Multiplexer struct {
	base
	value uint64
}

// NewMultiplexer returns a new multiplexer with the given number of data
// inputs.
//
func NewMultiplexer(name string, selBits, bits, inputs int) *Multiplexer {
	if selBits < 1 || selBits > 16 || inputs < 1 || inputs > 1<<uint(selBits) {
		panic(errors.Errorf("%s: invalid multiplexer configuration: %d select bits, %d inputs", name, selBits, inputs))
	}
	return &Multiplexer{base: newBase(name, muxPins(selBits, bits, inputs), pins(bits, pOut))}
}

func muxPins(selBits, bits, inputs int) []circuit.Pin {
	return append([]circuit.Pin{{Name: pSel, Bits: selBits}}, pins(bits, indexed(pIn, inputs)...)...)
}

// ReadInputs implements logicsim.Node.
func (m *Multiplexer) ReadInputs() error {
	sel := m.inputs[0].Uint()
	data := m.inputs[1:]
	if sel >= uint64(len(data)) {
		return &logicsim.SelectionError{Node: m.name, Selected: sel, Inputs: len(data)}
	}
	m.value = data[sel].Uint()
	return nil
}

// WriteOutputs implements logicsim.Node.
func (m *Multiplexer) WriteOutputs() error {
	m.outputs[0].SetUint(m.value)
	return nil
}

// Demultiplexer routes its input to the output selected by sel. All other
// outputs are set to 0.
//
//	Inputs: sel[selBits], in[bits]
//	Outputs: out0[bits], out1[bits], ... out{2^selBits-1}[bits]
//
type Demultiplexer struct {
	base
	sel   uint64
	value uint64
}

// NewDemultiplexer returns a new demultiplexer.
//
func NewDemultiplexer(name string, selBits, bits int) *Demultiplexer {
	if selBits < 1 || selBits > 16 {
		panic(errors.Errorf("%s: invalid select bits %d", name, selBits))
	}
	return &Demultiplexer{
		base: newBase(name,
			[]circuit.Pin{{Name: pSel, Bits: selBits}, {Name: pIn, Bits: bits}},
			pins(bits, indexed(pOut, 1<<uint(selBits))...)),
	}
}

// ReadInputs implements logicsim.Node.
func (d *Demultiplexer) ReadInputs() error {
	d.sel = d.inputs[0].Uint()
	d.value = d.inputs[1].Uint()
	return nil
}

// WriteOutputs implements logicsim.Node.
func (d *Demultiplexer) WriteOutputs() error {
	for i, o := range d.outputs {
		if uint64(i) == d.sel {
			o.SetUint(d.value)
		} else {
			o.SetUint(0)
		}
	}
	return nil
}

// Decoder sets the output selected by sel to 1, all others to 0.
//
//	Inputs: sel[selBits]
//	Outputs: out0, out1, ... out{2^selBits-1}
//
type Decoder struct {
	base
	sel uint64
}

// NewDecoder returns a new decoder.
//
func NewDecoder(name string, selBits int) *Decoder {
	if selBits < 1 || selBits > 16 {
		panic(errors.Errorf("%s: invalid select bits %d", name, selBits))
	}
	return &Decoder{
		base: newBase(name, []circuit.Pin{{Name: pSel, Bits: selBits}}, pins(1, indexed(pOut, 1<<uint(selBits))...)),
	}
}

// ReadInputs implements logicsim.Node.
func (d *Decoder) ReadInputs() error {
	d.sel = d.inputs[0].Uint()
	return nil
}

// WriteOutputs implements logicsim.Node.
func (d *Decoder) WriteOutputs() error {
	for i, o := range d.outputs {
		o.SetBool(uint64(i) == d.sel)
	}
	return nil
}

// Mux returns a 1 bit, 2 inputs multiplexer part.
//
//	Inputs: sel, in0, in1
//	Outputs: out
//	Function: if sel == 0 { out = in0 } else { out = in1 }
//
func Mux(w string) circuit.Part { return mux.NewPart(w) }

var mux = SpecMux(1, 1, 2)

// SpecMux returns a PartSpec for a multiplexer.
//
//	Inputs: sel[selBits], in0[bits], ... in{inputs-1}[bits]
//	Outputs: out[bits]
//
func SpecMux(selBits, bits, inputs int) *circuit.PartSpec {
	return &circuit.PartSpec{
		Name:    "MUX" + strconv.Itoa(inputs) + "x" + strconv.Itoa(bits),
		Inputs:  muxPins(selBits, bits, inputs),
		Outputs: pins(bits, pOut),
		New: func(label string) circuit.Component {
			return NewMultiplexer(label, selBits, bits, inputs)
		},
	}
}

// DMux returns a 1 bit demultiplexer part.
//
//	Inputs: sel, in
//	Outputs: out0, out1
//	Function: if sel == 0 { out0 = in; out1 = 0 } else { out0 = 0; out1 = in }
//
func DMux(w string) circuit.Part { return dmux.NewPart(w) }

var dmux = SpecDMux(1, 1)

// SpecDMux returns a PartSpec for a demultiplexer.
//
func SpecDMux(selBits, bits int) *circuit.PartSpec {
	return &circuit.PartSpec{
		Name:    "DMUX" + strconv.Itoa(1<<uint(selBits)) + "x" + strconv.Itoa(bits),
		Inputs:  []circuit.Pin{{Name: pSel, Bits: selBits}, {Name: pIn, Bits: bits}},
		Outputs: pins(bits, indexed(pOut, 1<<uint(selBits))...),
		New: func(label string) circuit.Component {
			return NewDemultiplexer(label, selBits, bits)
		},
	}
}

// SpecDecoder returns a PartSpec for a decoder.
//
func SpecDecoder(selBits int) *circuit.PartSpec {
	return &circuit.PartSpec{
		Name:    "DECODER" + strconv.Itoa(selBits),
		Inputs:  []circuit.Pin{{Name: pSel, Bits: selBits}},
		Outputs: pins(1, indexed(pOut, 1<<uint(selBits))...),
		New: func(label string) circuit.Component {
			return NewDecoder(label, selBits)
		},
	}
}

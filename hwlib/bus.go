// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/circuit"
	"github.com/pkg/errors"
)

// Driver is a tri-state buffer.
//
//	Inputs: in[bits], sel
//	Outputs: out[bits]
//	Function: if sel { out = in } else { out = Z }
//
type Driver struct {
	base
	value logicsim.Value
}

// NewDriver returns a new tri-state driver.
//
func NewDriver(name string, bits int) *Driver {
	d := &Driver{
		base:  newBase(name, []circuit.Pin{{Name: pIn, Bits: bits}, {Name: pSel, Bits: 1}}, pins(bits, pOut)),
		value: logicsim.HighZ(bits),
	}
	// not driving until the first evaluation
	d.outputs[0].SetHighZ(true)
	return d
}

// Reset implements logicsim.Resetter.
func (d *Driver) Reset() {
	d.value = logicsim.HighZ(d.outputs[0].Bits())
	d.outputs[0].Set(d.value)
}

// ReadInputs implements logicsim.Node.
func (d *Driver) ReadInputs() error {
	if d.inputs[1].Bool() {
		d.value = d.inputs[0].Get()
	} else {
		d.value = logicsim.HighZ(d.outputs[0].Bits())
	}
	return nil
}

// WriteOutputs implements logicsim.Node.
func (d *Driver) WriteOutputs() error {
	d.outputs[0].Set(d.value)
	return nil
}

// Bus merges several drivers into a single net. At most one of its inputs may
// be driven at a time.
//
//	Inputs: in0[bits], in1[bits], ...
//	Outputs: out[bits]
//	Function: out = the only input that is not high-z, or Z if none
//
type Bus struct {
	base
	value logicsim.Value
}

// NewBus returns a new bus with the given number of inputs.
//
func NewBus(name string, inputs, bits int) *Bus {
	if inputs < 1 {
		panic(errors.Errorf("%s: invalid input count %d", name, inputs))
	}
	b := &Bus{base: newBase(name, pins(bits, indexed(pIn, inputs)...), pins(bits, pOut)), value: logicsim.HighZ(bits)}
	b.outputs[0].SetHighZ(true)
	return b
}

// Reset implements logicsim.Resetter.
func (b *Bus) Reset() {
	b.value = logicsim.HighZ(b.outputs[0].Bits())
	b.outputs[0].Set(b.value)
}

// ReadInputs implements logicsim.Node. It returns a *logicsim.ShortCircuitError
// if more than one input is driven.
func (b *Bus) ReadInputs() error {
	var driver *logicsim.ObservableValue
	for _, in := range b.inputs {
		if in.IsHighZ() {
			continue
		}
		if driver != nil {
			return &logicsim.ShortCircuitError{Node: b.name, Drivers: [2]string{driver.Name(), in.Name()}}
		}
		driver = in
	}
	if driver == nil {
		b.value = logicsim.HighZ(b.outputs[0].Bits())
	} else {
		b.value = driver.Get()
	}
	return nil
}

// WriteOutputs implements logicsim.Node.
func (b *Bus) WriteOutputs() error {
	b.outputs[0].Set(b.value)
	return nil
}

// SpecDriver returns a PartSpec for a tri-state driver.
//
func SpecDriver(bits int) *circuit.PartSpec {
	return &circuit.PartSpec{
		Name:    "DRIVER" + strconv.Itoa(bits),
		Inputs:  []circuit.Pin{{Name: pIn, Bits: bits}, {Name: pSel, Bits: 1}},
		Outputs: pins(bits, pOut),
		New: func(label string) circuit.Component {
			return NewDriver(label, bits)
		},
	}
}

// SpecBus returns a PartSpec for a bus.
//
//	Inputs: in0[bits], in1[bits], ... in{inputs-1}[bits]
//	Outputs: out[bits]
//
func SpecBus(inputs, bits int) *circuit.PartSpec {
	return &circuit.PartSpec{
		Name:    "BUS" + strconv.Itoa(inputs) + "x" + strconv.Itoa(bits),
		Inputs:  pins(bits, indexed(pIn, inputs)...),
		Outputs: pins(bits, pOut),
		New: func(label string) circuit.Component {
			return NewBus(label, inputs, bits)
		},
	}
}

var (
	_ logicsim.Resetter = (*Driver)(nil)
	_ logicsim.Resetter = (*Bus)(nil)
)

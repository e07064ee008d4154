// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/logicsim/circuit"
	"github.com/pkg/errors"
)

// Divider divides the frequency of a clock signal by an even factor.
//
//	Inputs: in
//	Outputs: out
//	Function: out toggles every factor/2 rising edges of in
//
type Divider struct {
	base
	half  int
	count int
	last  bool
	out   bool
}

// NewDivider returns a new clock divider. factor must be even and > 0.
//
func NewDivider(name string, factor int) *Divider {
	if factor < 2 || factor%2 != 0 {
		panic(errors.Errorf("%s: invalid divider factor %d", name, factor))
	}
	return &Divider{base: newBase(name, pins(1, pIn), pins(1, pOut)), half: factor / 2}
}

// Reset implements logicsim.Resetter.
func (d *Divider) Reset() {
	d.count, d.last, d.out = 0, false, false
}

// ReadInputs implements logicsim.Node.
func (d *Divider) ReadInputs() error {
	clk := d.inputs[0].Bool()
	if clk && !d.last {
		d.count++
		if d.count == d.half {
			d.count = 0
			d.out = !d.out
		}
	}
	d.last = clk
	return nil
}

// WriteOutputs implements logicsim.Node.
func (d *Divider) WriteOutputs() error {
	d.outputs[0].SetBool(d.out)
	return nil
}

// SpecDivider returns a PartSpec for a clock divider.
//
func SpecDivider(factor int) *circuit.PartSpec {
	return &circuit.PartSpec{
		Name:    "DIV" + strconv.Itoa(factor),
		Inputs:  pins(1, pIn),
		Outputs: pins(1, pOut),
		New: func(label string) circuit.Component {
			return NewDivider(label, factor)
		},
	}
}

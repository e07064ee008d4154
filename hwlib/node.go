// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/circuit"
	"github.com/pkg/errors"
)

// common pin names
const (
	pA    = "a"
	pB    = "b"
	pIn   = "in"
	pSel  = "sel"
	pOut  = "out"
	pClk  = "c"
	pD    = "d"
	pQ    = "q"
	pNQ   = "nq"
	pSum  = "s"
	pCin  = "cin"
	pCout = "cout"
)

// base holds the pins shared by all nodes.
type base struct {
	name    string
	pins    []circuit.Pin // input pins
	inputs  []*logicsim.ObservableValue
	outputs []*logicsim.ObservableValue
}

func newBase(name string, in []circuit.Pin, out []circuit.Pin) base {
	b := base{name: name, pins: in}
	for _, p := range out {
		b.outputs = append(b.outputs, logicsim.NewObservableValue(name+"."+p.Name, p.Bits))
	}
	return b
}

// Name returns the node name.
//
func (b *base) Name() string { return b.name }

// Inputs implements logicsim.Node.
func (b *base) Inputs() []*logicsim.ObservableValue { return b.inputs }

// Outputs implements logicsim.Node.
func (b *base) Outputs() []*logicsim.ObservableValue { return b.outputs }

// SetInputs connects the inputs of the node, in pin order. It fails with a
// *logicsim.WiringError if the input count or any width does not match.
//
func (b *base) SetInputs(ins ...*logicsim.ObservableValue) error {
	if len(ins) != len(b.pins) {
		return &logicsim.WiringError{Part: b.name,
			Err: errors.Errorf("expected %d inputs, got %d", len(b.pins), len(ins))}
	}
	for i, in := range ins {
		if in == nil {
			return &logicsim.WiringError{Part: b.name, Pin: b.pins[i].Name, Err: errors.New("not connected")}
		}
		if err := in.CheckBits(b.pins[i].Bits); err != nil {
			return &logicsim.WiringError{Part: b.name, Pin: b.pins[i].Name, Err: err}
		}
	}
	b.inputs = append([]*logicsim.ObservableValue(nil), ins...)
	return nil
}

// Out returns the first output of the node.
//
func (b *base) Out() *logicsim.ObservableValue { return b.outputs[0] }

// Output returns the i-th output of the node.
//
func (b *base) Output(i int) *logicsim.ObservableValue { return b.outputs[i] }

// pins makes a pin list of the given width.
func pins(bits int, names ...string) []circuit.Pin {
	ps := make([]circuit.Pin, len(names))
	for i, n := range names {
		ps[i] = circuit.Pin{Name: n, Bits: bits}
	}
	return ps
}

// indexed returns n pin names of the form prefix0, prefix1, ...
func indexed(prefix string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = prefix + strconv.Itoa(i)
	}
	return names
}

// Letters returns n pin names a, b, c... Beyond 26 pins, names are in0, in1...
func Letters(n int) []string {
	if n > 26 {
		return indexed(pIn, n)
	}
	names := make([]string, n)
	for i := range names {
		names[i] = string(rune('a' + i))
	}
	return names
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circuit

import (
	"github.com/db47h/logicsim"
)

// A Pin is a named input or output of a part.
//
type Pin struct {
	Name string
	Bits int
}

// A Component is a node that can be wired into a circuit. Its outputs must be
// returned in the same order and with the same widths as the outputs of the
// PartSpec that created it.
//
type Component interface {
	logicsim.Node
	// SetInputs connects the inputs of the component, in PartSpec input order.
	SetInputs(ins ...*logicsim.ObservableValue) error
}

// A PartSpec wraps a part specification (its blueprint).
//
// Custom parts are implemented by creating a PartSpec:
//
//	notSpec := &circuit.PartSpec{
//		Name:    "Not",
//		Inputs:  circuit.IO("in"),
//		Outputs: circuit.IO("out"),
//		New: func(label string) circuit.Component {
//			return hwlib.NewNot(label, 1)
//		}}
//
// Then get a NewPartFn for that PartSpec:
//
//	var notGate = notSpec.NewPart
//
// Which can the be used when building circuits:
//
//	c, _ := circuit.Build("a", "out", circuit.Parts{
//		notGate("in=a, out=out"),
//	})
//
type PartSpec struct {
	// Part name.
	Name string
	// Input pins. Must be distinct pin names.
	// Use the IO() function to build a pin list from a description like
	// "a, b, sel[2]".
	Inputs []Pin
	// Output pins. Must be distinct pin names.
	Outputs []Pin
	// New creates a new instance of the part with the given label.
	New func(label string) Component
}

// NewPart is a NewPartFn that wraps p with the given connections into a Part.
// It panics if the connection string cannot be parsed.
//
func (p *PartSpec) NewPart(connections string) Part {
	cs, err := ParseConnections(connections)
	if err != nil {
		panic(err)
	}
	return Part{p, cs}
}

func (p *PartSpec) pin(name string) (Pin, bool) {
	for _, in := range p.Inputs {
		if in.Name == name {
			return in, true
		}
	}
	for _, out := range p.Outputs {
		if out.Name == name {
			return out, true
		}
	}
	return Pin{}, false
}

// A NewPartFn is a function that takes a connection configuration and returns a
// new Part. See ParseConnections for the syntax of the connection configuration
// string.
//
type NewPartFn func(c string) Part

// A Part wraps a part specification together with its connections within a
// circuit.
//
type Part struct {
	*PartSpec
	Conns []Connection
}

// Parts is a slice of Part.
//
type Parts []Part

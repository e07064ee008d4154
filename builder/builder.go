// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package builder realizes boolean expressions as logicsim circuits.
//
//	b := builder.New()
//	b.Add("Y", e)
//	c, err := b.Build()
//
// Inputs of the resulting circuit are the variables of all expressions,
// sorted by name. Each expression drives the output net of the same name.
//
package builder

import (
	"sort"
	"strconv"
	"strings"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/circuit"
	"github.com/db47h/logicsim/expr"
	"github.com/db47h/logicsim/hwlib"
	"github.com/pkg/errors"
)

type output struct {
	name string
	e    expr.Expression
}

// Builder collects named expressions to build into a circuit.
//
type Builder struct {
	outputs []output
}

// New returns a new empty Builder.
//
func New() *Builder {
	return &Builder{}
}

// Add adds an output with the given name computed by e.
//
func (b *Builder) Add(name string, e expr.Expression) error {
	if pins, err := circuit.ParseIO(name); err != nil || len(pins) != 1 || pins[0].Name != name {
		return errors.Errorf("invalid output name %q", name)
	}
	switch name {
	case circuit.True, circuit.False, circuit.Clk:
		return errors.Errorf("reserved output name %q", name)
	}
	for _, o := range b.outputs {
		if o.name == name {
			return errors.Errorf("duplicate output %q", name)
		}
	}
	b.outputs = append(b.outputs, output{name, e})
	return nil
}

// Inputs returns the inputs of the circuit to build.
//
func (b *Builder) Inputs() []expr.Variable {
	seen := make(map[expr.Variable]bool)
	var vs []expr.Variable
	for _, o := range b.outputs {
		for _, v := range expr.Variables(o.e) {
			if !seen[v] {
				seen[v] = true
				vs = append(vs, v)
			}
		}
	}
	sort.Slice(vs, func(i, j int) bool { return vs[i] < vs[j] })
	return vs
}

type netlist struct {
	parts circuit.Parts
	nets  map[string]string // formatted expression -> net
	tmp   int
}

// Build builds the circuit. Options are passed to the underlying model.
//
func (b *Builder) Build(opts ...logicsim.Option) (*circuit.Circuit, error) {
	if len(b.outputs) == 0 {
		return nil, errors.New("no outputs")
	}
	ins := b.Inputs()
	names := make([]string, len(ins))
	for i, v := range ins {
		names[i] = string(v)
	}
	outs := make([]string, len(b.outputs))
	for i, o := range b.outputs {
		for _, v := range ins {
			if string(v) == o.name {
				return nil, errors.Errorf("output %s is also an input", o.name)
			}
		}
		outs[i] = o.name
	}

	n := &netlist{nets: make(map[string]string)}
	for _, o := range b.outputs {
		n.output(o.name, o.e)
	}
	return circuit.Build(strings.Join(names, ", "), strings.Join(outs, ", "), n.parts, opts...)
}

// output realizes e so that it drives the net name.
func (n *netlist) output(name string, e expr.Expression) {
	switch e.(type) {
	case *expr.NotExpr, *expr.Operation:
		key := expr.Format(e, expr.Plain)
		if _, ok := n.nets[key]; !ok {
			n.gate(e, name)
			n.nets[key] = name
			return
		}
	}
	// buffer
	n.parts = append(n.parts, hwlib.AndN(1, 1)("a="+n.net(e)+", out="+name))
}

// net returns the name of a net carrying the value of e.
func (n *netlist) net(e expr.Expression) string {
	switch e := e.(type) {
	case expr.Variable:
		return string(e)
	case expr.Constant:
		if e {
			return circuit.True
		}
		return circuit.False
	}
	key := expr.Format(e, expr.Plain)
	if net, ok := n.nets[key]; ok {
		return net
	}
	n.tmp++
	net := "_t" + strconv.Itoa(n.tmp)
	n.gate(e, net)
	n.nets[key] = net
	return net
}

// gate adds the gate computing e with its output connected to out.
func (n *netlist) gate(e expr.Expression, out string) {
	switch e := e.(type) {
	case *expr.NotExpr:
		n.parts = append(n.parts, hwlib.Not("in="+n.net(e.X)+", out="+out))
	case *expr.Operation:
		var w strings.Builder
		pins := hwlib.Letters(len(e.Args))
		for i, a := range e.Args {
			w.WriteString(pins[i])
			w.WriteByte('=')
			w.WriteString(n.net(a))
			w.WriteString(", ")
		}
		w.WriteString("out=")
		w.WriteString(out)
		newPart := hwlib.AndN(len(e.Args), 1)
		if e.Op == expr.OpOr {
			newPart = hwlib.OrN(len(e.Args), 1)
		}
		n.parts = append(n.parts, newPart(w.String()))
	}
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package circuit builds logicsim models from circuit descriptions.
//
// A circuit is described by its input and output pins and a list of parts
// whose pins are connected to named nets:
//
//	c, err := circuit.Build("a, b", "out", circuit.Parts{
//		hwlib.Nand("a=a, b=b, out=nand"),
//		hwlib.Not("in=nand, out=out"),
//	})
//
// Every net must be driven by exactly one output (use a bus and tri-state
// drivers to connect several outputs to a single net). The special net names
// "true" and "false" are constants and "clk" is the circuit clock.
//
package circuit

import (
	"sort"
	"strconv"

	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// Reserved net names.
//
const (
	True  = "true"
	False = "false"
	Clk   = "clk"
)

// Circuit is a runnable circuit simulation built from a description.
//
type Circuit struct {
	*logicsim.Model

	nets    map[string]*logicsim.ObservableValue
	inputs  []Pin
	outputs []Pin
	clock   *logicsim.Clock
	consts  map[constKey]*logicsim.ObservableValue
	comps   []Component
}

type constKey struct {
	value bool
	bits  int
}

// a driver is an output pin feeding a net.
type driver struct {
	part  int
	pin   string
	value *logicsim.ObservableValue
}

func wiringError(p Part, pin string, msg string) error {
	return &logicsim.WiringError{Part: p.Name, Pin: pin, Err: errors.New(msg)}
}

// Build builds a new circuit from the given description and returns it.
// The returned circuit is not initialized: call its Init method before
// stepping it.
//
// Build returns a *logicsim.WiringError for any wiring problem: unknown pin
// names, outputs connected to constants or circuit inputs, nets driven by
// more than one output, inputs connected to a net that no output drives,
// driven nets that nothing uses, and width mismatches.
//
func Build(inputs, outputs string, parts Parts, opts ...logicsim.Option) (*Circuit, error) {
	ins, err := ParseIO(inputs)
	if err != nil {
		return nil, errors.Wrap(err, "circuit inputs")
	}
	outs, err := ParseIO(outputs)
	if err != nil {
		return nil, errors.Wrap(err, "circuit outputs")
	}
	c := &Circuit{
		Model:   logicsim.New(opts...),
		nets:    make(map[string]*logicsim.ObservableValue),
		inputs:  ins,
		outputs: outs,
		consts:  make(map[constKey]*logicsim.ObservableValue),
	}
	for _, in := range ins {
		switch in.Name {
		case True, False, Clk:
			return nil, &logicsim.WiringError{Pin: in.Name, Err: errors.New("reserved name used as circuit input")}
		}
		c.nets[in.Name] = logicsim.NewObservableValue(in.Name, in.Bits)
	}

	// instantiate parts and register their outputs.
	drivers := make(map[string]driver)
	conns := make([]map[string][]string, len(parts))
	c.comps = make([]Component, len(parts))
	for pnum, p := range parts {
		if p.PartSpec == nil {
			return nil, errors.Errorf("part #%d: nil part spec", pnum)
		}
		cs := make(map[string][]string, len(p.Conns))
		for _, cn := range p.Conns {
			if _, ok := p.pin(cn.Pin); !ok {
				return nil, wiringError(p, "", "invalid pin name "+cn.Pin+" for part "+p.Name)
			}
			cs[cn.Pin] = append(cs[cn.Pin], cn.Net)
		}
		conns[pnum] = cs

		comp := p.New(p.Name + "#" + strconv.Itoa(pnum))
		if len(comp.Outputs()) != len(p.Outputs) {
			return nil, wiringError(p, "", "component output count does not match its specification")
		}
		c.comps[pnum] = comp

		for k, op := range p.Outputs {
			v := comp.Outputs()[k]
			if err := v.CheckBits(op.Bits); err != nil {
				return nil, &logicsim.WiringError{Part: p.Name, Pin: op.Name, Err: err}
			}
			for i, net := range cs[op.Name] {
				switch net {
				case True, False:
					return nil, wiringError(p, op.Name, "output pin connected to constant "+net+" input")
				case Clk:
					return nil, wiringError(p, op.Name, "output pin connected to clock signal")
				}
				if _, ok := c.nets[net]; ok {
					return nil, wiringError(p, op.Name, "circuit input pin "+net+" used as output")
				}
				if _, ok := drivers[net]; ok {
					return nil, wiringError(p, op.Name, "net "+net+" already driven by another output")
				}
				if i == 0 {
					v.SetName(net)
				}
				drivers[net] = driver{pnum, op.Name, v}
			}
		}
	}

	// connect inputs
	used := make(map[string]bool)
	for pnum, p := range parts {
		vs := make([]*logicsim.ObservableValue, len(p.Inputs))
		for k, ip := range p.Inputs {
			nets := conns[pnum][ip.Name]
			if len(nets) > 1 {
				return nil, wiringError(p, ip.Name, "input pin connected to more than one net")
			}
			if len(nets) == 0 {
				// unconnected inputs are grounded.
				vs[k] = c.constant(false, ip.Bits)
				continue
			}
			v, err := c.net(nets[0], ip.Bits, drivers)
			if err != nil {
				return nil, &logicsim.WiringError{Part: p.Name, Pin: ip.Name, Err: err}
			}
			used[nets[0]] = true
			vs[k] = v
		}
		if err := c.comps[pnum].SetInputs(vs...); err != nil {
			return nil, err
		}
	}

	// circuit outputs
	for _, o := range outs {
		d, ok := drivers[o.Name]
		if !ok {
			return nil, &logicsim.WiringError{Pin: o.Name, Err: errors.New("circuit output not connected to any output")}
		}
		if err := d.value.CheckBits(o.Bits); err != nil {
			return nil, &logicsim.WiringError{Pin: o.Name, Err: err}
		}
		used[o.Name] = true
	}

	// driven nets that nothing reads
	var unused []string
	for net := range drivers {
		if !used[net] {
			unused = append(unused, net)
		}
	}
	if len(unused) > 0 {
		sort.Strings(unused)
		d := drivers[unused[0]]
		return nil, wiringError(parts[d.part], d.pin, "net "+unused[0]+" not connected to any input")
	}
	for net, d := range drivers {
		c.nets[net] = d.value
	}

	if c.clock != nil {
		if _, err := c.AddClock(c.clock); err != nil {
			return nil, err
		}
	}
	for _, comp := range c.comps {
		if _, err := c.Add(comp); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// net returns the value of the given net for an input pin of the given width.
func (c *Circuit) net(name string, bits int, drivers map[string]driver) (*logicsim.ObservableValue, error) {
	var v *logicsim.ObservableValue
	switch name {
	case True:
		return c.constant(true, bits), nil
	case False:
		return c.constant(false, bits), nil
	case Clk:
		if c.clock == nil {
			c.clock = logicsim.NewClock(Clk)
		}
		v = c.clock.Out()
	default:
		if d, ok := drivers[name]; ok {
			v = d.value
		} else if v = c.nets[name]; v == nil {
			return nil, errors.New("net " + name + " not connected to any output")
		}
	}
	if err := v.CheckBits(bits); err != nil {
		return nil, err
	}
	return v, nil
}

func (c *Circuit) constant(value bool, bits int) *logicsim.ObservableValue {
	k := constKey{value, bits}
	if v, ok := c.consts[k]; ok {
		return v
	}
	name := False
	if value {
		name = True
	}
	v := logicsim.NewObservableValue(name, bits)
	if value {
		v.SetUint(logicsim.Mask(bits))
	}
	c.consts[k] = v
	return v
}

// Net returns the value of the named net or nil if no such net exists.
//
func (c *Circuit) Net(name string) *logicsim.ObservableValue {
	return c.nets[name]
}

// Inputs returns the input pins of the circuit.
//
func (c *Circuit) Inputs() []Pin { return c.inputs }

// Outputs returns the output pins of the circuit.
//
func (c *Circuit) Outputs() []Pin { return c.outputs }

// Clock returns the circuit clock or nil if no part uses it.
//
func (c *Circuit) Clock() *logicsim.Clock { return c.clock }

// Components returns the components of the circuit in part order.
//
func (c *Circuit) Components() []Component { return c.comps }

func (c *Circuit) isInput(name string) bool {
	for _, in := range c.inputs {
		if in.Name == name {
			return true
		}
	}
	return false
}

// Set sets the named circuit input and runs the model until it settles.
//
func (c *Circuit) Set(name string, v uint64) error {
	if !c.isInput(name) {
		return errors.New("no such circuit input: " + name)
	}
	in := c.nets[name]
	return c.Access(func() { in.SetUint(v) })
}

// SetAll sets several circuit inputs at once and runs the model until it
// settles.
//
func (c *Circuit) SetAll(values map[string]uint64) error {
	return c.AccessErr(func() error {
		for name, v := range values {
			if !c.isInput(name) {
				return errors.New("no such circuit input: " + name)
			}
			c.nets[name].SetUint(v)
		}
		return nil
	})
}

// Get returns the state of the named net.
//
func (c *Circuit) Get(name string) (logicsim.Value, error) {
	n := c.nets[name]
	if n == nil {
		return logicsim.Value{}, errors.New("no such net: " + name)
	}
	var v logicsim.Value
	c.Read(func() { v = n.Get() })
	return v, nil
}

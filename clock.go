// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

// Clock is a node with a single 1 bit output that is toggled by Model.Tick.
// Toggling it marks its listeners dirty like any other value change, so the
// same step algorithm serves combinational settling and clocked stepping.
//
type Clock struct {
	name string
	out  *ObservableValue
}

// NewClock returns a new clock. Its output starts low.
//
func NewClock(name string) *Clock {
	return &Clock{name: name, out: NewObservableValue(name, 1)}
}

// Name returns the clock name.
//
func (c *Clock) Name() string { return c.name }

// Out returns the clock signal.
//
func (c *Clock) Out() *ObservableValue { return c.out }

// Toggle inverts the clock signal.
//
func (c *Clock) Toggle() { c.out.SetBool(!c.out.Bool()) }

// Reset sets the clock signal low.
//
func (c *Clock) Reset() { c.out.SetBool(false) }

// Inputs implements Node.
func (c *Clock) Inputs() []*ObservableValue { return nil }

// Outputs implements Node.
func (c *Clock) Outputs() []*ObservableValue { return []*ObservableValue{c.out} }

// ReadInputs implements Node.
func (c *Clock) ReadInputs() error { return nil }

// WriteOutputs implements Node.
func (c *Clock) WriteOutputs() error { return nil }

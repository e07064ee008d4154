// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circuit

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// Updater is the interface that custom components built using reflection must implement.
// See MakePart.
//
type Updater interface {
	// Update computes the outputs from the inputs.
	Update() error
}

var valueType = reflect.TypeOf((*logicsim.ObservableValue)(nil))

type field struct {
	index int
	pin   Pin
	input bool
}

// MakePart wraps an Updater into a custom part.
// Input/output pins are identified by field tags on fields of type
// *logicsim.ObservableValue.
//
// The field tag must be `hw:"in"` or `hw:"out"` to identify input and output
// pins. By default, the pin name is the field name in lowercase. A specific
// pin name can be forced by adding it in the tag: `hw:"in,pin_name"`. The
// width of the pin defaults to 1 and can be set with a third tag value:
// `hw:"out,,8"`.
//
// Update is called with a consistent snapshot of the inputs and its outputs
// are published to the circuit once all nodes of the current round have read
// their inputs.
//
func MakePart(proto Updater) *PartSpec {
	typ := reflect.TypeOf(proto)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if k := typ.Kind(); k != reflect.Struct {
		panic(errors.Errorf("unsupported type %q for %q", k, typ.Name()))
	}

	sp := &PartSpec{Name: typ.Name()}
	var fields []field

	n := typ.NumField()
	for i := 0; i < n; i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("hw")
		if !ok {
			continue
		}
		if f.Type != valueType {
			panic(errors.Errorf("unsupported type %q for field %q in %q", f.Type, f.Name, typ.Name()))
		}
		fd := field{index: i, pin: Pin{Name: strings.ToLower(f.Name), Bits: 1}}
		tv := strings.Split(tag, ",")
		if len(tv) > 3 {
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		switch tv[0] {
		case "in":
			fd.input = true
		case "out":
		default:
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		if len(tv) > 1 && tv[1] != "" {
			fd.pin.Name = tv[1]
		}
		if len(tv) > 2 {
			b, err := strconv.Atoi(tv[2])
			if err != nil || b < 1 || b > logicsim.MaxBits {
				panic(errors.Errorf("invalid width in tag %q for field %q in %q", tag, f.Name, typ.Name()))
			}
			fd.pin.Bits = b
		}
		if _, dup := sp.pin(fd.pin.Name); dup {
			panic(errors.Errorf("duplicate pin name %q in %q", fd.pin.Name, typ.Name()))
		}
		if fd.input {
			sp.Inputs = append(sp.Inputs, fd.pin)
		} else {
			sp.Outputs = append(sp.Outputs, fd.pin)
		}
		fields = append(fields, fd)
	}
	sp.New = func(label string) Component {
		return newReflectComponent(label, typ, fields)
	}
	return sp
}

// reflectComponent adapts an Updater to the Component interface. The
// Updater's fields point to private shadow values that are never attached to
// the model.
type reflectComponent struct {
	name    string
	u       Updater
	inputs  []*logicsim.ObservableValue
	outputs []*logicsim.ObservableValue
	shadowI []*logicsim.ObservableValue
	shadowO []*logicsim.ObservableValue
}

func newReflectComponent(label string, typ reflect.Type, fields []field) *reflectComponent {
	v := reflect.New(typ)
	e := v.Elem()
	c := &reflectComponent{name: label}
	for _, fd := range fields {
		sv := logicsim.NewObservableValue(label+"."+fd.pin.Name, fd.pin.Bits)
		e.Field(fd.index).Set(reflect.ValueOf(sv))
		if fd.input {
			c.shadowI = append(c.shadowI, sv)
		} else {
			c.shadowO = append(c.shadowO, sv)
			c.outputs = append(c.outputs, logicsim.NewObservableValue(label+"."+fd.pin.Name, fd.pin.Bits))
		}
	}
	c.u = v.Interface().(Updater)
	return c
}

func (c *reflectComponent) Name() string                         { return c.name }
func (c *reflectComponent) Inputs() []*logicsim.ObservableValue  { return c.inputs }
func (c *reflectComponent) Outputs() []*logicsim.ObservableValue { return c.outputs }

func (c *reflectComponent) SetInputs(ins ...*logicsim.ObservableValue) error {
	if len(ins) != len(c.shadowI) {
		return &logicsim.WiringError{Part: c.name, Err: errors.Errorf("expected %d inputs, got %d", len(c.shadowI), len(ins))}
	}
	for i, in := range ins {
		if in == nil {
			return &logicsim.WiringError{Part: c.name, Err: errors.Errorf("input %d not connected", i)}
		}
		if err := in.CheckBits(c.shadowI[i].Bits()); err != nil {
			return &logicsim.WiringError{Part: c.name, Err: err}
		}
	}
	c.inputs = ins
	return nil
}

func (c *reflectComponent) ReadInputs() error {
	for i, in := range c.inputs {
		c.shadowI[i].Set(in.Get())
	}
	return errors.Wrap(c.u.Update(), c.name)
}

func (c *reflectComponent) WriteOutputs() error {
	for i, out := range c.outputs {
		out.Set(c.shadowO[i].Get())
	}
	return nil
}

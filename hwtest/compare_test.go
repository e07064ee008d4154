// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest_test

import (
	"testing"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/circuit"
	"github.com/db47h/logicsim/expr"
	hl "github.com/db47h/logicsim/hwlib"
	"github.com/db47h/logicsim/hwtest"
)

type orImpl struct {
	A   *logicsim.ObservableValue `hw:"in"`
	B   *logicsim.ObservableValue `hw:"in"`
	Out *logicsim.ObservableValue `hw:"out"`
}

func (o *orImpl) Update() error {
	o.Out.Set(o.A.Get().Or(o.B.Get()))
	return nil
}

type mux8Impl struct {
	Sel *logicsim.ObservableValue `hw:"in"`
	In0 *logicsim.ObservableValue `hw:"in,,8"`
	In1 *logicsim.ObservableValue `hw:"in,,8"`
	Out *logicsim.ObservableValue `hw:"out,,8"`
}

func (m *mux8Impl) Update() error {
	if m.Sel.Bool() {
		m.Out.Set(m.In1.Get())
	} else {
		m.Out.Set(m.In0.Get())
	}
	return nil
}

func TestComparePart(t *testing.T) {
	or := circuit.MakePart((*orImpl)(nil))
	hwtest.ComparePart(t, hl.Or, or.NewPart)

	// 17 input bits, checked with random values
	mux8 := circuit.MakePart((*mux8Impl)(nil))
	hwtest.ComparePart(t, hl.SpecMux(1, 8, 2).NewPart, mux8.NewPart)
}

func TestCompareExpression(t *testing.T) {
	c, err := circuit.Build("a, b, sel", "out", circuit.Parts{
		hl.Not("in=sel, out=nsel"),
		hl.And("a=a, b=nsel, out=w0"),
		hl.And("a=b, b=sel, out=w1"),
		hl.Or("a=w0, b=w1, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	e, err := expr.Parse("a & !sel | b & sel")
	if err != nil {
		t.Fatal(err)
	}
	hwtest.CompareExpression(t, c, "out", e)
	hwtest.CompareExpression(t, c, "w1", expr.And(expr.Var("b"), expr.Var("sel")))
}

func TestRun(t *testing.T) {
	c, err := circuit.Build("d, load", "q", circuit.Parts{
		hl.Mux("sel=load, in0=q, in1=d, out=next"),
		hl.DFFPart("d=next, c=clk, q=q"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	hwtest.Run(t, c, `
		# a 1 bit register
		clk	d	load	q
		0	1	0	0
		C	1	0	0	# no load
		C	1	1	1
		C	0	0	1
		C	0	1	0
		0	1	X	X
	`)
}

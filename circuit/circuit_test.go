// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circuit_test

import (
	"testing"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/circuit"
	hl "github.com/db47h/logicsim/hwlib"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"
)

func trace(t *testing.T, err error) {
	t.Helper()
	if err, ok := err.(interface {
		StackTrace() errors.StackTrace
	}); ok {
		for _, f := range err.StackTrace() {
			t.Logf("%+v ", f)
		}
	}
}

func TestBuild_errors(t *testing.T) {
	not4 := hl.NotN(4).NewPart
	data := []struct {
		name    string
		in, out string
		parts   circuit.Parts
		err     string
	}{
		{"invalid pin", "a", "out", circuit.Parts{hl.Not("x=a, out=out")}, "invalid pin name x for part NOT"},
		{"output to true", "a", "", circuit.Parts{hl.Not("in=a, out=true")}, "output pin connected to constant true input"},
		{"output to false", "a", "", circuit.Parts{hl.Not("in=a, out=false")}, "output pin connected to constant false input"},
		{"output to clk", "a", "", circuit.Parts{hl.Not("in=a, out=clk")}, "output pin connected to clock signal"},
		{"output to input", "a", "", circuit.Parts{hl.Not("in=a, out=a")}, "circuit input pin a used as output"},
		{"two drivers", "a, b", "out", circuit.Parts{
			hl.Not("in=a, out=out"),
			hl.Not("in=b, out=out"),
		}, "net out already driven by another output"},
		{"input to two nets", "a, b", "out", circuit.Parts{hl.And("a=a, a=b, b=b, out=out")}, "input pin connected to more than one net"},
		{"dangling", "a", "out", circuit.Parts{hl.And("a=a, b=x, out=out")}, "net x not connected to any output"},
		{"unused", "a", "out", circuit.Parts{
			hl.Not("in=a, out=out"),
			hl.Not("in=a, out=y"),
			hl.Not("in=a, out=x"),
		}, "NOT.out: net x not connected to any input"},
		{"output not driven", "a", "out, z", circuit.Parts{hl.Not("in=a, out=out")}, "z: circuit output not connected to any output"},
		{"input width", "a[2]", "out", circuit.Parts{hl.Not("in=a, out=out")}, "expected 1 bits, got 2"},
		{"output width", "a[4]", "out", circuit.Parts{not4("in=a, out=out")}, "expected 1 bits, got 4"},
		{"reserved input", "clk", "", nil, "reserved name used as circuit input"},
		{"io syntax", "a[", "", nil, "circuit inputs"},
	}
	for _, d := range data {
		d := d
		t.Run(d.name, func(t *testing.T) {
			c, err := circuit.Build(d.in, d.out, d.parts)
			assert.True(t, c == nil)
			assert.ErrorContains(t, err, d.err)
		})
	}
}

func TestBuild_wiringError(t *testing.T) {
	_, err := circuit.Build("a", "out", circuit.Parts{hl.And("a=a, b=x, out=out")})
	var we *logicsim.WiringError
	assert.True(t, errors.As(err, &we))
	assert.Equal(t, "AND", we.Part)
	assert.Equal(t, "b", we.Pin)
}

func TestCircuit(t *testing.T) {
	c, err := circuit.Build("a, b", "out, nout", circuit.Parts{
		hl.Nand("a=a, b=b, out=nand"),
		hl.Not("in=nand, out=out"),
		// fan-out of nand
		hl.And("a=nand, b=true, out=nout"),
		// pin b left unconnected
		hl.Or("a=b, out=unused_b"),
		hl.Output(1, nil)("in=unused_b"),
	})
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	defer c.Close()

	assert.Equal(t, []circuit.Pin{{Name: "a", Bits: 1}, {Name: "b", Bits: 1}}, c.Inputs())
	assert.Len(t, c.Outputs(), 2)
	assert.True(t, c.Clock() == nil)
	assert.True(t, c.Net("nope") == nil)
	assert.NotNil(t, c.Net("nand"))
	assert.Equal(t, "nand", c.Net("nand").Name())
	assert.Len(t, c.Components(), 5)

	// not initialized
	assert.Equal(t, logicsim.ErrNotInitialized, c.Set("a", 1))
	assert.NoError(t, c.Init())

	for i := uint64(0); i < 4; i++ {
		a, b := i>>1, i&1
		assert.NoError(t, c.SetAll(map[string]uint64{"a": a, "b": b}))
		out, err := c.Get("out")
		assert.NoError(t, err)
		nout, _ := c.Get("nout")
		assert.Equal(t, a&b, out.Uint())
		assert.Equal(t, 1-a&b, nout.Uint())
	}

	assert.ErrorContains(t, c.Set("nand", 1), "no such circuit input")
	assert.ErrorContains(t, c.SetAll(map[string]uint64{"out": 1}), "no such circuit input")
	_, err = c.Get("nope")
	assert.ErrorContains(t, err, "no such net")
	assert.Error(t, c.Tick())
}

func TestCircuit_oscillation(t *testing.T) {
	c, err := circuit.Build("", "out", circuit.Parts{
		hl.Not("in=out, out=out"),
	}, logicsim.MinIterations(10), logicsim.IterationFactor(1))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	err = c.Init()
	var oe *logicsim.OscillationError
	assert.True(t, errors.As(err, &oe))
	assert.Equal(t, []string{"NOT#0"}, oe.Nodes)
	assert.Equal(t, 10, oe.Evaluations)
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"testing"
	"testing/quick"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/circuit"
	hl "github.com/db47h/logicsim/hwlib"
	"github.com/retroenv/retrogolib/assert"
)

func TestAdder16(t *testing.T) {
	c := wrap(t, hl.SpecAdder(16).NewPart)
	defer c.Close()

	f := func(a, b uint16, cin bool) bool {
		var ci uint64
		if cin {
			ci = 1
		}
		if err := c.SetAll(map[string]uint64{"a": uint64(a), "b": uint64(b), "cin": ci}); err != nil {
			t.Log(err)
			return false
		}
		s, _ := c.Get("s")
		cout, _ := c.Get("cout")
		sum := uint64(a) + uint64(b) + ci
		return s.Uint() == sum&0xffff && cout.Bool() == (sum > 0xffff)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestProbe_Const(t *testing.T) {
	var seen []uint64
	probe := hl.Output(8, func(v logicsim.Value) { seen = append(seen, v.Uint()) })
	c, err := circuit.Build("en", "", circuit.Parts{
		hl.ConstN(0x5a, 8)("out=k"),
		hl.SpecDriver(8).NewPart("in=k, sel=en, out=bus"),
		probe("in=bus"),
	})
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	defer c.Close()
	assert.NoError(t, c.Init())
	assert.NoError(t, c.Set("en", 1))
	assert.NoError(t, c.Set("en", 0))
	// probes see high-z as 0
	assert.Equal(t, []uint64{0, 0x5a, 0}, seen)
	v, _ := c.Get("k")
	assert.Equal(t, uint64(0x5a), v.Uint())
}

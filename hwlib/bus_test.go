// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"testing"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/circuit"
	hl "github.com/db47h/logicsim/hwlib"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"
)

func busCircuit(t *testing.T) *circuit.Circuit {
	t.Helper()
	drv := hl.SpecDriver(4).NewPart
	bus := hl.SpecBus(2, 4).NewPart
	c, err := circuit.Build("a[4], b[4], ea, eb", "out[4]", circuit.Parts{
		drv("in=a, sel=ea, out=da"),
		drv("in=b, sel=eb, out=db"),
		bus("in0=da, in1=db, out=out"),
	})
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	assert.NoError(t, c.Init())
	return c
}

func TestBus(t *testing.T) {
	c := busCircuit(t)
	defer c.Close()

	// no driver
	v, err := c.Get("out")
	assert.NoError(t, err)
	assert.True(t, v.IsHighZ())
	assert.Equal(t, uint64(0), v.Uint())

	// one driver
	assert.NoError(t, c.SetAll(map[string]uint64{"a": 5, "b": 9, "ea": 1}))
	v, _ = c.Get("out")
	assert.False(t, v.IsHighZ())
	assert.Equal(t, uint64(5), v.Uint())

	assert.NoError(t, c.SetAll(map[string]uint64{"ea": 0, "eb": 1}))
	v, _ = c.Get("out")
	assert.Equal(t, uint64(9), v.Uint())

	// both drivers
	err = c.Set("ea", 1)
	var sc *logicsim.ShortCircuitError
	assert.True(t, errors.As(err, &sc))
	assert.Equal(t, "da", sc.Drivers[0])
	assert.Equal(t, "db", sc.Drivers[1])
	assert.ErrorContains(t, err, "short circuit")

	// the model must be re-initialized
	assert.Equal(t, logicsim.ErrNotInitialized, c.Set("ea", 0))
	assert.NoError(t, c.Init())
	v, _ = c.Get("out")
	assert.Equal(t, uint64(9), v.Uint())
}

func TestBus_nodes(t *testing.T) {
	m := logicsim.New()
	a := logicsim.NewObservableValue("a", 1)
	b := logicsim.NewObservableValue("b", 1)
	bus := hl.NewBus("bus", 2, 1)
	assert.NoError(t, bus.SetInputs(a, b))
	probe := hl.NewProbe("probe", 1, nil)
	assert.NoError(t, probe.SetInputs(bus.Out()))
	for _, n := range []logicsim.Node{bus, probe} {
		_, err := m.Add(n)
		assert.NoError(t, err)
	}

	// plain values are always driven
	err := m.Init()
	assert.Error(t, err)
	var sc *logicsim.ShortCircuitError
	assert.True(t, errors.As(err, &sc))
	assert.Equal(t, "bus", sc.Node)

	// stepping a failed model is not allowed
	assert.Equal(t, logicsim.ErrNotInitialized, m.Access(func() { b.SetHighZ(true) }))
	assert.NoError(t, m.Init())
	assert.NoError(t, m.Access(func() { a.SetBool(true) }))
	assert.Equal(t, uint64(1), probe.Value().Uint())
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim_test

import (
	"testing"

	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"
)

func TestObservableValue(t *testing.T) {
	v := logicsim.NewObservableValue("bus", 4)
	assert.Equal(t, "bus", v.Name())
	assert.Equal(t, 4, v.Bits())

	v.SetUint(0x1f)
	assert.Equal(t, uint64(0xf), v.Uint())
	assert.Equal(t, "bus=15", v.String())
	v.Set(logicsim.NewValue(0x23, 8))
	assert.Equal(t, uint64(3), v.Uint())
	assert.Equal(t, 4, v.Get().Bits())

	v.SetHighZ(true)
	assert.True(t, v.IsHighZ())
	assert.False(t, v.Bool())
	assert.Equal(t, "bus=Z", v.String())
	v.SetHighZ(false)
	assert.False(t, v.IsHighZ())
	v.SetBool(true)
	assert.Equal(t, uint64(1), v.Uint())

	v.SetName("data")
	assert.Equal(t, "data", v.Name())

	err := v.CheckBits(8)
	var be *logicsim.BitsError
	assert.True(t, errors.As(err, &be))
	assert.Equal(t, 8, be.Want)
	assert.Equal(t, 4, be.Got)
	assert.Equal(t, "value data: expected 8 bits, got 4", err.Error())
	assert.NoError(t, v.CheckBits(4))

	defer func() { assert.NotNil(t, recover()) }()
	logicsim.NewObservableValue("bad", 0)
}

func TestObservableValue_listeners(t *testing.T) {
	v := logicsim.NewObservableValue("v", 1)
	v.AddListener(2)
	v.AddListener(0)
	v.AddListener(2)
	assert.Equal(t, []logicsim.NodeID{2, 0}, v.Listeners())
	v.RemoveListener(2)
	assert.Equal(t, []logicsim.NodeID{0}, v.Listeners())
	v.RemoveListener(5)
	assert.Equal(t, []logicsim.NodeID{0}, v.Listeners())
}

// Listeners are only marked dirty on actual changes.
func TestObservableValue_changes(t *testing.T) {
	in := logicsim.NewObservableValue("in", 8)
	out := logicsim.NewObservableValue("out", 8)
	m := logicsim.New()
	defer m.Close()
	mustAdd(t, m, &buffer{in: in, out: out})
	assert.Equal(t, []logicsim.NodeID{0}, in.Listeners())
	assert.NoError(t, m.Init())

	data := []struct {
		name  string
		set   func()
		evals int
	}{
		{"same value", func() { in.SetUint(0) }, 0},
		{"new value", func() { in.SetUint(42) }, 1},
		{"truncated to same", func() { in.SetUint(0x100 | 42) }, 0},
		{"high-z", func() { in.SetHighZ(true) }, 1},
		{"high-z again", func() { in.SetHighZ(true) }, 0},
		{"set then reset", func() { in.SetUint(1); in.SetUint(0) }, 1},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			assert.NoError(t, m.Access(d.set))
			assert.Equal(t, d.evals, m.Evaluations())
		})
	}
	// the buffer copies the high-z flag
	assert.False(t, out.IsHighZ())
	assert.Equal(t, uint64(0), out.Uint())
}

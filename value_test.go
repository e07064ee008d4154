// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim_test

import (
	"testing"
	"testing/quick"

	"github.com/db47h/logicsim"
	"github.com/retroenv/retrogolib/assert"
)

func TestValue(t *testing.T) {
	v := logicsim.NewValue(0x1ff, 8)
	assert.Equal(t, uint64(0xff), v.Uint())
	assert.Equal(t, int64(-1), v.Int())
	assert.Equal(t, 8, v.Bits())
	assert.True(t, v.Bool())
	assert.Equal(t, "255", v.String())

	assert.Equal(t, int64(3), logicsim.NewValue(3, 4).Int())
	assert.Equal(t, int64(-8), logicsim.NewValue(8, 4).Int())
	assert.Equal(t, uint64(0xf0), v.And(logicsim.NewValue(0xf0, 8)).Uint())
	assert.Equal(t, uint64(0x0f), logicsim.NewValue(0x0f, 8).Or(logicsim.NewValue(0x0c, 8)).Uint())
	assert.Equal(t, uint64(0x0f), v.Xor(logicsim.NewValue(0xf0, 8)).Uint())
	assert.Equal(t, uint64(0), v.Not().Uint())

	z := logicsim.HighZ(4)
	assert.True(t, z.IsHighZ())
	assert.False(t, z.Bool())
	assert.Equal(t, "Z", z.String())
	assert.False(t, z.Equal(logicsim.NewValue(0, 4)))
	assert.True(t, logicsim.Bool(true).Equal(logicsim.NewValue(1, 1)))
	assert.False(t, logicsim.NewValue(1, 2).Equal(logicsim.NewValue(1, 1)))

	assert.Equal(t, ^uint64(0), logicsim.Mask(64))
	assert.Equal(t, uint64(7), logicsim.Mask(3))

	for _, bits := range []int{0, 65} {
		func() {
			defer func() { assert.NotNil(t, recover()) }()
			logicsim.NewValue(0, bits)
		}()
	}
}

func TestValue_Add(t *testing.T) {
	f := func(a, b uint8, c bool) bool {
		s, co := logicsim.NewValue(uint64(a), 8).Add(logicsim.NewValue(uint64(b), 8), c)
		exp := uint(a) + uint(b)
		if c {
			exp++
		}
		return s.Uint() == uint64(exp&0xff) && co == (exp > 0xff)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}

	s, co := logicsim.NewValue(^uint64(0), 64).Add(logicsim.NewValue(0, 64), true)
	assert.Equal(t, uint64(0), s.Uint())
	assert.True(t, co)
	s, co = logicsim.NewValue(1<<63, 64).Add(logicsim.NewValue(1<<62, 64), false)
	assert.Equal(t, uint64(3<<62), s.Uint())
	assert.False(t, co)
}

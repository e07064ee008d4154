// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package circuit_test

import (
	"testing"

	"github.com/db47h/logicsim/circuit"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseIO(t *testing.T) {
	data := []struct {
		in   string
		pins []circuit.Pin
		err  string
	}{
		{"", nil, ""},
		{"a", []circuit.Pin{{"a", 1}}, ""},
		{" a , b,sel[2] ", []circuit.Pin{{"a", 1}, {"b", 1}, {"sel", 2}}, ""},
		{"in0, in_1[64]", []circuit.Pin{{"in0", 1}, {"in_1", 64}}, ""},
		{"a, a", nil, "duplicate pin name a"},
		{"a[0]", nil, "invalid bus size"},
		{"a[65]", nil, "invalid bus size"},
		{"a[]", nil, "missing bus size"},
		{"a[2", nil, "missing close bracket"},
		{"a b", nil, "expected comma"},
		{"a,", nil, "expected pin name"},
		{"0a", nil, "expected pin name"},
	}
	for _, d := range data {
		t.Run(d.in, func(t *testing.T) {
			pins, err := circuit.ParseIO(d.in)
			if d.err != "" {
				assert.ErrorContains(t, err, d.err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, d.pins, pins)
		})
	}
}

func TestParseConnections(t *testing.T) {
	cs, err := circuit.ParseConnections("a=x, b = y ,out=z, out=w")
	assert.NoError(t, err)
	assert.Equal(t, []circuit.Connection{{"a", "x"}, {"b", "y"}, {"out", "z"}, {"out", "w"}}, cs)

	for _, s := range []string{"a", "a=", "=b", "a=b c=d", "a=b,"} {
		_, err = circuit.ParseConnections(s)
		assert.Error(t, err, s)
	}
}

func TestIO_panics(t *testing.T) {
	defer func() {
		assert.NotNil(t, recover())
	}()
	circuit.IO("a[")
}

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"strconv"
	"strings"
	"testing"

	"github.com/db47h/logicsim/circuit"
	"github.com/pkg/errors"
)

type column struct {
	name  string
	input bool
}

// Run initializes c and runs the given check table against it.
//
// The first line of the table lists the columns: circuit inputs, nets to
// check, or the circuit clock "clk". Each following line sets the inputs,
// lets the circuit settle and checks the nets. Values are unsigned integers
// in any base accepted by strconv.ParseUint (0x.., 0b.., decimal). Other
// values are:
//
//	X	don't care, the net is not checked
//	C	clock: the input is set high then low before checking. For the
//		circuit clock, a full clock cycle is run. 0 leaves the circuit
//		clock alone.
//
// Text after a # is a comment.
//
//	hwtest.Run(t, c, `
//		clk	d	q
//		0	1	0
//		C	1	1
//	`)
//
func Run(t testing.TB, c *circuit.Circuit, table string) {
	t.Helper()
	if err := run(c, table); err != nil {
		t.Error(err)
	}
}

func run(c *circuit.Circuit, table string) error {
	isInput := make(map[string]bool)
	for _, p := range c.Inputs() {
		isInput[p.Name] = true
	}
	if err := c.Init(); err != nil {
		return err
	}

	var cols []column
	for num, line := range strings.Split(table, "\n") {
		num++
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fs := strings.Fields(line)
		if len(fs) == 0 {
			continue
		}
		if cols == nil {
			for _, f := range fs {
				switch {
				case f == circuit.Clk:
					if c.Clock() == nil {
						return errors.Errorf("line %d: circuit has no clock", num)
					}
					cols = append(cols, column{f, true})
				case isInput[f]:
					cols = append(cols, column{f, true})
				case c.Net(f) != nil:
					cols = append(cols, column{f, false})
				default:
					return errors.Errorf("line %d: no such net %q", num, f)
				}
			}
			continue
		}
		if len(fs) != len(cols) {
			return errors.Errorf("line %d: got %d values, expected %d", num, len(fs), len(cols))
		}
		if err := runLine(c, num, cols, fs); err != nil {
			return err
		}
	}
	return nil
}

func runLine(c *circuit.Circuit, num int, cols []column, fs []string) error {
	ins := make(map[string]uint64)
	var clocks []string
	tick := false
	for i, col := range cols {
		if !col.input {
			continue
		}
		switch f := fs[i]; {
		case f == "C" || f == "c":
			if col.name == circuit.Clk {
				tick = true
			} else {
				clocks = append(clocks, col.name)
			}
		case f == "X" || f == "x":
		case col.name == circuit.Clk && f == "0":
		case col.name == circuit.Clk:
			return errors.Errorf("line %d: invalid clock value %q", num, f)
		default:
			v, err := strconv.ParseUint(f, 0, 64)
			if err != nil {
				return errors.Wrapf(err, "line %d", num)
			}
			ins[col.name] = v
		}
	}
	if err := c.SetAll(ins); err != nil {
		return errors.Wrapf(err, "line %d", num)
	}
	for _, level := range []uint64{1, 0} {
		if len(clocks) == 0 {
			break
		}
		for _, n := range clocks {
			ins[n] = level
		}
		if err := c.SetAll(ins); err != nil {
			return errors.Wrapf(err, "line %d", num)
		}
	}
	if tick {
		if err := c.TickTock(); err != nil {
			return errors.Wrapf(err, "line %d", num)
		}
	}

	for i, col := range cols {
		f := fs[i]
		if col.input || f == "X" || f == "x" {
			continue
		}
		want, err := strconv.ParseUint(f, 0, 64)
		if err != nil {
			return errors.Wrapf(err, "line %d", num)
		}
		got, err := c.Get(col.name)
		if err != nil {
			return errors.Wrapf(err, "line %d", num)
		}
		if got.IsHighZ() || got.Uint() != want {
			return errors.Errorf("line %d: %s = %v, expected %d", num, col.name, got, want)
		}
	}
	return nil
}
